package logconfig

import (
	"github.com/veesix-networks/logcfg/pkg/jsonvalue"
)

// Render converts cfg into a JSON value tree with "categories" and
// "handlers" members. Names are sorted; levels are always symbolic; the
// "handlers" member of a category appears only when its handler list is set.
func Render(cfg *Config) jsonvalue.Value {
	categories := make([]jsonvalue.Member, 0, len(cfg.categories))
	for _, name := range cfg.CategoryNames() {
		categories = append(categories, jsonvalue.Member{
			Key:   name,
			Value: renderCategory(cfg.categories[name]),
		})
	}

	handlers := make([]jsonvalue.Member, 0, len(cfg.handlers))
	for _, name := range cfg.HandlerNames() {
		handlers = append(handlers, jsonvalue.Member{
			Key:   name,
			Value: renderHandler(cfg.handlers[name]),
		})
	}

	return jsonvalue.ObjectValue(
		jsonvalue.Member{Key: "categories", Value: jsonvalue.ObjectValue(categories...)},
		jsonvalue.Member{Key: "handlers", Value: jsonvalue.ObjectValue(handlers...)},
	)
}

func renderCategory(c CategoryConfig) jsonvalue.Value {
	members := []jsonvalue.Member{
		{Key: "inherit", Value: jsonvalue.BoolValue(c.InheritParentLevel)},
		{Key: "level", Value: jsonvalue.StringValue(c.Level.String())},
	}

	if c.Handlers.IsSet() {
		names := make([]jsonvalue.Value, 0, c.Handlers.Len())
		for _, h := range c.Handlers.Names() {
			names = append(names, jsonvalue.StringValue(h))
		}
		members = append(members, jsonvalue.Member{Key: "handlers", Value: jsonvalue.ArrayValue(names...)})
	}

	return jsonvalue.ObjectValue(members...)
}

func renderHandler(h HandlerConfig) jsonvalue.Value {
	options := make([]jsonvalue.Member, 0, h.Options.Len())
	for _, k := range h.Options.Keys() {
		v, _ := h.Options.Get(k)
		options = append(options, jsonvalue.Member{Key: k, Value: jsonvalue.StringValue(v)})
	}

	return jsonvalue.ObjectValue(
		jsonvalue.Member{Key: "type", Value: jsonvalue.StringValue(h.Type)},
		jsonvalue.Member{Key: "options", Value: jsonvalue.ObjectValue(options...)},
	)
}

func (c *Config) MarshalJSON() ([]byte, error) {
	return Render(c).MarshalJSON()
}

func (c *Config) MarshalYAML() (interface{}, error) {
	return Render(c).MarshalYAML()
}
