package logconfig

import (
	"fmt"

	"github.com/veesix-networks/logcfg/pkg/jsonvalue"
	"github.com/veesix-networks/logcfg/pkg/loglevel"
)

// FromJSONValue builds a Config from an already parsed JSON value. Top-level
// members other than "categories" and "handlers" are ignored. A key repeated
// within one object keeps its last value.
func FromJSONValue(root jsonvalue.Value) (*Config, error) {
	if root.Kind() != jsonvalue.Object {
		return nil, newError(NotAnObject, "JSON config input must be an object")
	}

	b := NewBuilder()

	if categories, ok := root.Get("categories"); ok {
		if categories.Kind() != jsonvalue.Object {
			return nil, typeMismatchError("log categories config", categories.Kind().String(), "an object")
		}
		for _, m := range categories.Fields() {
			cfg, err := parseJSONCategory(m.Key, m.Value)
			if err != nil {
				return nil, err
			}
			if err := b.AddCategory(m.Key, cfg); err != nil {
				return nil, err
			}
		}
	}

	if handlers, ok := root.Get("handlers"); ok {
		if handlers.Kind() != jsonvalue.Object {
			return nil, typeMismatchError("log handlers config", handlers.Kind().String(), "an object")
		}
		for _, m := range handlers.Fields() {
			cfg, err := parseJSONHandler(m.Key, m.Value)
			if err != nil {
				return nil, err
			}
			if err := b.AddHandler(m.Key, cfg); err != nil {
				return nil, err
			}
		}
	}

	return b.Config(), nil
}

func parseJSONCategory(name string, v jsonvalue.Value) (CategoryConfig, error) {
	cfg := CategoryConfig{InheritParentLevel: true}

	switch v.Kind() {
	case jsonvalue.String, jsonvalue.Integer:
		lvl, err := jsonLevel(name, v)
		if err != nil {
			return CategoryConfig{}, err
		}
		cfg.Level = lvl
		return cfg, nil

	case jsonvalue.Object:
		levelValue, ok := v.Get("level")
		if !ok {
			return CategoryConfig{}, newError(MissingLevel, `no log level specified for log category "%s"`, name)
		}
		if k := levelValue.Kind(); k != jsonvalue.String && k != jsonvalue.Integer {
			return CategoryConfig{}, typeMismatchError(
				fmt.Sprintf(`level field of category "%s"`, name), k.String(), "a string or integer")
		}
		lvl, err := jsonLevel(name, levelValue)
		if err != nil {
			return CategoryConfig{}, err
		}
		cfg.Level = lvl

		if inherit, ok := v.Get("inherit"); ok {
			b, isBool := inherit.Bool()
			if !isBool {
				return CategoryConfig{}, typeMismatchError(
					fmt.Sprintf(`inherit field of category "%s"`, name), inherit.Kind().String(), "a boolean")
			}
			cfg.InheritParentLevel = b
		}
		return cfg, nil

	default:
		return CategoryConfig{}, typeMismatchError(
			fmt.Sprintf(`configuration of category "%s"`, name), v.Kind().String(), "an object, string, or integer")
	}
}

// jsonLevel accepts a string or integer level value.
func jsonLevel(name string, v jsonvalue.Value) (loglevel.Level, error) {
	if s, ok := v.Str(); ok {
		lvl, err := loglevel.Parse(s)
		if err != nil {
			return 0, invalidLevelError(s, name, err)
		}
		return lvl, nil
	}

	n, ok := v.Int64()
	if !ok {
		return 0, invalidLevelError(v.NumberText(), name, loglevel.ErrInvalidLevel)
	}
	lvl, err := loglevel.FromInt(n)
	if err != nil {
		return 0, invalidLevelError(v.NumberText(), name, err)
	}
	return lvl, nil
}

func parseJSONHandler(name string, v jsonvalue.Value) (HandlerConfig, error) {
	if v.Kind() != jsonvalue.Object {
		return HandlerConfig{}, typeMismatchError(
			fmt.Sprintf(`configuration of handler "%s"`, name), v.Kind().String(), "an object")
	}

	typeValue, ok := v.Get("type")
	if !ok {
		return HandlerConfig{}, newError(NoHandlerType, `no handler type specified for log handler "%s"`, name)
	}
	handlerType, ok := typeValue.Str()
	if !ok {
		return HandlerConfig{}, typeMismatchError(
			fmt.Sprintf(`"type" field of handler "%s"`, name), typeValue.Kind().String(), "a string")
	}

	cfg := HandlerConfig{Type: handlerType}

	optionsValue, ok := v.Get("options")
	if !ok {
		return cfg, nil
	}
	if optionsValue.Kind() != jsonvalue.Object {
		return HandlerConfig{}, typeMismatchError(
			fmt.Sprintf(`"options" field of handler "%s"`, name), optionsValue.Kind().String(), "an object")
	}

	for _, m := range optionsValue.Fields() {
		s, ok := m.Value.Str()
		if !ok {
			return HandlerConfig{}, typeMismatchError(
				fmt.Sprintf(`option "%s" of handler "%s"`, m.Key, name), m.Value.Kind().String(), "a string")
		}
		cfg.Options = cfg.Options.With(m.Key, s)
	}

	return cfg, nil
}
