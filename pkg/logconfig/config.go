// Package logconfig parses logging configuration text into categories and
// handlers.
//
// Two input forms are accepted. The compact form is a single line:
//
//	ERR:myfile, app=DBG2, app.io:=WARN:other; myfile=file,path=/tmp/x.log; other=stream,stream=stderr
//
// The first ';'-separated section lists categories as NAME=LEVEL (inherit the
// parent level) or NAME:=LEVEL (do not), each optionally followed by
// :HANDLER[:HANDLER...]. Every later section defines one handler as
// NAME=TYPE[,KEY=VALUE...]. The JSON form is an object with optional
// "categories" and "handlers" members and may contain comments and trailing
// commas.
package logconfig

import (
	"sort"

	"github.com/veesix-networks/logcfg/pkg/loglevel"
)

// HandlerList is the handler assignment of a category. An unset list means
// the category keeps its parent's handlers; a set list, even an empty one,
// replaces them.
type HandlerList struct {
	set   bool
	names []string
}

func UnsetHandlers() HandlerList {
	return HandlerList{}
}

func SetHandlers(names ...string) HandlerList {
	return HandlerList{set: true, names: append([]string{}, names...)}
}

func (h HandlerList) IsSet() bool {
	return h.set
}

// Names returns a copy of the handler names. It is nil when the list is unset.
func (h HandlerList) Names() []string {
	if !h.set {
		return nil
	}
	return append([]string{}, h.names...)
}

func (h HandlerList) Len() int {
	return len(h.names)
}

func (h HandlerList) Equal(o HandlerList) bool {
	if h.set != o.set || len(h.names) != len(o.names) {
		return false
	}
	for i := range h.names {
		if h.names[i] != o.names[i] {
			return false
		}
	}
	return true
}

type CategoryConfig struct {
	Level              loglevel.Level
	InheritParentLevel bool
	Handlers           HandlerList
}

func (c CategoryConfig) Equal(o CategoryConfig) bool {
	return c.Level == o.Level &&
		c.InheritParentLevel == o.InheritParentLevel &&
		c.Handlers.Equal(o.Handlers)
}

// Options is a string map that remembers insertion order for rendering.
type Options struct {
	keys   []string
	values map[string]string
}

// OptionsOf builds Options from alternating keys and values.
func OptionsOf(kv ...string) Options {
	var o Options
	for i := 0; i+1 < len(kv); i += 2 {
		o = o.With(kv[i], kv[i+1])
	}
	return o
}

// With returns a copy of o with key set to value. An existing key keeps its
// position.
func (o Options) With(key, value string) Options {
	out := Options{
		keys:   append([]string{}, o.keys...),
		values: make(map[string]string, len(o.values)+1),
	}
	for k, v := range o.values {
		out.values[k] = v
	}
	if _, ok := out.values[key]; !ok {
		out.keys = append(out.keys, key)
	}
	out.values[key] = value
	return out
}

func (o Options) Get(key string) (string, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns option names in insertion order.
func (o Options) Keys() []string {
	return append([]string{}, o.keys...)
}

func (o Options) Len() int {
	return len(o.keys)
}

// Map returns the options as a plain map.
func (o Options) Map() map[string]string {
	m := make(map[string]string, len(o.values))
	for k, v := range o.values {
		m[k] = v
	}
	return m
}

// Equal ignores insertion order.
func (o Options) Equal(other Options) bool {
	if len(o.values) != len(other.values) {
		return false
	}
	for k, v := range o.values {
		if ov, ok := other.values[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

type HandlerConfig struct {
	Type    string
	Options Options
}

func (h HandlerConfig) Equal(o HandlerConfig) bool {
	return h.Type == o.Type && h.Options.Equal(o.Options)
}

// Config is the result of a parse. Category keys are canonical names; the
// root category is "".
type Config struct {
	categories map[string]CategoryConfig
	handlers   map[string]HandlerConfig
}

// CategoryConfigs returns a copy of the category settings.
func (c *Config) CategoryConfigs() map[string]CategoryConfig {
	out := make(map[string]CategoryConfig, len(c.categories))
	for k, v := range c.categories {
		out[k] = v
	}
	return out
}

// HandlerConfigs returns a copy of the handler settings.
func (c *Config) HandlerConfigs() map[string]HandlerConfig {
	out := make(map[string]HandlerConfig, len(c.handlers))
	for k, v := range c.handlers {
		out[k] = v
	}
	return out
}

func (c *Config) Category(name string) (CategoryConfig, bool) {
	cfg, ok := c.categories[name]
	return cfg, ok
}

func (c *Config) Handler(name string) (HandlerConfig, bool) {
	cfg, ok := c.handlers[name]
	return cfg, ok
}

func (c *Config) CategoryNames() []string {
	return sortedKeys(c.categories)
}

func (c *Config) HandlerNames() []string {
	return sortedKeys(c.handlers)
}

func (c *Config) Empty() bool {
	return len(c.categories) == 0 && len(c.handlers) == 0
}

func (c *Config) Equal(o *Config) bool {
	if len(c.categories) != len(o.categories) || len(c.handlers) != len(o.handlers) {
		return false
	}
	for name, cat := range c.categories {
		if other, ok := o.categories[name]; !ok || !cat.Equal(other) {
			return false
		}
	}
	for name, h := range c.handlers {
		if other, ok := o.handlers[name]; !ok || !h.Equal(other) {
			return false
		}
	}
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
