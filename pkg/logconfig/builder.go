package logconfig

import (
	"strings"
)

// NormalizeName canonicalizes a dotted category name by dropping empty
// segments: "foo..bar" becomes "foo.bar" and "." becomes "".
func NormalizeName(raw string) string {
	if !strings.Contains(raw, ".") {
		return raw
	}

	parts := strings.Split(raw, ".")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}

// Builder accumulates categories and handlers into a Config. Both parsers go
// through it so name collisions are detected the same way for either input
// form. A Builder is not safe for concurrent use.
type Builder struct {
	categories map[string]CategoryConfig
	rawNames   map[string]string
	handlers   map[string]HandlerConfig
}

func NewBuilder() *Builder {
	return &Builder{
		categories: make(map[string]CategoryConfig),
		rawNames:   make(map[string]string),
		handlers:   make(map[string]HandlerConfig),
	}
}

// AddCategory stores cfg under the canonical form of rawName. Reusing the
// same raw spelling overwrites the earlier entry; a different spelling that
// normalizes to the same name is a DuplicateCategory error.
func (b *Builder) AddCategory(rawName string, cfg CategoryConfig) error {
	name := NormalizeName(rawName)

	if first, ok := b.rawNames[name]; ok && first != rawName {
		return duplicateCategoryError(name, first, rawName)
	}

	b.rawNames[name] = rawName
	b.categories[name] = cfg
	return nil
}

func (b *Builder) AddHandler(name string, cfg HandlerConfig) error {
	if name == "" {
		return newError(EmptyHandlerName, "error parsing log handler configuration: empty log handler name")
	}
	if cfg.Type == "" {
		return newError(EmptyHandlerType, `error parsing configuration for log handler "%s": empty log handler type`, name)
	}
	if _, ok := b.handlers[name]; ok {
		return newError(DuplicateHandler, `configuration for log handler "%s" specified multiple times`, name)
	}

	b.handlers[name] = cfg
	return nil
}

// Config returns a snapshot of the accumulated configuration.
func (b *Builder) Config() *Config {
	cfg := &Config{
		categories: make(map[string]CategoryConfig, len(b.categories)),
		handlers:   make(map[string]HandlerConfig, len(b.handlers)),
	}
	for k, v := range b.categories {
		cfg.categories[k] = v
	}
	for k, v := range b.handlers {
		cfg.handlers[k] = v
	}
	return cfg
}
