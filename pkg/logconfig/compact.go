package logconfig

import (
	"strings"

	"github.com/veesix-networks/logcfg/pkg/loglevel"
)

// rootDisplayName is how a category entry with no NAME= prefix is reported.
const rootDisplayName = "."

func parseCompact(text string) (*Config, error) {
	b := NewBuilder()

	text = strings.TrimSpace(text)
	if text == "" {
		return b.Config(), nil
	}

	sections := strings.Split(text, ";")

	if categories := strings.TrimSpace(sections[0]); categories != "" {
		for _, entry := range strings.Split(categories, ",") {
			rawName, cfg, err := parseCategoryEntry(entry)
			if err != nil {
				return nil, err
			}
			if err := b.AddCategory(rawName, cfg); err != nil {
				return nil, err
			}
		}
	}

	for _, block := range sections[1:] {
		name, cfg, err := parseHandlerBlock(block)
		if err != nil {
			return nil, err
		}
		if err := b.AddHandler(name, cfg); err != nil {
			return nil, err
		}
	}

	return b.Config(), nil
}

// parseCategoryEntry handles one NAME=LEVEL[:HANDLERS], NAME:=LEVEL[:HANDLERS]
// or bare LEVEL[:HANDLERS] entry.
func parseCategoryEntry(entry string) (string, CategoryConfig, error) {
	entry = strings.TrimSpace(entry)

	cfg := CategoryConfig{InheritParentLevel: true}
	rawName := ""
	displayName := rootDisplayName
	rest := entry

	if eq := strings.IndexByte(entry, '='); eq >= 0 {
		nameEnd := eq
		if eq > 0 && entry[eq-1] == ':' {
			nameEnd = eq - 1
			cfg.InheritParentLevel = false
		}
		rawName = strings.TrimSpace(entry[:nameEnd])
		displayName = rawName
		rest = entry[eq+1:]
	}

	levelText := rest
	handlersText := ""
	colon := strings.IndexByte(rest, ':')
	if colon >= 0 {
		levelText = rest[:colon]
		handlersText = rest[colon+1:]
	}
	levelText = strings.TrimSpace(levelText)

	lvl, err := loglevel.Parse(levelText)
	if err != nil {
		return "", CategoryConfig{}, invalidLevelError(levelText, displayName, err)
	}
	cfg.Level = lvl

	if colon >= 0 {
		handlers, err := parseHandlerList(handlersText, displayName)
		if err != nil {
			return "", CategoryConfig{}, err
		}
		cfg.Handlers = handlers
	}

	return rawName, cfg, nil
}

func parseHandlerList(text, displayName string) (HandlerList, error) {
	if strings.TrimSpace(text) == "" {
		return SetHandlers(), nil
	}

	parts := strings.Split(text, ":")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			return HandlerList{}, newError(EmptyHandlerName,
				`error parsing handler list for category "%s": empty log handler name`, displayName)
		}
		names = append(names, name)
	}
	return SetHandlers(names...), nil
}

// parseHandlerBlock handles one NAME=TYPE[,KEY=VALUE...] section.
func parseHandlerBlock(block string) (string, HandlerConfig, error) {
	block = strings.TrimSpace(block)

	tokens := strings.Split(block, ",")
	first := strings.TrimSpace(tokens[0])
	eq := strings.IndexByte(first, '=')
	if block == "" || eq < 0 {
		return "", HandlerConfig{}, newError(MalformedHandler,
			`error parsing log handler configuration "%s": expected data in the form NAME=TYPE`, block)
	}

	name := strings.TrimSpace(first[:eq])
	if name == "" {
		return "", HandlerConfig{}, newError(EmptyHandlerName,
			"error parsing log handler configuration: empty log handler name")
	}

	cfg := HandlerConfig{Type: strings.TrimSpace(first[eq+1:])}
	if cfg.Type == "" {
		return "", HandlerConfig{}, newError(EmptyHandlerType,
			`error parsing configuration for log handler "%s": empty log handler type`, name)
	}

	for _, tok := range tokens[1:] {
		tok = strings.TrimSpace(tok)
		eq := strings.IndexByte(tok, '=')
		if eq < 0 {
			return "", HandlerConfig{}, newError(MalformedHandler,
				`error parsing configuration for log handler "%s": option "%s" is not of the form KEY=VALUE`, name, tok)
		}

		key := strings.TrimSpace(tok[:eq])
		if key == "" {
			return "", HandlerConfig{}, newError(MalformedHandler,
				`error parsing configuration for log handler "%s": empty option name`, name)
		}
		cfg.Options = cfg.Options.With(key, strings.TrimSpace(tok[eq+1:]))
	}

	return name, cfg, nil
}
