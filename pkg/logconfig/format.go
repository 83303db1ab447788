package logconfig

import (
	"fmt"
	"strings"
)

// FormatCompact renders cfg in the compact syntax. It fails when a name,
// type, or option cannot be written without the separators the syntax
// reserves. Parsing the result yields a Config equal to cfg.
func FormatCompact(cfg *Config) (string, error) {
	var sb strings.Builder

	for i, name := range cfg.CategoryNames() {
		if err := checkCompactText("category name", name, ",;=:"); err != nil {
			return "", err
		}
		cat := cfg.categories[name]

		if i > 0 {
			sb.WriteString(",")
		}
		if name == "" {
			name = rootDisplayName
		}
		sb.WriteString(name)
		if cat.InheritParentLevel {
			sb.WriteString("=")
		} else {
			sb.WriteString(":=")
		}
		sb.WriteString(cat.Level.String())

		if cat.Handlers.IsSet() {
			sb.WriteString(":")
			for j, h := range cat.Handlers.Names() {
				if err := checkCompactText("handler name", h, ",;=:"); err != nil {
					return "", err
				}
				if j > 0 {
					sb.WriteString(":")
				}
				sb.WriteString(h)
			}
		}
	}

	for _, name := range cfg.HandlerNames() {
		h := cfg.handlers[name]
		if err := checkCompactText("handler name", name, ",;="); err != nil {
			return "", err
		}
		if err := checkCompactText("handler type", h.Type, ",;"); err != nil {
			return "", err
		}

		sb.WriteString("; ")
		sb.WriteString(name)
		sb.WriteString("=")
		sb.WriteString(h.Type)

		for _, k := range h.Options.Keys() {
			v, _ := h.Options.Get(k)
			if err := checkCompactText("option name", k, ",;="); err != nil {
				return "", err
			}
			if err := checkCompactText("option value", v, ",;"); err != nil {
				return "", err
			}
			sb.WriteString(",")
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(v)
		}
	}

	return sb.String(), nil
}

func checkCompactText(what, s, reserved string) error {
	if strings.ContainsAny(s, reserved) {
		return fmt.Errorf("%s %q contains a character reserved by the compact syntax (%s)", what, s, reserved)
	}
	if strings.TrimSpace(s) != s {
		return fmt.Errorf("%s %q has leading or trailing whitespace", what, s)
	}
	return nil
}
