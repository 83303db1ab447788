package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/veesix-networks/logcfg/pkg/logconfig"
	"github.com/veesix-networks/logcfg/pkg/logger"
)

type OutputFormat string

const (
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatCompact OutputFormat = "compact"
	FormatTOML    OutputFormat = "toml"
)

type Formatter struct {
	format OutputFormat
}

func NewFormatter(format OutputFormat) (*Formatter, error) {
	switch format {
	case FormatJSON, FormatYAML, FormatCompact, FormatTOML:
		return &Formatter{format: format}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func (f *Formatter) Format(cfg *logconfig.Config) (string, error) {
	logger.Get(logger.Render).Debug("Rendering configuration", "format", string(f.format))

	switch f.format {
	case FormatJSON:
		return f.formatJSON(cfg)
	case FormatYAML:
		return f.formatYAML(cfg)
	case FormatTOML:
		return f.formatTOML(cfg)
	case FormatCompact:
		text, err := logconfig.FormatCompact(cfg)
		if err != nil {
			return "", err
		}
		return text + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s", f.format)
	}
}

func (f *Formatter) formatJSON(cfg *logconfig.Config) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(cfg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (f *Formatter) formatYAML(cfg *logconfig.Config) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (f *Formatter) formatTOML(cfg *logconfig.Config) (string, error) {
	data, err := toml.Marshal(logconfig.Render(cfg).Interface())
	if err != nil {
		return "", err
	}
	return string(data), nil
}
