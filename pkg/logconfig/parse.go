package logconfig

import (
	"strings"

	"github.com/veesix-networks/logcfg/pkg/jsonvalue"
)

// Parse reads either input form. Text whose first non-space character is
// '{' is treated as JSON; anything else uses the compact syntax. Empty or
// all-whitespace text yields an empty Config.
func Parse(text string) (*Config, error) {
	if strings.HasPrefix(strings.TrimSpace(text), "{") {
		return ParseJSON(text)
	}
	return parseCompact(text)
}

// ParseJSON reads the JSON form regardless of the leading character. JSON
// syntax errors are returned as *jsonvalue.SyntaxError.
func ParseJSON(text string) (*Config, error) {
	root, err := jsonvalue.Parse([]byte(text))
	if err != nil {
		return nil, err
	}
	return FromJSONValue(root)
}
