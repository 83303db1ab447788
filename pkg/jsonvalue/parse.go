package jsonvalue

import (
	"fmt"

	"github.com/tailscale/hujson"
)

// SyntaxError reports malformed input. Its message always starts with
// "json parse error".
type SyntaxError struct {
	msg string
	err error
}

func (e *SyntaxError) Error() string {
	return "json parse error: " + e.msg
}

func (e *SyntaxError) Unwrap() error {
	return e.err
}

func syntaxError(err error) *SyntaxError {
	return &SyntaxError{msg: err.Error(), err: err}
}

// Parse decodes exactly one JSON value from data, tolerating comments and
// trailing commas. Object member order is preserved.
func Parse(data []byte) (Value, error) {
	root, err := hujson.Parse(data)
	if err != nil {
		return Value{}, syntaxError(err)
	}

	v, err := fromAST(root)
	if err != nil {
		return Value{}, syntaxError(err)
	}
	return v, nil
}

func fromAST(node hujson.Value) (Value, error) {
	switch t := node.Value.(type) {
	case *hujson.Object:
		members := make([]Member, 0, len(t.Members))
		for _, m := range t.Members {
			name, ok := m.Name.Value.(hujson.Literal)
			if !ok || name.Kind() != '"' {
				return Value{}, fmt.Errorf("object key must be a string at offset %d", m.Name.StartOffset)
			}
			val, err := fromAST(m.Value)
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: name.String(), Value: val})
		}
		return Value{kind: Object, members: members}, nil

	case *hujson.Array:
		elems := make([]Value, 0, len(t.Elements))
		for _, e := range t.Elements {
			val, err := fromAST(e)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, val)
		}
		return Value{kind: Array, elems: elems}, nil

	case hujson.Literal:
		switch t.Kind() {
		case 'n':
			return NullValue(), nil
		case 't', 'f':
			return BoolValue(t.Bool()), nil
		case '"':
			return StringValue(t.String()), nil
		case '0':
			return numberValue(string(t)), nil
		}
	}

	return Value{}, fmt.Errorf("unexpected value at offset %d", node.StartOffset)
}
