// Package jsonvalue holds a generic, order-preserving JSON value tree and a
// tolerant parser for it. Input may carry // and /* */ comments and trailing
// commas.
package jsonvalue

import (
	"strconv"
	"strings"
)

type Kind int

const (
	Null Kind = iota
	Bool
	Integer
	Double
	String
	Array
	Object
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Integer:
		return "integer"
	case Double:
		return "double"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an immutable JSON value. The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	s       string
	elems   []Value
	members []Member
}

// Member is one key/value pair of an object, in source order.
type Member struct {
	Key   string
	Value Value
}

func NullValue() Value { return Value{} }

func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

func StringValue(s string) Value { return Value{kind: String, s: s} }

func IntValue(n int64) Value {
	return Value{kind: Integer, s: strconv.FormatInt(n, 10)}
}

func UintValue(n uint64) Value {
	return Value{kind: Integer, s: strconv.FormatUint(n, 10)}
}

func FloatValue(f float64) Value {
	return Value{kind: Double, s: strconv.FormatFloat(f, 'g', -1, 64)}
}

func ArrayValue(elems ...Value) Value {
	return Value{kind: Array, elems: append([]Value(nil), elems...)}
}

func ObjectValue(members ...Member) Value {
	return Value{kind: Object, members: append([]Member(nil), members...)}
}

// numberValue classifies literal number text as it appeared in the input.
func numberValue(text string) Value {
	if strings.ContainsAny(text, ".eE") {
		return Value{kind: Double, s: text}
	}
	return Value{kind: Integer, s: text}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == Null }

// Bool reports the boolean value; ok is false for other kinds.
func (v Value) Bool() (b bool, ok bool) {
	return v.b, v.kind == Bool
}

// Str reports the string value; ok is false for other kinds.
func (v Value) Str() (s string, ok bool) {
	return v.s, v.kind == String
}

// Int64 reports the integer value. ok is false for non-integers and for
// integers outside the int64 range.
func (v Value) Int64() (n int64, ok bool) {
	if v.kind != Integer {
		return 0, false
	}
	n, err := strconv.ParseInt(v.s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float64 reports the numeric value of an integer or double.
func (v Value) Float64() (f float64, ok bool) {
	if v.kind != Integer && v.kind != Double {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// NumberText returns the literal text of a number as written.
func (v Value) NumberText() string {
	if v.kind != Integer && v.kind != Double {
		return ""
	}
	return v.s
}

// Len returns the number of array elements or object members.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.elems)
	case Object:
		return len(v.members)
	default:
		return 0
	}
}

func (v Value) Elements() []Value {
	return append([]Value(nil), v.elems...)
}

// Members returns object members in source order, duplicates included.
func (v Value) Members() []Member {
	return append([]Member(nil), v.members...)
}

// Fields returns object members with repeated keys collapsed: each key keeps
// the position of its first occurrence and the value of its last, matching Get.
func (v Value) Fields() []Member {
	if v.kind != Object {
		return nil
	}
	index := make(map[string]int, len(v.members))
	out := make([]Member, 0, len(v.members))
	for _, m := range v.members {
		if i, ok := index[m.Key]; ok {
			out[i].Value = m.Value
			continue
		}
		index[m.Key] = len(out)
		out = append(out, m)
	}
	return out
}

// Get looks up key in an object. When a key repeats, the last one wins.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	for i := len(v.members) - 1; i >= 0; i-- {
		if v.members[i].Key == key {
			return v.members[i].Value, true
		}
	}
	return Value{}, false
}

// Equal compares two values structurally. Object member order is ignored;
// numbers compare by numeric value within the same kind.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.b == o.b
	case String:
		return v.s == o.s
	case Integer, Double:
		if v.s == o.s {
			return true
		}
		a, aok := v.Float64()
		b, bok := o.Float64()
		return aok && bok && a == b
	case Array:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	case Object:
		keys := v.uniqueKeys()
		if len(keys) != len(o.uniqueKeys()) {
			return false
		}
		for _, k := range keys {
			a, _ := v.Get(k)
			b, ok := o.Get(k)
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) uniqueKeys() []string {
	seen := make(map[string]struct{}, len(v.members))
	keys := make([]string, 0, len(v.members))
	for _, m := range v.members {
		if _, ok := seen[m.Key]; ok {
			continue
		}
		seen[m.Key] = struct{}{}
		keys = append(keys, m.Key)
	}
	return keys
}

// Interface converts v into plain Go values: nil, bool, int64, uint64,
// float64, string, []any and map[string]any. Integers too large for int64
// become uint64, or float64 beyond that. Repeated object keys keep the last
// value.
func (v Value) Interface() any {
	switch v.kind {
	case Bool:
		return v.b
	case String:
		return v.s
	case Integer:
		if n, err := strconv.ParseInt(v.s, 10, 64); err == nil {
			return n
		}
		if n, err := strconv.ParseUint(v.s, 10, 64); err == nil {
			return n
		}
		f, _ := strconv.ParseFloat(v.s, 64)
		return f
	case Double:
		f, _ := strconv.ParseFloat(v.s, 64)
		return f
	case Array:
		out := make([]any, len(v.elems))
		for i, e := range v.elems {
			out[i] = e.Interface()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}
