package logconfig

import (
	"fmt"
)

type ErrorKind int

const (
	InvalidLevel ErrorKind = iota + 1
	DuplicateCategory
	DuplicateHandler
	MalformedHandler
	EmptyHandlerName
	EmptyHandlerType
	TypeMismatch
	NoHandlerType
	MissingLevel
	NotAnObject
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidLevel:
		return "invalid level"
	case DuplicateCategory:
		return "duplicate category"
	case DuplicateHandler:
		return "duplicate handler"
	case MalformedHandler:
		return "malformed handler"
	case EmptyHandlerName:
		return "empty handler name"
	case EmptyHandlerType:
		return "empty handler type"
	case TypeMismatch:
		return "type mismatch"
	case NoHandlerType:
		return "no handler type"
	case MissingLevel:
		return "missing level"
	case NotAnObject:
		return "not an object"
	default:
		return "unknown"
	}
}

// ParseError is returned for every malformed configuration except JSON
// syntax errors, which come back as *jsonvalue.SyntaxError.
type ParseError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	return e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels below, so callers can write
// errors.Is(err, logconfig.ErrInvalidLevel).
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidLevel      = sentinel(InvalidLevel)
	ErrDuplicateCategory = sentinel(DuplicateCategory)
	ErrDuplicateHandler  = sentinel(DuplicateHandler)
	ErrMalformedHandler  = sentinel(MalformedHandler)
	ErrEmptyHandlerName  = sentinel(EmptyHandlerName)
	ErrEmptyHandlerType  = sentinel(EmptyHandlerType)
	ErrTypeMismatch      = sentinel(TypeMismatch)
	ErrNoHandlerType     = sentinel(NoHandlerType)
	ErrMissingLevel      = sentinel(MissingLevel)
	ErrNotAnObject       = sentinel(NotAnObject)
)

func sentinel(kind ErrorKind) *ParseError {
	return &ParseError{Kind: kind, Msg: kind.String()}
}

func newError(kind ErrorKind, format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func invalidLevelError(levelText, rawName string, cause error) *ParseError {
	err := newError(InvalidLevel, `invalid log level "%s" for category "%s"`, levelText, rawName)
	err.Err = cause
	return err
}

func duplicateCategoryError(canonical, first, second string) *ParseError {
	return newError(DuplicateCategory,
		`category "%s" listed multiple times under different names: "%s" and "%s"`,
		canonical, first, second)
}

func typeMismatchError(field, got, expected string) *ParseError {
	return newError(TypeMismatch, "unexpected data type for %s: got %s, expected %s", field, got, expected)
}
