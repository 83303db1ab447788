// Package loglevel maps symbolic log severity names to integer severities
// and back. Higher values are more severe.
package loglevel

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type Level uint32

const (
	Uninitialized Level = 0
	None          Level = 1
	Debug         Level = 1000
	DBG0          Level = 1999
	DBG1          Level = 1998
	DBG2          Level = 1997
	DBG3          Level = 1996
	DBG4          Level = 1995
	DBG5          Level = 1994
	DBG6          Level = 1993
	DBG7          Level = 1992
	DBG8          Level = 1991
	DBG9          Level = 1990
	Info          Level = 2000
	Warn          Level = 3000
	Err           Level = 4000
	Critical      Level = 5000
	DFatal        Level = 0x7ffffffe
	Fatal         Level = 0x7fffffff
)

var ErrInvalidLevel = errors.New("invalid log level")

var levelsByName = map[string]Level{
	"uninitialized": Uninitialized,
	"none":          None,
	"dbg":           Debug,
	"debug":         Debug,
	"info":          Info,
	"warn":          Warn,
	"warning":       Warn,
	"err":           Err,
	"error":         Err,
	"critical":      Critical,
	"dfatal":        DFatal,
	"fatal":         Fatal,
}

var namesByLevel = map[Level]string{
	Uninitialized: "UNINITIALIZED",
	None:          "NONE",
	Debug:         "DEBUG",
	Info:          "INFO",
	Warn:          "WARN",
	Err:           "ERR",
	Critical:      "CRITICAL",
	DFatal:        "DFATAL",
	Fatal:         "FATAL",
}

func init() {
	for n := 0; n <= 9; n++ {
		lvl := DBG0 - Level(n)
		levelsByName[fmt.Sprintf("dbg%d", n)] = lvl
		levelsByName[fmt.Sprintf("debug%d", n)] = lvl
		namesByLevel[lvl] = fmt.Sprintf("DBG%d", n)
	}
}

// Parse converts a level name or an all-digit integer literal into a Level.
// Names are matched case-insensitively; integers outside the table are
// accepted verbatim.
func Parse(text string) (Level, error) {
	s := strings.TrimSpace(text)

	if lvl, ok := levelsByName[strings.ToLower(s)]; ok {
		return lvl, nil
	}

	if isDigits(s) {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w %q: out of range", ErrInvalidLevel, text)
		}
		return Level(n), nil
	}

	return 0, fmt.Errorf("%w %q", ErrInvalidLevel, text)
}

// FromInt accepts a raw integer severity, as found in JSON configuration.
func FromInt(n int64) (Level, error) {
	if n < 0 || n > math.MaxUint32 {
		return 0, fmt.Errorf("%w %d: out of range", ErrInvalidLevel, n)
	}
	return Level(n), nil
}

// String returns the symbolic name of l, or its decimal value when l is not
// in the table.
func (l Level) String() string {
	if name, ok := namesByLevel[l]; ok {
		return name
	}
	return strconv.FormatUint(uint64(l), 10)
}

// Names returns every recognised symbolic name in lower case, sorted.
func Names() []string {
	names := make([]string, 0, len(levelsByName))
	for name := range levelsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
