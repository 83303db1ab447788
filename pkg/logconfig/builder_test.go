package logconfig

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veesix-networks/logcfg/pkg/loglevel"
)

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"":              "",
		".":             "",
		"...":           "",
		"foo":           "foo",
		"foo.bar":       "foo.bar",
		"foo..bar":      "foo.bar",
		".foo.bar.":     "foo.bar",
		"..a...b..c..":  "a.b.c",
		"  my.category": "  my.category",
		"a . b":         "a . b",
	}

	for raw, want := range tests {
		assert.Equal(t, want, NormalizeName(raw), "NormalizeName(%q)", raw)
	}
}

func TestBuilderCollision(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddCategory("foo.bar", category(loglevel.Err, true)))
	require.NoError(t, b.AddCategory("foo.bar", category(loglevel.Info, true)))

	err := b.AddCategory(".foo.bar", category(loglevel.Warn, true))
	require.ErrorIs(t, err, ErrDuplicateCategory)
	assert.EqualError(t, err, `category "foo.bar" listed multiple times under different names: "foo.bar" and ".foo.bar"`)

	cfg := b.Config()
	got, ok := cfg.Category("foo.bar")
	require.True(t, ok)
	assert.Equal(t, loglevel.Info, got.Level)
}

func TestBuilderReportsFirstSpelling(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddCategory("a..b", category(loglevel.Err, true)))

	err := b.AddCategory("a...b", category(loglevel.Err, true))
	assert.EqualError(t, err, `category "a.b" listed multiple times under different names: "a..b" and "a...b"`)

	err = b.AddCategory("a.b", category(loglevel.Err, true))
	assert.EqualError(t, err, `category "a.b" listed multiple times under different names: "a..b" and "a.b"`)
}

func TestBuilderHandlers(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddHandler("h1", HandlerConfig{Type: "file"}))

	assert.ErrorIs(t, b.AddHandler("h1", HandlerConfig{Type: "stream"}), ErrDuplicateHandler)
	assert.ErrorIs(t, b.AddHandler("", HandlerConfig{Type: "stream"}), ErrEmptyHandlerName)
	assert.ErrorIs(t, b.AddHandler("h2", HandlerConfig{}), ErrEmptyHandlerType)

	cfg := b.Config()
	assert.Equal(t, []string{"h1"}, cfg.HandlerNames())
	h, _ := cfg.Handler("h1")
	assert.Equal(t, "file", h.Type)
}

func TestBuilderSnapshotIsIndependent(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddCategory("a", category(loglevel.Err, true)))
	first := b.Config()

	require.NoError(t, b.AddCategory("b", category(loglevel.Err, true)))
	second := b.Config()

	assert.Equal(t, []string{"a"}, first.CategoryNames())
	assert.Equal(t, []string{"a", "b"}, second.CategoryNames())
}

func TestConfigAccessorsReturnCopies(t *testing.T) {
	cfg, err := Parse("a=INFO:h; h=file,path=/x")
	require.NoError(t, err)

	cats := cfg.CategoryConfigs()
	delete(cats, "a")
	_, ok := cfg.Category("a")
	assert.True(t, ok)

	a, _ := cfg.Category("a")
	names := a.Handlers.Names()
	names[0] = "mutated"
	again, _ := cfg.Category("a")
	assert.Equal(t, []string{"h"}, again.Handlers.Names())

	h, _ := cfg.Handler("h")
	opts := h.Options.Map()
	opts["path"] = "/y"
	v, _ := h.Options.Get("path")
	assert.Equal(t, "/x", v)
}

func TestOptions(t *testing.T) {
	o := OptionsOf("a", "1", "b", "2")
	o2 := o.With("a", "3").With("c", "4")

	assert.Equal(t, []string{"a", "b"}, o.Keys())
	assert.Equal(t, []string{"a", "b", "c"}, o2.Keys())
	v, _ := o.Get("a")
	assert.Equal(t, "1", v)
	v, _ = o2.Get("a")
	assert.Equal(t, "3", v)

	assert.True(t, OptionsOf("x", "1", "y", "2").Equal(OptionsOf("y", "2", "x", "1")))
	assert.False(t, OptionsOf("x", "1").Equal(OptionsOf("x", "2")))
	assert.False(t, OptionsOf("x", "1").Equal(OptionsOf()))
	assert.True(t, Options{}.Equal(OptionsOf()))
}

func TestHandlerListEqual(t *testing.T) {
	assert.True(t, UnsetHandlers().Equal(HandlerList{}))
	assert.True(t, SetHandlers().Equal(SetHandlers()))
	assert.False(t, UnsetHandlers().Equal(SetHandlers()))
	assert.False(t, SetHandlers("a").Equal(SetHandlers("b")))
	assert.False(t, SetHandlers("a", "b").Equal(SetHandlers("b", "a")))
}

func TestParseConcurrent(t *testing.T) {
	const input = "ERR:h1, app=DBG2, app.io:=WARN; h1=file,path=/tmp/x.log"

	var wg sync.WaitGroup
	results := make([]*Config, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfg, err := Parse(input)
			if err == nil {
				results[i] = cfg
			}
		}(i)
	}
	wg.Wait()

	for _, cfg := range results {
		require.NotNil(t, cfg)
		assert.True(t, results[0].Equal(cfg))
	}
}
