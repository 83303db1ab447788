package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/veesix-networks/logcfg/pkg/logconfig"
	"github.com/veesix-networks/logcfg/pkg/loglevel"
)

const DefaultLevel = loglevel.Info

// acceptAll lets sinks pass everything; filtering happens per category.
const acceptAll = slog.Level(math.MinInt32)

var defaultTree atomic.Pointer[Tree]

func init() {
	t, err := New(nil, Options{})
	if err != nil {
		panic(err)
	}
	defaultTree.Store(t)
}

// Options holds the process resources a Tree may write to. Nil writers fall
// back to os.Stdout and os.Stderr.
type Options struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Metrics *Metrics
}

// Tree resolves category loggers from a parsed configuration.
type Tree struct {
	cfg      *logconfig.Config
	sinks    map[string]slog.Handler
	closers  []io.Closer
	fallback slog.Handler
	metrics  *Metrics
	cache    sync.Map
}

// New builds a Tree from cfg. A nil cfg yields the default tree: root at
// INFO writing text to stderr.
func New(cfg *logconfig.Config, opts Options) (*Tree, error) {
	if cfg == nil {
		cfg = logconfig.NewBuilder().Config()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	t := &Tree{
		cfg:      cfg,
		sinks:    make(map[string]slog.Handler),
		fallback: slog.NewTextHandler(opts.Stderr, &slog.HandlerOptions{Level: acceptAll}),
		metrics:  opts.Metrics,
	}

	for _, name := range cfg.HandlerNames() {
		hc, _ := cfg.Handler(name)
		sink, closer, err := newSink(name, hc, opts)
		if err != nil {
			t.Close()
			return nil, err
		}
		t.sinks[name] = sink
		if closer != nil {
			t.closers = append(t.closers, closer)
		}
	}

	for _, name := range cfg.CategoryNames() {
		cc, _ := cfg.Category(name)
		for _, h := range cc.Handlers.Names() {
			if _, ok := t.sinks[h]; !ok {
				t.Close()
				if name == "" {
					name = "."
				}
				return nil, fmt.Errorf("log category %q refers to unknown log handler %q", name, h)
			}
		}
	}

	return t, nil
}

// Close releases files opened by file handlers.
func (t *Tree) Close() error {
	var firstErr error
	for _, c := range t.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	t.closers = nil
	return firstErr
}

// Get returns the logger for a category. Names are normalized the same way
// the configuration parser normalizes them.
func (t *Tree) Get(category string) *slog.Logger {
	name := logconfig.NormalizeName(category)
	if l, ok := t.cache.Load(name); ok {
		return l.(*slog.Logger)
	}

	l := slog.New(t.newCategoryHandler(name))
	actual, _ := t.cache.LoadOrStore(name, l)
	return actual.(*slog.Logger)
}

// EffectiveLevel returns the minimum severity a category emits.
func (t *Tree) EffectiveLevel(category string) loglevel.Level {
	return t.effectiveLevel(logconfig.NormalizeName(category))
}

func (t *Tree) effectiveLevel(name string) loglevel.Level {
	cc, ok := t.cfg.Category(name)
	if name == "" {
		if !ok {
			return DefaultLevel
		}
		return cc.Level
	}

	parent := t.effectiveLevel(parentOf(name))
	if !ok {
		return parent
	}
	if cc.InheritParentLevel && parent < cc.Level {
		return parent
	}
	return cc.Level
}

// Handlers returns the handler names a category writes to: those of the
// nearest category, itself included, whose handler list is set.
func (t *Tree) Handlers(category string) []string {
	name := logconfig.NormalizeName(category)
	for {
		if cc, ok := t.cfg.Category(name); ok && cc.Handlers.IsSet() {
			return cc.Handlers.Names()
		}
		if name == "" {
			return nil
		}
		name = parentOf(name)
	}
}

func (t *Tree) newCategoryHandler(name string) *categoryHandler {
	h := &categoryHandler{
		category: name,
		level:    t.effectiveLevel(name),
		metrics:  t.metrics,
	}

	// Bound before any group so the key stays top level.
	attrs := []slog.Attr{slog.String("category", name)}

	names := t.Handlers(name)
	if names == nil {
		h.sinks = []slog.Handler{t.fallback.WithAttrs(attrs)}
		return h
	}
	for _, n := range names {
		h.sinks = append(h.sinks, t.sinks[n].WithAttrs(attrs))
	}
	return h
}

func parentOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}

type categoryHandler struct {
	category string
	level    loglevel.Level
	sinks    []slog.Handler
	metrics  *Metrics
}

func (h *categoryHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return FromSlog(level) >= h.level
}

func (h *categoryHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.metrics != nil {
		h.metrics.observe(h.category, FromSlog(r.Level))
	}

	var firstErr error
	for _, s := range h.sinks {
		if !s.Enabled(ctx, r.Level) {
			continue
		}
		if err := s.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *categoryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sinks := make([]slog.Handler, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = s.WithAttrs(attrs)
	}
	return &categoryHandler{category: h.category, level: h.level, sinks: sinks, metrics: h.metrics}
}

func (h *categoryHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	sinks := make([]slog.Handler, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = s.WithGroup(name)
	}
	return &categoryHandler{category: h.category, level: h.level, sinks: sinks, metrics: h.metrics}
}

// FromSlog maps an slog level onto a severity.
func FromSlog(level slog.Level) loglevel.Level {
	switch {
	case level >= slog.LevelError+4:
		return loglevel.Critical
	case level >= slog.LevelError:
		return loglevel.Err
	case level >= slog.LevelWarn:
		return loglevel.Warn
	case level >= slog.LevelInfo:
		return loglevel.Info
	case level >= slog.LevelDebug:
		return loglevel.DBG0
	default:
		return loglevel.Debug
	}
}

// Configure parses text and installs the result as the process-wide tree.
// The previous tree is closed.
func Configure(text string, opts Options) error {
	cfg, err := logconfig.Parse(text)
	if err != nil {
		return fmt.Errorf("parse log config: %w", err)
	}

	t, err := New(cfg, opts)
	if err != nil {
		return err
	}

	if old := defaultTree.Swap(t); old != nil {
		old.Close()
	}
	return nil
}

// Get returns a category logger from the process-wide tree.
func Get(category string) *slog.Logger {
	return defaultTree.Load().Get(category)
}
