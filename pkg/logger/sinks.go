package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/veesix-networks/logcfg/pkg/logconfig"
)

// Handler types understood by the tree.
const (
	TypeStream  = "stream"
	TypeFile    = "file"
	TypeDiscard = "discard"
)

func newSink(name string, hc logconfig.HandlerConfig, opts Options) (slog.Handler, io.Closer, error) {
	var (
		w      io.Writer
		closer io.Closer
	)

	allowed := map[string]bool{"format": true}

	switch hc.Type {
	case TypeStream:
		allowed["stream"] = true
		stream, _ := hc.Options.Get("stream")
		switch stream {
		case "", "stderr":
			w = opts.Stderr
		case "stdout":
			w = opts.Stdout
		default:
			return nil, nil, fmt.Errorf("log handler %q: unknown stream %q", name, stream)
		}

	case TypeFile:
		for _, k := range rotateOptions {
			allowed[k] = true
		}
		allowed["path"] = true
		path, ok := hc.Options.Get("path")
		if !ok || path == "" {
			return nil, nil, fmt.Errorf("log handler %q: no path specified", name)
		}

		rotate, err := rotation(hc.Options)
		if err != nil {
			return nil, nil, fmt.Errorf("log handler %q: %w", name, err)
		}
		if rotate != nil {
			rotate.Filename = path
			w = rotate
			closer = rotate
			break
		}

		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("log handler %q: open %s: %w", name, path, err)
		}
		w = f
		closer = f

	case TypeDiscard:
		w = io.Discard

	default:
		return nil, nil, fmt.Errorf("log handler %q: unknown type %q", name, hc.Type)
	}

	for _, k := range hc.Options.Keys() {
		if !allowed[k] {
			if closer != nil {
				closer.Close()
			}
			return nil, nil, fmt.Errorf("log handler %q: unknown option %q for type %q", name, k, hc.Type)
		}
	}

	handlerOpts := &slog.HandlerOptions{Level: acceptAll}
	format, _ := hc.Options.Get("format")
	switch strings.ToLower(format) {
	case "", "text":
		return slog.NewTextHandler(w, handlerOpts), closer, nil
	case "json":
		return slog.NewJSONHandler(w, handlerOpts), closer, nil
	default:
		if closer != nil {
			closer.Close()
		}
		return nil, nil, fmt.Errorf("log handler %q: unknown format %q", name, format)
	}
}

var rotateOptions = []string{"max_size", "max_backups", "max_age", "compress"}

// rotation returns a rotating writer when any rotation option is present.
// Sizes are in megabytes and ages in days.
func rotation(opts logconfig.Options) (*lumberjack.Logger, error) {
	var (
		l   lumberjack.Logger
		set bool
	)

	ints := map[string]*int{
		"max_size":    &l.MaxSize,
		"max_backups": &l.MaxBackups,
		"max_age":     &l.MaxAge,
	}
	for key, dst := range ints {
		v, ok := opts.Get(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid %s %q", key, v)
		}
		*dst = n
		set = true
	}

	if v, ok := opts.Get("compress"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid compress %q", v)
		}
		l.Compress = b
		set = true
	}

	if !set {
		return nil, nil
	}
	return &l, nil
}
