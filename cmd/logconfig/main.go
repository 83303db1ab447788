package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/veesix-networks/logcfg/pkg/jsonvalue"
	"github.com/veesix-networks/logcfg/pkg/logconfig"
	"github.com/veesix-networks/logcfg/pkg/logger"
	"github.com/veesix-networks/logcfg/pkg/version"
)

const defaultLogConfig = "WARN:stderr; stderr=stream,stream=stderr"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("logconfig", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		file        = fs.String("f", "", "Read configuration from file (- for stdin)")
		forceJSON   = fs.Bool("json", false, "Parse input as JSON regardless of its first character")
		format      = fs.String("o", string(FormatJSON), "Output format: json, yaml, toml or compact")
		logConfig   = fs.String("log", defaultLogConfig, "Log configuration for this tool")
		interactive = fs.Bool("i", false, "Start an interactive prompt")
		metricsAddr = fs.String("metrics", "", "Serve Prometheus metrics on this address")
		showVersion = fs.Bool("version", false, "Print version and exit")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: logconfig [flags] [config text]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.Full())
		return 0
	}

	if *metricsAddr != "" && !*interactive {
		fmt.Fprintf(stderr, "Error: -metrics requires -i\n")
		return 2
	}

	logOpts := logger.Options{Stdout: stdout, Stderr: stderr}

	var exp *exporter
	if *metricsAddr != "" {
		exp = newExporter(*metricsAddr)
		m, err := logger.NewMetrics(exp.registry)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		logOpts.Metrics = m
	}

	if err := logger.Configure(*logConfig, logOpts); err != nil {
		fmt.Fprintf(stderr, "Error: invalid -log value: %v\n", err)
		return 2
	}
	mainLog := logger.Get(logger.Main)
	mainLog.Debug("Starting logconfig", "version", version.Get().Version)

	if exp != nil {
		exp.Start()
		defer exp.Stop()
	}

	formatter, err := NewFormatter(OutputFormat(*format))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	p := &parser{forceJSON: *forceJSON, formatter: formatter, exporter: exp}

	if *interactive {
		r := &REPL{parser: p, stdout: stdout, stderr: stderr}
		if err := r.Run(); err != nil {
			mainLog.Error("Interactive session failed", "error", err)
			return 1
		}
		return 0
	}

	text, err := readInput(*file, fs.Args(), stdin)
	if err != nil {
		mainLog.Error("Failed to read input", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	out, err := p.process(text)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprint(stdout, out)
	return 0
}

func readInput(file string, args []string, stdin io.Reader) (string, error) {
	switch {
	case file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		if len(args) > 0 {
			return "", fmt.Errorf("unexpected arguments with -f: %s", strings.Join(args, " "))
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read config file: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case isTerminal(stdin):
		return "", nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}

// isTerminal reports whether r is an interactive terminal. Readers that are
// not files count as piped input.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && readline.IsTerminal(int(f.Fd()))
}

type parser struct {
	forceJSON bool
	formatter *Formatter
	exporter  *exporter
}

func (p *parser) parse(text string) (*logconfig.Config, error) {
	log := logger.Get(logger.Parser)

	var (
		cfg *logconfig.Config
		err error
	)
	if p.forceJSON {
		cfg, err = logconfig.ParseJSON(text)
	} else {
		cfg, err = logconfig.Parse(text)
	}
	if p.exporter != nil {
		p.exporter.observeParse(err)
	}
	if err != nil {
		var syntaxErr *jsonvalue.SyntaxError
		var parseErr *logconfig.ParseError
		switch {
		case errors.As(err, &syntaxErr):
			log.Debug("JSON syntax error", "error", err)
		case errors.As(err, &parseErr):
			log.Debug("Configuration rejected", "kind", parseErr.Kind.String(), "error", err)
		}
		return nil, err
	}

	log.Debug("Parsed configuration",
		"categories", len(cfg.CategoryNames()),
		"handlers", len(cfg.HandlerNames()))
	return cfg, nil
}

func (p *parser) process(text string) (string, error) {
	cfg, err := p.parse(text)
	if err != nil {
		return "", err
	}
	return p.formatter.Format(cfg)
}
