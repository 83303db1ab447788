package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/veesix-networks/logcfg/pkg/logger"
)

// REPL parses one configuration per input line and prints the result.
// Lines starting with a backslash are commands.
type REPL struct {
	parser *parser
	stdout io.Writer
	stderr io.Writer
	rl     *readline.Instance
}

func (r *REPL) Run() error {
	var err error
	r.rl, err = readline.NewEx(&readline.Config{
		Prompt:          "logconfig> ",
		HistoryFile:     os.ExpandEnv("$HOME/.logconfig_history"),
		AutoComplete:    r.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          r.stdout,
		Stderr:          r.stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer r.rl.Close()

	log := logger.Get(logger.REPL)
	log.Debug("Interactive session started")

	for {
		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					break
				}
				continue
			} else if err == io.EOF {
				break
			}
			return err
		}

		if !r.handleLine(line) {
			break
		}
	}

	log.Debug("Interactive session ended")
	return nil
}

func (r *REPL) completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(`\format`,
			readline.PcItem(string(FormatJSON)),
			readline.PcItem(string(FormatYAML)),
			readline.PcItem(string(FormatCompact)),
			readline.PcItem(string(FormatTOML)),
		),
		readline.PcItem(`\json`,
			readline.PcItem("on"),
			readline.PcItem("off"),
		),
		readline.PcItem(`\help`),
		readline.PcItem(`\quit`),
	)
}

// handleLine processes one line and reports whether the session continues.
func (r *REPL) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}

	if strings.HasPrefix(line, `\`) {
		return r.command(strings.Fields(line[1:]))
	}

	out, err := r.parser.process(line)
	if err != nil {
		fmt.Fprintf(r.stderr, "Error: %v\n", err)
		return true
	}
	fmt.Fprint(r.stdout, out)
	return true
}

func (r *REPL) command(fields []string) bool {
	if len(fields) == 0 {
		r.printHelp()
		return true
	}

	switch fields[0] {
	case "quit", "exit", "q":
		return false

	case "help", "?":
		r.printHelp()

	case "format":
		if len(fields) != 2 {
			fmt.Fprintf(r.stderr, "Error: usage: \\format json|yaml|toml|compact\n")
			return true
		}
		f, err := NewFormatter(OutputFormat(fields[1]))
		if err != nil {
			fmt.Fprintf(r.stderr, "Error: %v\n", err)
			return true
		}
		r.parser.formatter = f

	case "json":
		if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
			fmt.Fprintf(r.stderr, "Error: usage: \\json on|off\n")
			return true
		}
		r.parser.forceJSON = fields[1] == "on"

	default:
		fmt.Fprintf(r.stderr, "Error: unknown command: \\%s\n", fields[0])
	}
	return true
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.stdout, "Enter a log configuration to parse it, or a command:")
	for _, line := range [][2]string{
		{`\format json|yaml|toml|compact`, "set the output format"},
		{`\json on|off`, "always parse input as JSON"},
		{`\help`, "show this help"},
		{`\quit`, "leave the prompt"},
	} {
		fmt.Fprintf(r.stdout, "  %-32s %s\n", line[0], line[1])
	}
}
