package logger

// Categories used by the logconfig binary.
const (
	Main     = "main"
	Parser   = "main.parse"
	Render   = "main.render"
	REPL     = "main.repl"
	Exporter = "main.exporter"
)
