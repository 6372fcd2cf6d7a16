package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gnana997/techdocs/pkg/util"
)

const version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app carries the output streams of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
}

// run executes one command and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	a := &app{stdout: stdout, stderr: stderr}
	var err error

	command := args[0]
	switch command {
	case "components":
		err = a.runAnalyze(analyzeComponents, args[1:])
	case "stores":
		err = a.runAnalyze(analyzeStores, args[1:])
	case "types":
		err = a.runAnalyze(analyzeTypes, args[1:])
	case "html":
		err = a.runHTML(args[1:])
	case "pdf":
		err = a.runPDF(args[1:])
	case "watch":
		err = a.runWatch(args[1:])
	case "serve":
		err = a.runServe(args[1:])
	case "schema":
		err = a.runSchema(args[1:])
	case "version":
		fmt.Fprintf(stdout, "techdocs %s\n", version)
	case "help", "-h", "--help":
		printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}

	if err == nil || errors.Is(err, errHelpShown) {
		return 0
	}
	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "error: %s\n\nusage: %s\n", ue.msg, ue.synopsis)
		return 1
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}

// logger builds the slog logger of a command. Logs always go to stderr.
func (a *app) logger(verbose bool) *slog.Logger {
	return util.NewLogger(util.CommandLoggerConfig(a.stderr, verbose))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: techdocs <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  components  Analyze React components and print a JSON report")
	fmt.Fprintln(w, "  stores      Analyze state stores and print a JSON report")
	fmt.Fprintln(w, "  types       Analyze TypeScript declarations and print a JSON report")
	fmt.Fprintln(w, "  html        Generate the HTML documentation of a project")
	fmt.Fprintln(w, "  pdf         Generate one PDF document of a project")
	fmt.Fprintln(w, "  watch       Regenerate the HTML documentation when sources change")
	fmt.Fprintln(w, "  serve       Start the MCP server on stdio")
	fmt.Fprintln(w, "  schema      Print the JSON Schema of a report")
	fmt.Fprintln(w, "  version     Print version")
	fmt.Fprintln(w, "  help        Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'techdocs <command> -h' for the flags of a command.")
}
