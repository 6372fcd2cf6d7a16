package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// errHelpShown ends a command after -h printed its flags.
var errHelpShown = errors.New("help shown")

// usageError is a missing or malformed argument. It is reported with the
// synopsis of the command.
type usageError struct {
	msg      string
	synopsis string
}

func (e *usageError) Error() string { return e.msg }

func usageErrorf(synopsis, format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...), synopsis: synopsis}
}

// command is the flag set of one subcommand.
type command struct {
	fs       *flag.FlagSet
	synopsis string
	verbose  *bool
}

func newCommand(name, synopsis string) *command {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return &command{
		fs:       fs,
		synopsis: synopsis,
		verbose:  fs.Bool("verbose", false, "log debug output to stderr"),
	}
}

// parse parses args, accepting flags before and after positional
// arguments. -h prints the flags to out.
func (c *command) parse(args []string, out io.Writer) ([]string, error) {
	var positional []string
	for {
		if err := c.fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				c.printHelp(out)
				return nil, errHelpShown
			}
			return nil, &usageError{msg: err.Error(), synopsis: c.synopsis}
		}
		rest := c.fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func (c *command) printHelp(out io.Writer) {
	fmt.Fprintf(out, "usage: %s\n\nflags:\n", c.synopsis)
	c.fs.VisitAll(func(f *flag.Flag) {
		def := ""
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0s" {
			def = fmt.Sprintf(" (default %q)", f.DefValue)
		}
		fmt.Fprintf(out, "  --%-10s %s%s\n", f.Name, f.Usage, def)
	})
}

func requireFlag(c *command, name, value string) error {
	if strings.TrimSpace(value) == "" {
		return usageErrorf(c.synopsis, "--%s is required", name)
	}
	return nil
}
