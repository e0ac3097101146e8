// altcfg formats, queries and converts alt-config documents.
//
// Usage:
//
//	altcfg [-v] [--color=auto|always|never] <command> [flags] [args]
//
// Every command reads the named files, or standard input when none are
// given, and works on the canonical form of the parsed documents.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/KimNorgaard/go-altcfg"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Exit codes. Commands that answer a question (get, diff) use exitFalse
// for a negative answer.
const (
	exitOK    = 0
	exitFalse = 1
	exitError = 2
)

// command is a subcommand of altcfg. Run registers its flags on flagSet
// and parses them from args.
type command struct {
	Name    string
	Summary string
	Usage   string
	Run     func(a *app, flagSet *pflag.FlagSet, args []string) error
}

var commands = []*command{fmtCommand, getCommand, convertCommand, importCommand, sumCommand, diffCommand}

// app carries the streams and settings shared by all commands.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
	colors palette
}

// palette holds the colors used for diagnostics and diffs. Disabled
// colors print their text unchanged.
type palette struct {
	err    *color.Color
	add    *color.Color
	del    *color.Color
	header *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed),
		add:    color.New(color.FgGreen),
		del:    color.New(color.FgRed),
		header: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.add, p.del, p.header} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// exitCode is returned by commands that end with a non-zero status without
// printing an error.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

func (e exitCode) ExitCode() int { return int(e) }

// usageError reports a malformed command line.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, colors: newPalette(false)}
	err := a.main(args)
	if err == nil {
		return exitOK
	}
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}
	a.report(err)
	return exitError
}

func (a *app) main(args []string) error {
	var (
		verbose   bool
		colorMode string
	)
	flagSet := pflag.NewFlagSet("altcfg", pflag.ContinueOnError)
	flagSet.SetOutput(a.stderr)
	flagSet.SetInterspersed(false)
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log debug messages to stderr")
	flagSet.StringVar(&colorMode, "color", "auto", "color output: auto, always or never")
	flagSet.Usage = func() { a.printHelp(flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return &usageError{msg: err.Error()}
	}

	a.log = newLogger(a.stderr, verbose)

	colored, err := a.useColor(colorMode)
	if err != nil {
		return err
	}
	a.colors = newPalette(colored)

	rest := flagSet.Args()
	if len(rest) == 0 {
		a.printHelp(flagSet)
		return exitCode(exitError)
	}
	name := rest[0]
	if name == "help" {
		a.printHelp(flagSet)
		return nil
	}
	for _, cmd := range commands {
		if cmd.Name == name {
			a.log.Debug("running command", "command", name, "args", rest[1:])
			return cmd.Run(a, a.newFlagSet(cmd), rest[1:])
		}
	}
	return usagef("unknown command %q", name)
}

// useColor decides whether output is colored. In auto mode color is used
// only when stdout is a terminal.
func (a *app) useColor(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := a.stdout.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	}
	return false, usagef("invalid --color value %q", mode)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// report prints err to stderr. Parse errors are shown as
// file:line:column: message.
func (a *app) report(err error) {
	var (
		located *locatedError
		usage   *usageError
	)
	switch {
	case errors.As(err, &located):
		fmt.Fprintln(a.stderr, a.colors.err.Sprint(located.Error()))
	case errors.As(err, &usage):
		fmt.Fprintln(a.stderr, a.colors.err.Sprint("altcfg: "+usage.msg))
		fmt.Fprintln(a.stderr, "Run 'altcfg help' for usage.")
	default:
		fmt.Fprintln(a.stderr, a.colors.err.Sprint("altcfg: "+err.Error()))
	}
}

func (a *app) printHelp(flagSet *pflag.FlagSet) {
	var sb strings.Builder
	sb.WriteString("altcfg formats, queries and converts alt-config documents.\n\n")
	sb.WriteString("Usage:\n  altcfg [flags] <command> [args]\n\nCommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(&sb, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
	sb.WriteString("\nFlags:\n")
	sb.WriteString(flagSet.FlagUsages())
	io.WriteString(a.stderr, sb.String())
}

// locatedError is a parse error tied to the file it came from.
type locatedError struct {
	name string
	err  *altcfg.ParseError
}

func (e *locatedError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.name, e.err.Line, e.err.Column, e.err.Message)
}

func (e *locatedError) Unwrap() error { return e.err }

// readInput returns the contents of the named file, or of stdin for "-".
func (a *app) readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(a.stdin)
	}
	return os.ReadFile(name)
}

// load reads and parses one document.
func (a *app) load(name string, opts ...altcfg.Option) (*altcfg.Node, []byte, error) {
	data, err := a.readInput(name)
	if err != nil {
		return nil, nil, err
	}
	root, err := altcfg.Parse(data, opts...)
	if err != nil {
		var pe *altcfg.ParseError
		if errors.As(err, &pe) {
			return nil, nil, &locatedError{name: displayName(name), err: pe}
		}
		return nil, nil, err
	}
	a.log.Debug("parsed document", "file", displayName(name), "bytes", len(data), "entries", root.Len())
	return root, data, nil
}

func displayName(name string) string {
	if name == "-" {
		return "<stdin>"
	}
	return name
}

// inputs returns the file arguments, or stdin when there are none.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

// newFlagSet returns the flag set of a subcommand. Its usage text goes to
// stderr.
func (a *app) newFlagSet(cmd *command) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(cmd.Name, pflag.ContinueOnError)
	flagSet.SetOutput(a.stderr)
	flagSet.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage:\n  altcfg %s\n\n%s\n", cmd.Usage, cmd.Summary)
		if flagSet.HasFlags() {
			fmt.Fprintf(a.stderr, "\nFlags:\n%s", flagSet.FlagUsages())
		}
	}
	return flagSet
}

// parseFlags parses a subcommand's flags. After -h has printed the help
// text it returns a zero exit code so the command stops.
func parseFlags(flagSet *pflag.FlagSet, args []string) error {
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitCode(exitOK)
		}
		return &usageError{msg: err.Error()}
	}
	return nil
}
