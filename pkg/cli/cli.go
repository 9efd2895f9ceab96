package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingKey        = errors.New("missing key")
	ErrNoMatch           = errors.New("no match")
)

// Context is bound to every command Run method.
type Context struct {
	Stdout io.Writer
	Stderr io.Writer // summary lines
	Logger *slog.Logger
}

// CLI is the command line grammar of pathtrie.
type CLI struct {
	Verbose bool       `help:"Enable debug logging" short:"v"`
	Resolve ResolveCmd `cmd:"" help:"Remap paths by their longest mapped prefix"`
	Lookup  LookupCmd  `cmd:"" help:"Look up the exact mapping of paths"`
}

// Stats counts what a command did.
type Stats struct {
	Mappings int // mappings loaded from files
	Queried  int // paths looked up
	Matched  int // paths with a mapping
}

func (s *Stats) String() string {
	return fmt.Sprintf("Mappings: %d, Queried: %d, Matched: %d", s.Mappings, s.Queried, s.Matched)
}

// Run parses args and runs the selected command. Extra options are passed to kong,
// e.g. kong.Configuration to load flag defaults from a file.
//
// kong.JSON config files use top level snake_case keys ({"src_key": "from"}).
// Keys spelled like the flags ("src-key") or nested under a command name are ignored.
func Run(args []string, stdout io.Writer, stderr io.Writer, options ...kong.Option) error {
	var cli CLI
	options = append([]kong.Option{
		kong.Name("pathtrie"),
		kong.Description("Remap file system paths with a prefix table."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	}, options...)

	parser, err := kong.New(&cli, options...)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return ctx.Run(&Context{
		Stdout: stdout,
		Stderr: stderr,
		Logger: newLogger(stderr, cli.Verbose),
	})
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
