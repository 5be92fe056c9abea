package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/internal/config"
)

var errUsage = errors.New("usage")

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, app *app, args []string) error
}

var commands = []command{
	{name: "render", summary: "render a form definition (vanilla HTML or tui outline)", run: runRender},
	{name: "schema", summary: "print the JSON Schema compiled from a form definition", run: runSchema},
	{name: "prompt", summary: "fill a form interactively and print the submitted values", run: runPrompt},
	{name: "serve", summary: "serve every definition in a directory over HTTP", run: runServe},
}

// app carries what every subcommand shares.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("dynform", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", os.Getenv("DYNFORM_CONFIG"), "optional YAML config file")
	global.Usage = func() { usage(global) }
	if err := global.Parse(args); err != nil {
		return 2
	}

	rest := global.Args()
	if len(rest) == 0 {
		usage(global)
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "dynform: %v\n", err)
		return 1
	}
	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "dynform: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	a := &app{cfg: cfg, logger: logger, stdout: stdout, stderr: stderr, stdin: stdin}
	for _, cmd := range commands {
		if cmd.name != rest[0] {
			continue
		}
		if err := cmd.run(ctx, a, rest[1:]); err != nil {
			if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
				return 2
			}
			fmt.Fprintf(stderr, "dynform %s: %v\n", cmd.name, err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(stderr, "dynform: unknown command %q\n\n", rest[0])
	usage(global)
	return 2
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintf(out, "Usage: %s [-config file] <command> [flags]\n\nCommands:\n", filepath.Base(os.Args[0]))
	for _, cmd := range commands {
		fmt.Fprintf(out, "  %-8s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintln(out, "\nGlobal flags:")
	fs.PrintDefaults()
}

func subcommand(a *app, name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: dynform %s %s\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}
