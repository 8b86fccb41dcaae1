package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/sysmanage/docsite/internal/config"
)

var (
	ErrUsage      = errors.New("cli: invalid usage")
	ErrIncomplete = errors.New("cli: translations are incomplete")
)

const usage = `usage: docsite <command> [flags]

commands:
  serve     serve the site with server-side translation (default)
  coverage  report translation coverage against the default language
  preview   render a page of a running site in another language
  publish   upload the site directory to the configured bucket

Configuration is read from .env and the environment (DOCSITE_*).
`

// Run dispatches args to a subcommand and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	name := "serve"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		name, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet("docsite "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var err error
	switch name {
	case "serve":
		if err = fs.Parse(args); err == nil {
			err = withConfig(func(cfg *config.Config) error { return Serve(ctx, cfg) })
		}
	case "coverage":
		var opts CoverageOptions
		if opts, err = ParseCoverage(fs, args); err == nil {
			err = withConfig(func(cfg *config.Config) error { return Coverage(ctx, cfg, opts, stdout) })
		}
	case "publish":
		var opts PublishOptions
		if opts, err = ParsePublish(fs, args); err == nil {
			err = withConfig(func(cfg *config.Config) error { return Publish(ctx, cfg, opts, stdout) })
		}
	case "preview":
		var opts PreviewOptions
		if opts, err = ParsePreview(fs, args); err == nil {
			err = Preview(ctx, opts, stdout)
		}
	case "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprint(stderr, usage)
		return 2
	}

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(stderr, "docsite %s: %v\n", name, err)
		return 2
	default:
		fmt.Fprintf(stderr, "docsite %s: %v\n", name, err)
		return 1
	}
}

func withConfig(fn func(*config.Config) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return fn(cfg)
}
