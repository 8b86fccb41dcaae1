package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/sysmanage/docsite/internal/config"
	"github.com/sysmanage/docsite/pkg/i18n"
	"github.com/sysmanage/docsite/pkg/logger"
)

// CoverageOptions configures the coverage command.
type CoverageOptions struct {
	Format string // text or json
	Prefix string // only report missing keys under this dot-key prefix
	Strict bool   // fail when any language is incomplete
}

// ParseCoverage parses coverage flags.
func ParseCoverage(fs *flag.FlagSet, args []string) (CoverageOptions, error) {
	var opts CoverageOptions
	fs.StringVar(&opts.Format, "format", "text", "output format: text or json")
	fs.StringVar(&opts.Prefix, "prefix", "", "only list missing keys under this key prefix")
	fs.BoolVar(&opts.Strict, "strict", false, "exit non-zero when a language is incomplete")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.Format != "text" && opts.Format != "json" {
		return opts, fmt.Errorf("%w: unknown format %q", ErrUsage, opts.Format)
	}
	return opts, nil
}

// Coverage loads every configured bundle and reports the keys each one is
// missing relative to the default language.
func Coverage(ctx context.Context, cfg *config.Config, opts CoverageOptions, out io.Writer) error {
	fsys, err := Content(ctx, cfg)
	if err != nil {
		return err
	}
	store, err := NewStore(cfg, fsys, logger.NewNope())
	if err != nil {
		return err
	}

	def := store.DefaultLanguage()
	if err := store.Load(ctx, def); err != nil {
		return err
	}
	reference, _ := store.Bundle(def)

	var (
		bundles []*i18n.Bundle
		absent  []i18n.Code
	)
	for _, code := range store.Languages().Codes() {
		_ = store.Load(ctx, code)
		if b, ok := store.Bundle(code); ok {
			bundles = append(bundles, b)
		} else {
			absent = append(absent, code)
		}
	}

	report := i18n.Coverage(reference, bundles...)
	if opts.Prefix != "" {
		for i := range report.Languages {
			report.Languages[i].Missing = report.Languages[i].MissingWithPrefix(opts.Prefix)
		}
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			i18n.CoverageReport
			Absent []i18n.Code `json:"absent"`
		}{report, absent}); err != nil {
			return err
		}
	} else {
		writeCoverage(out, report, absent)
	}

	if opts.Strict && !complete(report, absent) {
		return ErrIncomplete
	}
	return nil
}

func complete(report i18n.CoverageReport, absent []i18n.Code) bool {
	if len(absent) > 0 {
		return false
	}
	for _, lc := range report.Languages {
		if !lc.Complete() {
			return false
		}
	}
	return true
}

func writeCoverage(out io.Writer, report i18n.CoverageReport, absent []i18n.Code) {
	fmt.Fprintf(out, "reference %s: %d keys\n\n", report.Reference, report.ReferenceKeys)
	for _, lc := range report.Languages {
		fmt.Fprintf(out, "%-6s %6.1f%%  missing %d  extra %d\n",
			lc.Code, lc.CompletionRate, len(lc.Missing), len(lc.Extra))
		for _, key := range lc.Missing {
			fmt.Fprintf(out, "         - %s\n", key)
		}
	}
	if len(absent) > 0 {
		codes := make([]string, len(absent))
		for i, c := range absent {
			codes[i] = string(c)
		}
		fmt.Fprintf(out, "\nno bundle: %s\n", strings.Join(codes, ", "))
	}
}
