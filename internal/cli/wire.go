package cli

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/sysmanage/docsite/internal/config"
	"github.com/sysmanage/docsite/pkg/i18n"
	"github.com/sysmanage/docsite/pkg/storage"
)

// Content returns the filesystem the site is served from: the configured
// bucket when storage is enabled, the local root directory otherwise.
func Content(ctx context.Context, cfg *config.Config) (fs.FS, error) {
	if cfg.Storage.Enabled() {
		store, err := storage.New(cfg.Storage)
		if err != nil {
			return nil, err
		}
		return storage.NewFS(ctx, store), nil
	}

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("site root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("site root %s is not a directory", cfg.Root)
	}
	return os.DirFS(cfg.Root), nil
}

// NewStore creates the translation store reading bundles from fsys.
func NewStore(cfg *config.Config, fsys fs.FS, log *slog.Logger) (*i18n.Store, error) {
	langs, err := cfg.LanguageSet()
	if err != nil {
		return nil, err
	}
	return i18n.NewStore(i18n.NewFSFetcher(fsys),
		i18n.WithLanguages(langs),
		i18n.WithLogger(log),
		i18n.WithMissingKeyHandler(func(code i18n.Code, key string) {
			log.Debug("missing translation", slog.String("lang", string(code)), slog.String("key", key))
		}),
	)
}
