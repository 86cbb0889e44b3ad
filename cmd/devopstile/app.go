package main

import (
	"context"
	"fmt"

	"github.com/suPer8Hu/devopstile/internal/config"
	"github.com/suPer8Hu/devopstile/internal/db"
	"github.com/suPer8Hu/devopstile/internal/translator"
	"go.uber.org/zap"
)

// overlayTable reads the optional snippet overlay. An empty path is no
// overlay.
func overlayTable(path string) (translator.Table, error) {
	if path == "" {
		return translator.Table{}, nil
	}
	t, err := translator.LoadTableFile(path)
	if err != nil {
		return nil, fmt.Errorf("load snippets %s: %w", path, err)
	}
	return t, nil
}

// watchOverlay follows SNIPPETS_FILE until ctx is done. Watch failures
// are logged; the table loaded at startup stays in use.
func watchOverlay(ctx context.Context, svc *translator.Service) {
	if cfg.SnippetsFile == "" {
		return
	}
	if err := svc.WatchOverlay(ctx, cfg.SnippetsFile, 0); err != nil {
		log.Warn("snippet overlay not watched", zap.String("path", cfg.SnippetsFile), zap.Error(err))
	}
}

// openTranslator connects the database, migrates it, seeds the snippet
// table and returns the service built on it.
func openTranslator(ctx context.Context, cfg config.Config, log *zap.Logger) (*translator.Service, func(), error) {
	gdb, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := db.Migrate(gdb, translator.Models()...); err != nil {
		closeDB()
		return nil, nil, err
	}

	overlay, err := overlayTable(cfg.SnippetsFile)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	repo := translator.NewRepo(gdb)
	table, err := translator.Bootstrap(ctx, repo, overlay)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	log.Info("translation table ready", zap.Int("pairs", len(table)))

	return translator.NewService(repo, table, cfg.TranslateDelay, log), closeDB, nil
}
