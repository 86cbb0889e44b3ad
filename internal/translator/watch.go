package translator

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultOverlayDebounce = 500 * time.Millisecond

// ApplyOverlay writes overlay into the snippet table, replacing bodies of
// existing pairs, and reloads the in-memory table. Pairs missing from the
// overlay are left as they are.
func (s *Service) ApplyOverlay(ctx context.Context, overlay Table) error {
	if err := s.repo.SeedSnippets(ctx, overlay, true); err != nil {
		return fmt.Errorf("apply overlay: %w", err)
	}
	return s.Reload(ctx)
}

// WatchOverlay re-applies the overlay file whenever it changes, until ctx
// is done. A file that fails to parse is logged and skipped; the table
// keeps its previous contents.
func (s *Service) WatchOverlay(ctx context.Context, path string, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = defaultOverlayDebounce
	}
	path = filepath.Clean(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// editors often replace the file, so watch its directory
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	s.log.Info("watching snippet overlay", zap.String("path", path))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("overlay watcher", zap.Error(err))

		case <-timer.C:
			s.reloadOverlay(ctx, path)
		}
	}
}

func (s *Service) reloadOverlay(ctx context.Context, path string) {
	overlay, err := LoadTableFile(path)
	if err != nil {
		s.log.Warn("overlay not reloaded", zap.String("path", path), zap.Error(err))
		return
	}
	if err := s.ApplyOverlay(ctx, overlay); err != nil {
		s.log.Error("overlay not applied", zap.String("path", path), zap.Error(err))
		return
	}
	s.log.Info("overlay reloaded", zap.String("path", path), zap.Int("pairs", len(overlay)))
}
