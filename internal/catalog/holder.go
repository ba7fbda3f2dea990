package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadDebounce coalesces the burst of events editors emit for one save.
const reloadDebounce = 100 * time.Millisecond

// Holder owns the current catalog snapshot for a TOML file. Snapshots are
// immutable; a reload swaps the whole pointer.
type Holder struct {
	path    string
	log     *zap.Logger
	current atomic.Pointer[Catalog]
}

// NewHolder loads the catalog at path. A nil logger discards log output.
func NewHolder(path string, log *zap.Logger) (*Holder, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving catalog path: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	h := &Holder{path: abs, log: log}
	if err := h.Reload(); err != nil {
		return nil, err
	}
	return h, nil
}

// Path returns the absolute path of the watched file.
func (h *Holder) Path() string {
	return h.path
}

// Current returns the latest successfully loaded snapshot.
func (h *Holder) Current() *Catalog {
	return h.current.Load()
}

// Reload reads the file again. On error the previous snapshot stays current.
func (h *Holder) Reload() error {
	c, err := Load(h.path)
	if err != nil {
		return err
	}
	h.current.Store(c)
	h.log.Debug("catalog loaded", zap.String("path", h.path), zap.Int("species", c.Len()))
	return nil
}

// Watch reloads the catalog whenever its file changes, calling onReload with
// each new snapshot. It blocks until ctx is cancelled. The parent directory
// is watched so that editors replacing the file are still observed.
func (h *Holder) Watch(ctx context.Context, onReload func(*Catalog)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(h.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(h.path), err)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != h.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := h.Reload(); err != nil {
				h.log.Warn("catalog reload failed; keeping previous snapshot",
					zap.String("path", h.path), zap.Error(err))
				continue
			}
			if onReload != nil {
				onReload(h.Current())
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			h.log.Warn("catalog watcher error", zap.Error(err))
		}
	}
}
