package registry

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ggoodman/slashcmd-go/command"
	"github.com/ggoodman/slashcmd-go/internal/logctx"
)

// LoadFunc produces the full set of definitions, typically by reading the
// watched directory with manifest.LoadGlob.
type LoadFunc func() ([]*command.Definition, error)

// Watch loads definitions once, then reloads them whenever files under dir
// change, until ctx is done. Bursts of events are coalesced by the debounce
// interval. The initial load error is returned; later load or compile errors
// are logged and keep the current command set.
func (r *Registry) Watch(ctx context.Context, dir string, load LoadFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("registry: watch %s: %w", dir, err)
	}
	defer func() {
		_ = w.Close()
	}()

	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(p)
	})
	if err != nil {
		return fmt.Errorf("registry: watch %s: %w", dir, err)
	}

	wd := &logctx.WatchData{Dir: dir}
	ctx = logctx.WithWatchData(ctx, wd)

	if err := r.reload(load); err != nil {
		return err
	}
	r.log.InfoContext(ctx, "watching definitions")

	timer := time.NewTimer(r.debounce)
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
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New directories need their own watch.
			if ev.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = w.Add(ev.Name)
				}
			}
			wd.File = ev.Name
			r.log.DebugContext(ctx, "definition change", slog.String("op", ev.Op.String()))
			timer.Reset(r.debounce)
		case <-timer.C:
			if err := r.reload(load); err != nil {
				r.log.ErrorContext(ctx, "reload failed, keeping previous commands", slog.String("err", err.Error()))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.log.WarnContext(ctx, "watcher error", slog.String("err", err.Error()))
		}
	}
}

func (r *Registry) reload(load LoadFunc) error {
	defs, err := load()
	if err != nil {
		return fmt.Errorf("registry: load definitions: %w", err)
	}
	return r.Replace(defs...)
}
