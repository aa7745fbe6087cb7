package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"cairolint/internal/source"
	"cairolint/internal/trace"
)

// DefaultDebounce groups the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// Watch calls run once for the initial pass (changed == nil) and then again
// for every debounced batch of *.cairo changes under roots. It returns nil
// when ctx is cancelled.
func Watch(ctx context.Context, roots []string, debounce time.Duration, run func(changed []string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	for _, root := range roots {
		if err := watchTree(w, root); err != nil {
			return err
		}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	run(nil)

	pending := make(map[string]struct{})
	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() && !skipDir(st.Name()) {
					// новые каталоги тоже надо слушать
					_ = watchTree(w, ev.Name)
					continue
				}
			}
			if filepath.Ext(ev.Name) != source.Ext || ev.Op == fsnotify.Chmod {
				continue
			}
			trace.Point(ctx, trace.ScopeFile, "watch", ev.String())
			pending[ev.Name] = struct{}{}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			clear(pending)
			run(changed)
		}
	}
}

// watchTree adds root and every non-skipped directory below it; a file root
// watches its directory.
func watchTree(w *fsnotify.Watcher, root string) error {
	st, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", root, err)
	}
	if !st.IsDir() {
		return w.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("watch %q: %w", p, err)
		}
		return nil
	})
}
