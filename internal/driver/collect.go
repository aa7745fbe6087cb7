package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"cairolint/internal/config"
	"cairolint/internal/source"
)

// Collect expands roots into a sorted, deduplicated list of *.cairo files.
// Directories are walked recursively; hidden directories and `target` are
// skipped, as is anything cfg excludes. A file named explicitly is kept
// even when it lacks the extension.
func Collect(fsys afero.Fs, roots []string, cfg *config.Config) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range roots {
		info, err := fsys.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot access %q: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = afero.Walk(fsys, root, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				if p != root && skipDir(fi.Name()) {
					return filepath.SkipDir
				}
				if p != root && excluded(cfg, p) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(p) != source.Ext || excluded(cfg, p) {
				return nil
			}
			add(p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %q: %w", root, err)
		}
	}
	slices.Sort(files)
	return files, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "target"
}

// excluded сопоставляет путь с [lint].exclude относительно каталога конфига.
func excluded(cfg *config.Config, p string) bool {
	if cfg == nil || len(cfg.Exclude) == 0 {
		return false
	}
	rel := p
	if dir := cfg.Dir(); dir != "" {
		abs, err := filepath.Abs(p)
		if err == nil {
			if r, err := filepath.Rel(dir, abs); err == nil && !strings.HasPrefix(r, "..") {
				rel = r
			}
		}
	}
	return cfg.Excluded(rel)
}
