package driver

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ChangedFiles returns the absolute paths of files under the git worktree
// containing dir that are modified, added or untracked, staged or not.
// Deleted files are left out since there is nothing to lint.
func ChangedFiles(dir string) (map[string]struct{}, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository at %q: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("git worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}
	root := wt.Filesystem.Root()
	out := make(map[string]struct{}, len(status))
	for rel, st := range status {
		if st.Worktree == git.Deleted || (st.Staging == git.Deleted && st.Worktree == git.Unmodified) {
			continue
		}
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		out[filepath.Join(root, filepath.FromSlash(rel))] = struct{}{}
	}
	return out, nil
}

// FilterChanged keeps the files present in changed. Paths are compared in
// absolute form.
func FilterChanged(files []string, changed map[string]struct{}) []string {
	var out []string
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		if _, ok := changed[abs]; ok {
			out = append(out, f)
		}
	}
	return out
}
