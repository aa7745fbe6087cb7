package fix

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Store reads the current text of a file and replaces it.
type Store interface {
	Read(path string) ([]byte, error)
	Write(path string, data []byte) error
}

type fsStore struct {
	fs afero.Fs
}

// NewStore returns a Store backed by fs. Writes go to a temp file in the
// target directory which is then renamed over the target.
func NewStore(fs afero.Fs) Store {
	return fsStore{fs: fs}
}

func (s fsStore) Read(path string) ([]byte, error) {
	return afero.ReadFile(s.fs, path)
}

func (s fsStore) Write(path string, data []byte) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := s.fs.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}
	f, err := afero.TempFile(s.fs, filepath.Dir(path), ".cairolint-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rmErr := s.fs.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				err = errors.Join(err, rmErr)
			}
		}
	}()
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", f.Name(), err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = s.fs.Chmod(f.Name(), mode); err != nil {
		return err
	}
	// Атомарная замена
	return s.fs.Rename(f.Name(), path)
}
