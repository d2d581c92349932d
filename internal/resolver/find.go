package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// FindUp looks for filename in start and then in every parent of start,
// returning the first directory that holds a regular file of that name.
// It reads nothing but fsys, so the same inputs always give the same answer.
func FindUp(fsys FileSystem, start, filename string) (string, bool, error) {
	dir := filepath.Clean(start)
	for {
		info, err := fsys.Stat(filepath.Join(dir, filename))
		switch {
		case err == nil && !info.IsDir():
			return dir, true, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", false, fmt.Errorf("search %s in %s: %w", filename, dir, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
