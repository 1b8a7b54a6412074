package converter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/singleflight"
)

// Materializer creates destination directories. Concurrent Ensure calls for
// the same path share a single mkdir, and exactly one caller is told it
// created the directory.
type Materializer struct {
	group singleflight.Group
}

// Ensure makes sure path exists as a directory. created is true only for the
// call that actually made it.
func (m *Materializer) Ensure(path string) (created bool, err error) {
	if ok, err := dirExists(path); err != nil || ok {
		return false, err
	}

	var leader bool
	v, err, _ := m.group.Do(filepath.Clean(path), func() (any, error) {
		leader = true
		// A previous flight may have finished between the check above and
		// this one starting.
		if ok, err := dirExists(path); err != nil || ok {
			return false, err
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			// Lost a race with something outside this process.
			if ok, _ := dirExists(path); ok {
				return false, nil
			}
			return false, fmt.Errorf("%w: %w", ErrFilesystem, err)
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return leader && v.(bool), nil
}

func dirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return true, nil
	case err == nil:
		return false, fmt.Errorf("%w: %s exists and is not a directory", ErrFilesystem, path)
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
}
