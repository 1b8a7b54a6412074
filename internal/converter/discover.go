package converter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Discover returns every JPEG and PNG below sourceRoot in lexical walk order.
// Extensions match case-insensitively. Dot-files and dot-directories are
// skipped, as is destRoot when it lives inside sourceRoot. A missing source
// root yields no files rather than an error.
func Discover(sourceRoot, destRoot string) ([]string, error) {
	info, err := os.Stat(sourceRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source root %s is not a directory", sourceRoot)
	}

	absRoot, err := filepath.Abs(sourceRoot)
	if err != nil {
		return nil, err
	}
	var skipDir string
	if absDest, err := filepath.Abs(destRoot); err == nil && absDest != absRoot && isWithin(absDest, absRoot) {
		skipDir = absDest
	}

	var paths []string
	err = fs.WalkDir(os.DirFS(sourceRoot), ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == "." {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if skipDir != "" && isWithin(filepath.Join(absRoot, filepath.FromSlash(path)), skipDir) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !hasImageExtension(d.Name()) {
			return nil
		}

		paths = append(paths, filepath.Join(sourceRoot, filepath.FromSlash(path)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func hasImageExtension(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return imageExtensions[strings.ToLower(ext)]
}

func isWithin(path string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
