package converter

import (
	"fmt"
	"path/filepath"
	"strings"
)

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

const sep = string(filepath.Separator)

// Resolved holds the paths derived for one source image.
type Resolved struct {
	Source string
	// Subdir is the directory below the source root, ending in a separator,
	// or empty for files directly under the root.
	Subdir string
	// Stem is the file name without its extension.
	Stem string
	// Extension is the matched extension in its original case, without dot.
	Extension string
	// BaseName is the name conversions are written under: Stem, or Stem plus
	// the original extension when extensions are kept.
	BaseName string
	// DestDir is the mirrored destination directory, ending in a separator.
	DestDir string
}

// OutputPath is the destination of a conversion into format.
func (r Resolved) OutputPath(format string) string {
	return r.DestDir + r.BaseName + "." + format
}

// CompressPath is the destination of the same-format compressed copy. It
// always keeps the source file name.
func (r Resolved) CompressPath() string {
	return r.DestDir + r.Stem + "." + r.Extension
}

// Resolve derives the destination layout for srcPath. It is a pure function
// of its arguments.
func Resolve(sourceRoot, destRoot, srcPath string, keepExtension bool) (Resolved, error) {
	rel, err := relativeToRoot(filepath.Clean(sourceRoot), filepath.Clean(srcPath))
	if err != nil {
		return Resolved{}, err
	}

	subdir, name := filepath.Split(rel)
	ext := filepath.Ext(name)
	matched := strings.TrimPrefix(ext, ".")
	if !imageExtensions[strings.ToLower(matched)] {
		return Resolved{}, fmt.Errorf("%w: %s", ErrUnsupportedExtension, srcPath)
	}
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		return Resolved{}, fmt.Errorf("%w: %s has no file name", ErrUnsupportedExtension, srcPath)
	}

	base := stem
	if keepExtension {
		base = name
	}

	return Resolved{
		Source:    srcPath,
		Subdir:    subdir,
		Stem:      stem,
		Extension: matched,
		BaseName:  base,
		DestDir:   withTrailingSep(filepath.Clean(destRoot)) + subdir,
	}, nil
}

func relativeToRoot(root, path string) (string, error) {
	if root == "." {
		if filepath.IsAbs(path) || path == ".." || strings.HasPrefix(path, ".."+sep) {
			return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
		}
		return path, nil
	}

	prefix := withTrailingSep(root)
	if !strings.HasPrefix(path, prefix) || len(path) == len(prefix) {
		return "", fmt.Errorf("%w: %s not under %s", ErrOutsideRoot, path, root)
	}
	return path[len(prefix):], nil
}

func withTrailingSep(dir string) string {
	if strings.HasSuffix(dir, sep) {
		return dir
	}
	return dir + sep
}
