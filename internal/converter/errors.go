package converter

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrUnsupportedExtension = errors.New("unsupported image extension")
	ErrOutsideRoot          = errors.New("path is outside the source root")
	ErrFilesystem           = errors.New("filesystem error")
	ErrEncode               = errors.New("encode error")
	ErrDestinationConflict  = errors.New("destination already written by another job")
)

// classify wraps an encoder error in ErrFilesystem when it came from the
// filesystem and in ErrEncode otherwise.
func classify(err error) error {
	if err == nil || errors.Is(err, ErrFilesystem) || errors.Is(err, ErrEncode) {
		return err
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	return fmt.Errorf("%w: %w", ErrEncode, err)
}
