package encoder

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"recast/pkg/imgutil"
)

// externalTool builds the argument list for a command line encoder that reads
// input and writes output directly.
type externalTool struct {
	command string
	ext     string
	args    func(input, output string, quality int) []string
}

func avifenc(command string) externalTool {
	return externalTool{
		command: command,
		ext:     ".avif",
		args: func(input, output string, quality int) []string {
			return []string{"-q", strconv.Itoa(quality), input, output}
		},
	}
}

func cwebp(command string) externalTool {
	return externalTool{
		command: command,
		ext:     ".webp",
		args: func(input, output string, quality int) []string {
			return []string{"-quiet", "-q", strconv.Itoa(quality), input, "-o", output}
		},
	}
}

func (c *Codec) runExternal(ctx context.Context, tool externalTool, input, output string, quality int) error {
	bin, err := exec.LookPath(tool.command)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrToolNotFound, tool.command)
	}

	dir := filepath.Dir(output)
	source := input
	if c.opts.AutoOrient {
		oriented, cleanup, err := orientedCopy(input, dir)
		if err != nil {
			return err
		}
		defer cleanup()
		source = oriented
	}

	// The tools pick their container from the output name, so the temp file
	// keeps the real extension.
	tmp, err := os.CreateTemp(dir, ".recast-*"+tool.ext)
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpPath)

	cmd := exec.CommandContext(ctx, bin, tool.args(source, tmpPath, quality)...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if detail := lastLine(stderr.String()); detail != "" {
			return fmt.Errorf("%s: %w: %s", tool.command, err, detail)
		}
		return fmt.Errorf("%s: %w", tool.command, err)
	}

	return replaceFile(tmpPath, output)
}

// orientedCopy writes an upright PNG copy of a JPEG whose EXIF orientation is
// not the identity, because cwebp ignores the tag. Other inputs are returned
// unchanged with a no-op cleanup.
func orientedCopy(input, dir string) (string, func(), error) {
	noop := func() {}

	kind, err := imgutil.SniffFile(input)
	if err != nil || kind != imgutil.KindJPEG {
		return input, noop, nil
	}

	file, err := os.Open(input)
	if err != nil {
		return "", noop, err
	}
	orientation, err := readOrientation(file)
	_ = file.Close()
	if err != nil || orientation == 1 {
		return input, noop, nil
	}

	img, err := decodeFile(input, true)
	if err != nil {
		return "", noop, err
	}

	tmp, err := os.CreateTemp(dir, ".recast-oriented-*.png")
	if err != nil {
		return "", noop, err
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(tmp, img); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", noop, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", noop, err
	}
	return tmp.Name(), cleanup, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
