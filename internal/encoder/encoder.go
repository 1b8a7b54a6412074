// Package encoder turns source images into encoded output files.
//
// JPEG, PNG, GIF, TIFF and BMP are encoded in-process. AVIF and WebP are
// delegated to the libavif and libwebp command line tools (avifenc, cwebp),
// which must be on PATH or configured explicitly.
package encoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"sort"

	"recast/pkg/imgutil"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrQualityRange      = errors.New("quality must be between 0 and 100")
	ErrToolNotFound      = errors.New("encoder tool not found")
	ErrUnrecognizedImage = errors.New("unrecognized image data")
)

// Options configures a Codec.
type Options struct {
	Avifenc    string
	Cwebp      string
	AutoOrient bool
}

// FormatInfo describes one registered output format.
type FormatInfo struct {
	Name      string
	Backend   string
	Available bool
}

// Codec encodes images. It is safe for concurrent use.
type Codec struct {
	opts     Options
	external map[imgutil.Kind]externalTool
}

func New(opts Options) *Codec {
	if opts.Avifenc == "" {
		opts.Avifenc = "avifenc"
	}
	if opts.Cwebp == "" {
		opts.Cwebp = "cwebp"
	}
	return &Codec{
		opts: opts,
		external: map[imgutil.Kind]externalTool{
			imgutil.KindAVIF: avifenc(opts.Avifenc),
			imgutil.KindWebP: cwebp(opts.Cwebp),
		},
	}
}

// Encode converts input into format at the given quality and writes the
// result to output. The output file only appears once fully written.
func (c *Codec) Encode(ctx context.Context, input, output, format string, quality int) error {
	kind := imgutil.KindForExtension(format)
	if kind == imgutil.KindUnknown {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return c.encode(ctx, input, output, kind, quality)
}

// Reencode writes input back out in its own container format at the given
// quality. The container is taken from the input's extension.
func (c *Codec) Reencode(ctx context.Context, input, output string, quality int) error {
	ext := filepath.Ext(input)
	kind := imgutil.KindForExtension(ext)
	if kind == imgutil.KindUnknown {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return c.encode(ctx, input, output, kind, quality)
}

func (c *Codec) encode(ctx context.Context, input, output string, kind imgutil.Kind, quality int) error {
	if quality < 0 || quality > 100 {
		return fmt.Errorf("%w: got %d", ErrQualityRange, quality)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if tool, ok := c.external[kind]; ok {
		return c.runExternal(ctx, tool, input, output, quality)
	}

	enc, ok := nativeEncoders[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind)
	}
	img, err := decodeFile(input, c.opts.AutoOrient)
	if err != nil {
		return err
	}
	return writeFileAtomic(output, func(w io.Writer) error {
		return enc(w, img, quality)
	})
}

// Formats lists every output format the codec knows, sorted by name.
func (c *Codec) Formats() []FormatInfo {
	var infos []FormatInfo
	for kind := range nativeEncoders {
		infos = append(infos, FormatInfo{Name: kind.String(), Backend: "native", Available: true})
	}
	for kind, tool := range c.external {
		_, err := exec.LookPath(tool.command)
		infos = append(infos, FormatInfo{Name: kind.String(), Backend: tool.command, Available: err == nil})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
