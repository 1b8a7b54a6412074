package encoder

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"recast/pkg/imgutil"
)

type encodeFunc func(w io.Writer, img image.Image, quality int) error

// nativeEncoders covers the containers Go can write without external tools.
// Quality only affects JPEG; the other containers are lossless or palette
// based, so it is validated but otherwise ignored.
var nativeEncoders = map[imgutil.Kind]encodeFunc{
	imgutil.KindJPEG: func(w io.Writer, img image.Image, quality int) error {
		if quality < 1 {
			quality = 1
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	},
	imgutil.KindPNG: func(w io.Writer, img image.Image, _ int) error {
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, img)
	},
	imgutil.KindGIF: func(w io.Writer, img image.Image, _ int) error {
		return gif.Encode(w, img, &gif.Options{NumColors: 256})
	},
	imgutil.KindTIFF: func(w io.Writer, img image.Image, _ int) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	},
	imgutil.KindBMP: func(w io.Writer, img image.Image, _ int) error {
		return bmp.Encode(w, img)
	},
}

// decodeFile decodes a JPEG, PNG or GIF source by its content rather than its
// name. With autoOrient set, JPEG EXIF orientation is applied to the pixels
// because none of the native encoders carry EXIF forward.
func decodeFile(path string, autoOrient bool) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	kind, err := imgutil.SniffReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnrecognizedImage, filepath.Base(path), err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	var img image.Image
	br := bufio.NewReader(file)
	switch kind {
	case imgutil.KindJPEG:
		img, err = jpeg.Decode(br)
	case imgutil.KindPNG:
		img, err = png.Decode(br)
	case imgutil.KindGIF:
		img, err = gif.Decode(br)
	default:
		return nil, fmt.Errorf("%w: %s is %s", ErrUnrecognizedImage, filepath.Base(path), kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	if autoOrient && kind == imgutil.KindJPEG {
		// Unreadable EXIF leaves the pixels as decoded.
		if orientation, err := readOrientation(file); err == nil {
			img = applyOrientation(img, orientation)
		}
	}
	return img, nil
}

// writeFileAtomic streams into a temp file next to dest and renames it into
// place, so a failed encode never leaves a truncated output behind.
func writeFileAtomic(dest string, write func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".recast-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return replaceFile(tmp.Name(), dest)
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
