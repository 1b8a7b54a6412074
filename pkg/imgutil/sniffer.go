package imgutil

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
)

// Kind identifies an image container by its leading bytes.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPEG
	KindPNG
	KindGIF
	KindTIFF
	KindBMP
	KindWebP
	KindAVIF
)

// HeaderSize is the number of leading bytes DetectHeader needs to tell every
// known kind apart.
const HeaderSize = 12

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindPNG:
		return "png"
	case KindGIF:
		return "gif"
	case KindTIFF:
		return "tiff"
	case KindBMP:
		return "bmp"
	case KindWebP:
		return "webp"
	case KindAVIF:
		return "avif"
	default:
		return "unknown"
	}
}

// KindForExtension maps a file extension (with or without the leading dot,
// any case) to the container it names.
func KindForExtension(ext string) Kind {
	if len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}
	switch strings.ToLower(ext) {
	case "jpg", "jpeg":
		return KindJPEG
	case "png":
		return KindPNG
	case "gif":
		return KindGIF
	case "tif", "tiff":
		return KindTIFF
	case "bmp":
		return KindBMP
	case "webp":
		return KindWebP
	case "avif":
		return KindAVIF
	default:
		return KindUnknown
	}
}

var (
	pngSig    = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	jpegSig   = []byte{0xff, 0xd8, 0xff}
	gifSig87  = []byte("GIF87a")
	gifSig89  = []byte("GIF89a")
	tiffSigLE = []byte{0x49, 0x49, 0x2a, 0x00}
	tiffSigBE = []byte{0x4d, 0x4d, 0x00, 0x2a}
	bmpSig    = []byte("BM")
	riffSig   = []byte("RIFF")
	webpSig   = []byte("WEBP")
	ftypSig   = []byte("ftyp")
)

// DetectHeader inspects the leading bytes of a file for known signatures.
func DetectHeader(header []byte) (Kind, error) {
	if len(header) < 8 {
		return KindUnknown, errors.New("header too short")
	}

	switch {
	case bytes.HasPrefix(header, jpegSig):
		return KindJPEG, nil
	case bytes.HasPrefix(header, pngSig):
		return KindPNG, nil
	case bytes.HasPrefix(header, gifSig87), bytes.HasPrefix(header, gifSig89):
		return KindGIF, nil
	case bytes.HasPrefix(header, tiffSigLE), bytes.HasPrefix(header, tiffSigBE):
		return KindTIFF, nil
	}

	if len(header) >= HeaderSize {
		if bytes.HasPrefix(header, riffSig) && bytes.Equal(header[8:12], webpSig) {
			return KindWebP, nil
		}
		if bytes.Equal(header[4:8], ftypSig) {
			switch string(header[8:12]) {
			case "avif", "avis":
				return KindAVIF, nil
			}
		}
	}

	// Checked last: "BM" is a short prefix.
	if bytes.HasPrefix(header, bmpSig) {
		return KindBMP, nil
	}

	return KindUnknown, nil
}

// SniffFile reads the leading bytes of a file to determine its type.
func SniffFile(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader reads up to HeaderSize bytes from r and determines its type.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return KindUnknown, err
	}

	return DetectHeader(header[:n])
}
