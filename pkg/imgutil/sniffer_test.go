package imgutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectHeader(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   Kind
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10, 'J', 'F'}, KindJPEG},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, KindPNG},
		{"gif", []byte("GIF89a\x01\x00"), KindGIF},
		{"tiff", []byte{0x49, 0x49, 0x2a, 0x00, 8, 0, 0, 0}, KindTIFF},
		{"bmp", []byte("BM\x3a\x00\x00\x00\x00\x00\x00\x00\x00\x00"), KindBMP},
		{"webp", []byte("RIFF\x24\x00\x00\x00WEBP"), KindWebP},
		{"avif", []byte("\x00\x00\x00\x1cftypavif"), KindAVIF},
		{"text", []byte("hello world!"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectHeader(tt.header)
			if err != nil {
				t.Fatalf("DetectHeader: %v", err)
			}
			if got != tt.want {
				t.Fatalf("DetectHeader = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDetectHeaderTooShort(t *testing.T) {
	if _, err := DetectHeader([]byte{0xff, 0xd8}); err == nil {
		t.Fatal("expected error for short header")
	}
}

func TestSniffReaderShortFile(t *testing.T) {
	// Nine bytes: enough for the 8-byte signatures, short of HeaderSize.
	data := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0}
	got, err := SniffReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("SniffReader: %v", err)
	}
	if got != KindPNG {
		t.Fatalf("SniffReader = %s, want png", got)
	}
}

func TestSniffFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.bin")
	if err := os.WriteFile(path, []byte("GIF87a\x10\x00\x10\x00\x00\x00"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := SniffFile(path)
	if err != nil {
		t.Fatalf("SniffFile: %v", err)
	}
	if got != KindGIF {
		t.Fatalf("SniffFile = %s, want gif", got)
	}
}

func TestKindForExtension(t *testing.T) {
	cases := map[string]Kind{
		".JPG":  KindJPEG,
		"jpeg":  KindJPEG,
		".png":  KindPNG,
		".PnG":  KindPNG,
		"JpEg":  KindJPEG,
		"tif":   KindTIFF,
		".webp": KindWebP,
		"avif":  KindAVIF,
		".heic": KindUnknown,
		"":      KindUnknown,
	}
	for ext, want := range cases {
		if got := KindForExtension(ext); got != want {
			t.Errorf("KindForExtension(%q) = %s, want %s", ext, got, want)
		}
	}
}
