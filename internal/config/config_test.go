package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	want := Config{
		SourceRoot:      "src",
		DestRoot:        "dist",
		Formats:         []Format{{Type: "avif", Quality: 80}},
		CompressQuality: 85,
		Concurrency:     1,
		AutoOrient:      true,
		Tools:           Tools{Avifenc: "avifenc", Cwebp: "cwebp"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("Default() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recast.toml")
	doc := `
source_root = "assets/images"
keep_extension = true
compress_quality = 70

[[formats]]
type = "webp"
quality = 75

[[formats]]
type = "AVIF"
quality = 60

[tools]
cwebp = "/opt/bin/cwebp"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, found, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !found {
		t.Fatal("expected config file to be reported as found")
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	want := Config{
		SourceRoot:      filepath.Clean("assets/images"),
		DestRoot:        "dist",
		KeepExtension:   true,
		Formats:         []Format{{Type: "webp", Quality: 75}, {Type: "avif", Quality: 60}},
		CompressQuality: 70,
		Concurrency:     1,
		AutoOrient:      true,
		Tools:           Tools{Avifenc: "avifenc", Cwebp: "/opt/bin/cwebp"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingDefaultFileFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, found, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found {
		t.Fatal("expected no config file")
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("formats = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "webp:75", want: Format{Type: "webp", Quality: 75}},
		{in: "avif", want: Format{Type: "avif", Quality: 80}},
		{in: " png : 100 ", want: Format{Type: "png", Quality: 100}},
		{in: "jpeg:high", wantErr: true},
		{in: ":80", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	cfg := Config{
		SourceRoot:  " ./src/ ",
		Formats:     []Format{{Type: ".WebP", Quality: 150}},
		Concurrency: 0,
	}
	cfg.Normalize()

	if cfg.SourceRoot != "src" || cfg.DestRoot != "dist" {
		t.Fatalf("unexpected roots: %q %q", cfg.SourceRoot, cfg.DestRoot)
	}
	if cfg.Formats[0].Type != "webp" {
		t.Fatalf("format type not normalized: %q", cfg.Formats[0].Type)
	}
	if cfg.Concurrency != 1 {
		t.Fatalf("concurrency = %d, want 1", cfg.Concurrency)
	}
	if cfg.Tools.Avifenc != "avifenc" || cfg.Tools.Cwebp != "cwebp" {
		t.Fatalf("tools not defaulted: %+v", cfg.Tools)
	}
	// Out-of-range quality is the encoder's call, not the config's.
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	sameRoots := Default()
	sameRoots.DestRoot = "src/"
	sameRoots.Normalize()
	if err := sameRoots.Validate(); err == nil {
		t.Error("expected error when source and destination roots match")
	}

	dup := Default()
	dup.Formats = []Format{{Type: "webp", Quality: 80}, {Type: "WEBP", Quality: 60}}
	dup.Normalize()
	if err := dup.Validate(); err == nil {
		t.Error("expected error for duplicate format types")
	}
}
