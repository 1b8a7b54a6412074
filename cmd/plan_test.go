package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPlanCommandListsDestinations(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dest := filepath.Join(root, "dist")
	if err := os.MkdirAll(filepath.Join(src, "a"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a/photo.jpg", "logo.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(src, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"plan", "--src", src, "--dest", dest, "--format", "avif:70", "--format", "webp", "--keep-ext"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("plan: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		filepath.Join(dest, "a", "photo.jpg.avif"),
		filepath.Join(dest, "a", "photo.jpg.webp"),
		filepath.Join(dest, "a", "photo.jpg"),
		filepath.Join(dest, "logo.png.avif"),
		"Files discovered",
		"Jobs planned",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("plan output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "notes.txt") {
		t.Fatalf("non-image file should not be planned:\n%s", got)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatalf("plan must not create the destination tree, stat err = %v", err)
	}
}

func TestPlanCommandRejectsBadFormat(t *testing.T) {
	root := t.TempDir()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"plan", "--src", root, "--dest", filepath.Join(root, "out"), "--format", "avif:high"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected an invalid quality to be rejected")
	}
}
