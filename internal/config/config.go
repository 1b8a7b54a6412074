package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Format is one conversion target: a format identifier understood by the
// encoder and the quality handed to it.
type Format struct {
	Type    string `toml:"type"`
	Quality int    `toml:"quality"`
}

func (f Format) String() string {
	return fmt.Sprintf("%s:%d", f.Type, f.Quality)
}

// Tools names the external encoder binaries.
type Tools struct {
	Avifenc string `toml:"avifenc"`
	Cwebp   string `toml:"cwebp"`
}

// Config is the immutable value set a run is constructed with.
type Config struct {
	SourceRoot      string   `toml:"source_root"`
	DestRoot        string   `toml:"dest_root"`
	KeepExtension   bool     `toml:"keep_extension"`
	Formats         []Format `toml:"formats"`
	CompressQuality int      `toml:"compress_quality"`
	Concurrency     int      `toml:"concurrency"`
	AutoOrient      bool     `toml:"auto_orient"`
	Tools           Tools    `toml:"tools"`
}

// fileConfig mirrors Config with optional fields so that a TOML file only
// overrides the keys it actually sets.
type fileConfig struct {
	SourceRoot      *string   `toml:"source_root"`
	DestRoot        *string   `toml:"dest_root"`
	KeepExtension   *bool     `toml:"keep_extension"`
	Formats         *[]Format `toml:"formats"`
	CompressQuality *int      `toml:"compress_quality"`
	Concurrency     *int      `toml:"concurrency"`
	AutoOrient      *bool     `toml:"auto_orient"`
	Tools           *struct {
		Avifenc *string `toml:"avifenc"`
		Cwebp   *string `toml:"cwebp"`
	} `toml:"tools"`
}

// Load returns the default configuration overlaid with the TOML file at path.
// An empty path looks for DefaultConfigFile in the working directory and
// silently falls back to defaults when it is absent; an explicit path must
// exist. The returned bool reports whether a file was read.
func Load(path string) (Config, bool, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, false, nil
		}
		return cfg, false, fmt.Errorf("open config: %w", err)
	}

	if err := Decode(data, &cfg); err != nil {
		return cfg, false, fmt.Errorf("parse config %s: %w", filepath.Clean(path), err)
	}
	return cfg, true, nil
}

// Decode overlays the TOML document in data onto cfg.
func Decode(data []byte, cfg *Config) error {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.SourceRoot != nil {
		cfg.SourceRoot = *fc.SourceRoot
	}
	if fc.DestRoot != nil {
		cfg.DestRoot = *fc.DestRoot
	}
	if fc.KeepExtension != nil {
		cfg.KeepExtension = *fc.KeepExtension
	}
	if fc.Formats != nil {
		cfg.Formats = append([]Format(nil), (*fc.Formats)...)
	}
	if fc.CompressQuality != nil {
		cfg.CompressQuality = *fc.CompressQuality
	}
	if fc.Concurrency != nil {
		cfg.Concurrency = *fc.Concurrency
	}
	if fc.AutoOrient != nil {
		cfg.AutoOrient = *fc.AutoOrient
	}
	if fc.Tools != nil {
		if fc.Tools.Avifenc != nil {
			cfg.Tools.Avifenc = *fc.Tools.Avifenc
		}
		if fc.Tools.Cwebp != nil {
			cfg.Tools.Cwebp = *fc.Tools.Cwebp
		}
	}
	return nil
}

// ParseFormat parses a "type:quality" flag value. The quality may be omitted,
// in which case the default conversion quality is used.
func ParseFormat(value string) (Format, error) {
	typ, quality, hasQuality := strings.Cut(strings.TrimSpace(value), ":")
	f := Format{Type: strings.TrimSpace(typ), Quality: defaultFormatQuality}
	if f.Type == "" {
		return f, fmt.Errorf("format %q: missing type", value)
	}
	if hasQuality {
		q, err := strconv.Atoi(strings.TrimSpace(quality))
		if err != nil {
			return f, fmt.Errorf("format %q: quality must be an integer", value)
		}
		f.Quality = q
	}
	return f, nil
}

// Normalize cleans paths, lowercases format identifiers and fills in
// anything left empty.
func (c *Config) Normalize() {
	c.SourceRoot = cleanRoot(c.SourceRoot, defaultSourceRoot)
	c.DestRoot = cleanRoot(c.DestRoot, defaultDestRoot)

	formats := make([]Format, 0, len(c.Formats))
	for _, f := range c.Formats {
		f.Type = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f.Type), "."))
		formats = append(formats, f)
	}
	c.Formats = formats

	if c.Concurrency < 1 {
		c.Concurrency = defaultConcurrency
	}
	if strings.TrimSpace(c.Tools.Avifenc) == "" {
		c.Tools.Avifenc = defaultAvifenc
	}
	if strings.TrimSpace(c.Tools.Cwebp) == "" {
		c.Tools.Cwebp = defaultCwebp
	}
}

// Validate checks the structural requirements of the configuration. Quality
// values are deliberately left to the encoder.
func (c *Config) Validate() error {
	if filepath.Clean(c.SourceRoot) == filepath.Clean(c.DestRoot) {
		return fmt.Errorf("source_root and dest_root must differ (both %q)", c.SourceRoot)
	}
	seen := make(map[string]bool, len(c.Formats))
	for i, f := range c.Formats {
		if f.Type == "" {
			return fmt.Errorf("formats[%d]: type is required", i)
		}
		if strings.ContainsAny(f.Type, `/\ `) {
			return fmt.Errorf("formats[%d]: invalid type %q", i, f.Type)
		}
		if seen[f.Type] {
			return fmt.Errorf("formats[%d]: duplicate type %q", i, f.Type)
		}
		seen[f.Type] = true
	}
	return nil
}

func cleanRoot(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return filepath.Clean(value)
}
