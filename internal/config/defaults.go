package config

const (
	DefaultConfigFile = "recast.toml"

	defaultSourceRoot      = "src"
	defaultDestRoot        = "dist"
	defaultFormatType      = "avif"
	defaultFormatQuality   = 80
	defaultCompressQuality = 85
	defaultConcurrency     = 1
	defaultAvifenc         = "avifenc"
	defaultCwebp           = "cwebp"
)

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		SourceRoot:      defaultSourceRoot,
		DestRoot:        defaultDestRoot,
		KeepExtension:   false,
		Formats:         []Format{{Type: defaultFormatType, Quality: defaultFormatQuality}},
		CompressQuality: defaultCompressQuality,
		Concurrency:     defaultConcurrency,
		AutoOrient:      true,
		Tools: Tools{
			Avifenc: defaultAvifenc,
			Cwebp:   defaultCwebp,
		},
	}
}
