package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"recast/internal/config"
)

var (
	flagConfig          string
	flagSource          string
	flagDest            string
	flagKeepExtension   bool
	flagFormats         []string
	flagCompressQuality int
	flagConcurrency     int
	flagNoAutoOrient    bool
)

var rootCmd = &cobra.Command{
	Use:   "recast",
	Short: "recast - convert a tree of images into modern formats",
	Long: "recast scans a source tree for JPEG and PNG images, converts each into the configured formats, " +
		"writes a recompressed copy in the original format, and mirrors the tree under the destination root.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&flagConfig, "config", "c", "", "path to a TOML config file (default ./"+config.DefaultConfigFile+" if present)")
	flags.StringVarP(&flagSource, "src", "s", "", "source root to scan (default \"src\")")
	flags.StringVarP(&flagDest, "dest", "d", "", "destination root to write into (default \"dist\")")
	flags.BoolVar(&flagKeepExtension, "keep-ext", false, "keep the original extension in converted file names (photo.jpg.avif)")
	flags.StringArrayVarP(&flagFormats, "format", "f", nil, "target format as type[:quality], repeatable (default avif:80)")
	flags.IntVarP(&flagCompressQuality, "compress-quality", "q", 0, "quality for the same-format compressed copy (default 85)")
	flags.IntVarP(&flagConcurrency, "concurrency", "j", 0, "number of files processed at once (default 1)")
	flags.BoolVar(&flagNoAutoOrient, "no-auto-orient", false, "do not apply EXIF orientation before re-encoding")
}

// loadConfig builds the run configuration: defaults, then the config file,
// then any flag the user actually set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, _, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("src") {
		cfg.SourceRoot = flagSource
	}
	if flags.Changed("dest") {
		cfg.DestRoot = flagDest
	}
	if flags.Changed("keep-ext") {
		cfg.KeepExtension = flagKeepExtension
	}
	if flags.Changed("format") {
		cfg.Formats = cfg.Formats[:0:0]
		for _, value := range flagFormats {
			f, err := config.ParseFormat(value)
			if err != nil {
				return cfg, err
			}
			cfg.Formats = append(cfg.Formats, f)
		}
	}
	if flags.Changed("compress-quality") {
		cfg.CompressQuality = flagCompressQuality
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = flagConcurrency
	}
	if flags.Changed("no-auto-orient") {
		cfg.AutoOrient = !flagNoAutoOrient
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
