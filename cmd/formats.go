package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"recast/internal/encoder"
	"recast/internal/tui"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List target formats and whether their encoder is available",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		codec := encoder.New(encoder.Options{
			Avifenc:    cfg.Tools.Avifenc,
			Cwebp:      cfg.Tools.Cwebp,
			AutoOrient: cfg.AutoOrient,
		})

		out := cmd.OutOrStdout()
		for _, info := range codec.Formats() {
			status := formatsOKStyle.Render("available")
			if !info.Available {
				status = formatsMissingStyle.Render("missing")
			}
			fmt.Fprintf(out, "%s %s %s\n",
				formatsNameStyle.Render(fmt.Sprintf("%-5s", info.Name)),
				formatsDimStyle.Render(fmt.Sprintf("%-10s", info.Backend)),
				status,
			)
		}
		return nil
	},
}

var (
	formatsNameStyle    = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	formatsDimStyle     = lipgloss.NewStyle().Foreground(tui.ColorDim)
	formatsOKStyle      = lipgloss.NewStyle().Foreground(tui.ColorSuccess)
	formatsMissingStyle = lipgloss.NewStyle().Foreground(tui.ColorWarn)
)

func init() {
	rootCmd.AddCommand(formatsCmd)
}
