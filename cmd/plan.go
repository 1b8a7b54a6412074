package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"recast/internal/converter"
	"recast/internal/tui"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "List discovered images and where each output would be written",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		plans, err := converter.Plan(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(plans) == 0 {
			fmt.Fprintln(out, tui.RenderEvent(converter.Event{Kind: converter.EventNoInputFiles, Source: cfg.SourceRoot}))
			return nil
		}

		jobs := 0
		for i, plan := range plans {
			if i > 0 {
				fmt.Fprintln(out)
			}
			jobs += len(plan.Jobs)
			printPlan(out, plan)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, tui.RenderSummary([]tui.SummaryRow{
			{Label: "Files discovered", Value: fmt.Sprintf("%d", len(plans))},
			{Label: "Jobs planned", Value: fmt.Sprintf("%d", jobs)},
		}))
		return nil
	},
}

func printPlan(w io.Writer, plan converter.FilePlan) {
	fmt.Fprintf(w, "%s\n", planFileStyle.Render(plan.Source))
	if plan.Err != nil {
		fmt.Fprintf(w, "  %s %s\n", planBulletStyle.Render("-"), planErrorStyle.Render(plan.Err.Error()))
		return
	}
	fmt.Fprintf(w, "  %s\n", planCategoryStyle.Render("directory: "+plan.Resolved.DestDir))
	for _, job := range plan.Jobs {
		label := job.Format
		if job.Kind == converter.JobCompress {
			label = "compress"
		}
		fmt.Fprintf(w, "    %s %s %s %s\n",
			planBulletStyle.Render("-"),
			planDimStyle.Render(fmt.Sprintf("%-8s q%-3d", label, job.Quality)),
			planBulletStyle.Render("->"),
			planValueStyle.Render(job.Dest),
		)
	}
}

var (
	planFileStyle     = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	planCategoryStyle = lipgloss.NewStyle().Foreground(tui.ColorAccentAlt)
	planValueStyle    = lipgloss.NewStyle().Foreground(tui.ColorInk)
	planDimStyle      = lipgloss.NewStyle().Foreground(tui.ColorDim)
	planBulletStyle   = lipgloss.NewStyle().Foreground(tui.ColorDim)
	planErrorStyle    = lipgloss.NewStyle().Foreground(tui.ColorError)
)

func init() {
	rootCmd.AddCommand(planCmd)
}
