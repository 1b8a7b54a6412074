package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"recast/internal/converter"
	"recast/internal/encoder"
	"recast/internal/tui"
)

var (
	convertPlain  bool
	convertStrict bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert every image under the source root (default command)",
	Args:  cobra.NoArgs,
	RunE:  runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	codec := encoder.New(encoder.Options{
		Avifenc:    cfg.Tools.Avifenc,
		Cwebp:      cfg.Tools.Cwebp,
		AutoOrient: cfg.AutoOrient,
	})

	out := cmd.OutOrStdout()
	events := make(chan converter.Event, 64)
	var uiDone <-chan struct{}
	if !convertPlain && isTerminal(out) {
		program := tea.NewProgram(tui.NewModel(events, stop), tea.WithOutput(out))
		uiDone = consumeEvents(events, func(<-chan converter.Event) {
			_, _ = program.Run()
		})
	} else {
		uiDone = consumeEvents(events, func(events <-chan converter.Event) {
			printEvents(out, events)
		})
	}

	report, err := converter.Run(ctx, cfg, codec, events)
	close(events)
	<-uiDone
	if err != nil && ctx.Err() == nil {
		return err
	}

	if report.State == converter.StateNoInputFiles {
		return nil
	}

	fmt.Fprintln(out, tui.RenderSummary(tui.ReportRows(report)))
	if failures := tui.RenderFailures(report.Failures); failures != "" {
		fmt.Fprintln(out, failures)
	}
	fmt.Fprintf(out, "Output written to: %s\n", absOrSelf(cfg.DestRoot))

	if ctx.Err() != nil {
		return fmt.Errorf("run interrupted: %w", ctx.Err())
	}
	if convertStrict && report.Failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", report.Failed, report.Jobs)
	}
	return nil
}

// consumeEvents runs show in the background and then drains whatever is left,
// so the runner never blocks on a view that quit early (bubbletea exits on
// SIGTERM by itself). The returned channel closes once events is closed and
// empty.
func consumeEvents(events <-chan converter.Event, show func(<-chan converter.Event)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		show(events)
		for range events {
		}
	}()
	return done
}

// printEvents is the non-interactive consumer: one line per event.
func printEvents(w io.Writer, events <-chan converter.Event) {
	for ev := range events {
		if line := tui.RenderEvent(ev); line != "" {
			fmt.Fprintln(w, line)
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, convertCmd} {
		c.Flags().BoolVar(&convertPlain, "plain", false, "print one line per event instead of the live progress view")
		c.Flags().BoolVar(&convertStrict, "strict", false, "exit non-zero when any job fails")
	}

	rootCmd.AddCommand(convertCmd)
}
