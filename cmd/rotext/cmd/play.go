package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/f3rmion/rotext/internal/cycler"
	"github.com/f3rmion/rotext/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	playCount int
	playUnits bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Print each rotation to stdout",
	Long: `Run the rotation timer without a TUI and print every transition as a
line on stdout. Auto-advance is always enabled.

Stops after --count transitions, or on Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntVarP(&playCount, "count", "n", 0, "stop after this many transitions (0 = run until interrupted)")
	playCmd.Flags().BoolVarP(&playUnits, "units", "u", false, "print the unit delay table with each item")
}

func runPlay(cmd *cobra.Command, args []string) error {
	profile, err := loadProfile()
	if err != nil {
		return err
	}
	opts, err := profile.Options()
	if err != nil {
		return err
	}
	opts.Auto = true

	logger := logging.New(os.Stderr, viper.GetBool("verbose"))
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	n := len(opts.Texts)

	// The subscriber is registered before the ticker is armed and waits for
	// the first item to be printed, so no early tick is lost or reordered.
	// Transitions are delivered one at a time, so seen needs no lock.
	ready := make(chan struct{})
	done := make(chan struct{})
	seen := 0
	report := func(t cycler.Transition) {
		<-ready
		if playCount > 0 && seen >= playCount {
			return
		}
		printItem(out, t.To, n, t.Text, t.Units)
		seen++
		if playCount > 0 && seen == playCount {
			close(done)
		}
	}

	c, err := cycler.New(opts, cycler.WithLogger(logger), cycler.WithSubscriber(report))
	if err != nil {
		return err
	}
	defer c.Close()

	printItem(out, 0, n, opts.Texts[0], cycler.UnitsFor(opts.Texts[0], 0, opts))
	close(ready)

	select {
	case <-ctx.Done():
		logger.Debug("interrupted")
	case <-done:
	}
	return nil
}

func printItem(w io.Writer, index, n int, text string, units []cycler.Unit) {
	fmt.Fprintf(w, "[%d/%d] %s\n", index+1, n, text)
	if playUnits {
		fmt.Fprintln(w, unitTable(units))
	}
}
