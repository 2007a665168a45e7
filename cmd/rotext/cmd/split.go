package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/f3rmion/rotext/internal/cycler"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var splitCmd = &cobra.Command{
	Use:   "split [text...]",
	Short: "Show how a text is split and staggered",
	Long: `Print the unit breakdown of a text with each unit's stagger order and
delay, using the configured split policy and stagger settings.

Without arguments every text of the profile is shown.

Examples:
  rotext split --split-by words --stagger-from center "Hello brave new world"
  rotext split --split-by , "a,b,c"`,
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	profile, err := loadProfile()
	if err != nil {
		return err
	}
	opts, err := profile.Options()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		opts.Texts = []string{strings.Join(args, " ")}
	}
	opts.Auto = false

	c, err := cycler.New(opts)
	if err != nil {
		return err
	}
	defer c.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "split by %s, stagger from %s, step %s\n\n", opts.SplitBy, opts.StaggerFrom, opts.StaggerDuration)
	for i := 0; i < c.Len(); i++ {
		c.JumpTo(i)
		fmt.Fprintf(out, "%q\n%s\n\n", c.Current(), unitTable(c.Units()))
	}
	return nil
}

// unitTable renders units as a bordered table.
func unitTable(units []cycler.Unit) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "UNIT", "WIDTH", "ORDER", "DELAY")

	for _, u := range units {
		order := strconv.FormatFloat(u.Order, 'f', -1, 64)
		if u.Whitespace {
			order = "-"
		}
		t.Row(
			strconv.Itoa(u.Index),
			strconv.Quote(u.Text),
			strconv.Itoa(runewidth.StringWidth(u.Text)),
			order,
			u.Delay.String(),
		)
	}
	return t.String()
}
