// Package cmd contains all CLI commands for rotext.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/rotext/internal/config"
	"github.com/f3rmion/rotext/internal/logging"
	"github.com/f3rmion/rotext/internal/tui"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rotext",
	Short: "Rotating text for the terminal",
	Long: `rotext cycles through a list of phrases, revealing each one unit by
unit with a staggered entrance.

Phrases and timing come from a profile (rotext.yaml in the config
directory, or --config), ROTEXT_* environment variables and flags, in
increasing order of precedence. A .env file in the working directory is
loaded into the environment first.

Running 'rotext' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "profile file (default is $HOME/.config/rotext/rotext.yaml)")
	flags.Bool("verbose", false, "verbose output")
	flags.StringArray("texts", nil, "phrase to rotate through (repeatable)")
	flags.String("split-by", "", "characters, words, lines, or a literal separator")
	flags.Bool("loop", true, "wrap around at either end")
	flags.Bool("auto", false, "advance automatically")
	flags.Duration("interval", 0, "auto-advance period (e.g. 2s)")
	flags.String("stagger-from", "", "first, last, center, random, or a unit index")
	flags.Duration("stagger-duration", 0, "delay step between units (e.g. 25ms)")

	rootCmd.Flags().String("title", "", "heading shown above the text")
	rootCmd.Flags().Bool("banner", false, "render the active text as block letters")

	bindFlags()
}

// bindFlags attaches the persistent and root flags to their viper keys.
func bindFlags() {
	flags := rootCmd.PersistentFlags()
	for key, name := range map[string]string{
		"verbose":           "verbose",
		"texts":             "texts",
		"split_by":          "split-by",
		"loop":              "loop",
		"auto":              "auto",
		"rotation_interval": "interval",
		"stagger_from":      "stagger-from",
		"stagger_duration":  "stagger-duration",
	} {
		viper.BindPFlag(key, flags.Lookup(name))
	}
	viper.BindPFlag("title", rootCmd.Flags().Lookup("title"))
	viper.BindPFlag("banner", rootCmd.Flags().Lookup("banner"))
}

// initConfig reads in .env and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Error reading .env:", err)
	}

	configDir, err := config.GetConfigDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
		os.Exit(1)
	}
	viper.Set("config_dir", configDir)
	viper.Set("config_file", cfgFile)

	viper.SetEnvPrefix("ROTEXT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// runTUI launches the interactive rotating text.
func runTUI(cmd *cobra.Command, args []string) error {
	profile, err := loadProfile()
	if err != nil {
		return err
	}
	opts, err := profile.Options()
	if err != nil {
		return err
	}

	configDir := getConfigDir()
	if err := config.EnsureConfigDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	logger, closeLog, err := logging.NewFile(filepath.Join(configDir, "rotext.log"), viper.GetBool("verbose"))
	if err != nil {
		return err
	}
	defer closeLog()

	model, err := tui.New(opts, tui.Settings{
		Title:      viper.GetString("title"),
		Banner:     profile.Banner || viper.GetBool("banner"),
		Accent:     profile.Style.Accent,
		Background: profile.Style.Background,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer model.Cycler().Close()

	logger.Info("starting tui", zap.Int("texts", len(opts.Texts)), zap.Bool("auto", opts.Auto))

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
