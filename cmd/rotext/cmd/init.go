package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/rotext/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default profile",
	Long: `Write a default rotext.yaml profile into your config directory.

Edit the file afterwards to set your own texts, split policy and timing.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite an existing profile")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	// Check if the profile already exists
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("profile already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureConfigDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit the texts in the profile")
	fmt.Fprintln(out, "  2. Run 'rotext split' to check the unit breakdown")
	fmt.Fprintln(out, "  3. Run 'rotext' to start the TUI")

	return nil
}
