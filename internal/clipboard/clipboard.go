// Package clipboard copies text to the system clipboard through the
// platform's command line tools.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard tool is installed.
var ErrUnavailable = errors.New("clipboard: no clipboard tool found")

// command picks the copy tool for goos, or returns nil.
func command(goos string, lookPath func(string) (string, error)) []string {
	switch goos {
	case "darwin":
		return []string{"pbcopy"}
	case "windows":
		return []string{"cmd", "/c", "clip"}
	}

	if _, err := lookPath("wl-copy"); err == nil {
		return []string{"wl-copy"}
	}
	if _, err := lookPath("xclip"); err == nil {
		return []string{"xclip", "-selection", "clipboard"}
	}
	if _, err := lookPath("xsel"); err == nil {
		return []string{"xsel", "--clipboard", "--input"}
	}
	return nil
}

// Write copies text to the system clipboard.
func Write(ctx context.Context, text string) error {
	argv := command(runtime.GOOS, exec.LookPath)
	if argv == nil {
		return ErrUnavailable
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard: %s: %w", argv[0], err)
	}
	return nil
}

// Available checks if clipboard functionality is available.
func Available() bool {
	return command(runtime.GOOS, exec.LookPath) != nil
}
