package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/f3rmion/rotext/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetState puts the shared command tree and viper back to their defaults
// so each test parses its flags from a clean slate.
func resetState(t *testing.T) {
	t.Helper()
	resetFlags(t, rootCmd)
	cfgFile = ""
	viper.Reset()
	bindFlags()
	t.Cleanup(func() {
		resetFlags(t, rootCmd)
		cfgFile = ""
		viper.Reset()
		bindFlags()
	})
}

func resetFlags(t *testing.T, cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			require.NoError(t, sv.Replace(nil))
		} else {
			require.NoError(t, f.Value.Set(f.DefValue))
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(t, sub)
	}
}

func execute(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	resetState(t)
	t.Setenv("HOME", home)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSplitCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(),
		"split", "--split-by", "words", "--stagger-from", "first", "--stagger-duration", "10ms", "Hello World")
	require.NoError(t, err)

	assert.Contains(t, out, "split by words, stagger from first, step 10ms")
	assert.Contains(t, out, `"Hello"`)
	assert.Contains(t, out, `" "`)
	assert.Contains(t, out, `"World"`)
	assert.Contains(t, out, "20ms")
}

func TestSplitCommand_FlagsDoNotLeak(t *testing.T) {
	_, err := execute(t, t.TempDir(),
		"split", "--split-by", "words", "--stagger-from", "center", "--stagger-duration", "10ms", "a b")
	require.NoError(t, err)

	out, err := execute(t, t.TempDir(), "split", "ab")
	require.NoError(t, err)
	assert.Contains(t, out, "split by characters, stagger from last, step 25ms")
}

func TestSplitCommand_ZeroStagger(t *testing.T) {
	out, err := execute(t, t.TempDir(), "split", "--stagger-duration", "0s", "abc")
	require.NoError(t, err)

	assert.Contains(t, out, "step 0s")
	assert.NotContains(t, out, "25ms")
	assert.NotContains(t, out, "50ms")
}

func TestInitCommand(t *testing.T) {
	home := t.TempDir()

	out, err := execute(t, home, "init")
	require.NoError(t, err)
	path := filepath.Join(home, ".config", "rotext", config.FileName)
	assert.Contains(t, out, path)

	p, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), p)

	_, err = execute(t, home, "init")
	assert.ErrorContains(t, err, "already exists")
}

func TestLoadProfile_EnvOverrides(t *testing.T) {
	resetState(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ROTEXT_TEXTS", "Go | Rust")
	t.Setenv("ROTEXT_AUTO", "false")
	initConfig()

	p, err := loadProfile()
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Rust"}, p.Texts)
	assert.False(t, p.Auto)
}

func TestLoadProfile_MissingExplicitFile(t *testing.T) {
	resetState(t)
	t.Setenv("HOME", t.TempDir())
	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	initConfig()

	_, err := loadProfile()
	assert.Error(t, err)
}

func TestPlayCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(),
		"play", "--texts", "one", "--texts", "two", "--interval", "10ms", "--count", "2")
	require.NoError(t, err)

	assert.Equal(t, "[1/2] one\n[2/2] two\n[1/2] one\n", out)
}
