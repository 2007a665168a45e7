package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/f3rmion/rotext/internal/config"
	"github.com/f3rmion/rotext/internal/cycler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)

	require.NoError(t, config.Save(path, config.Default()))
	p, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.Default(), p)
}

func TestLoad_Durations(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	doc := `texts: [Developer, Designer]
split_by: words
loop: false
rotation_interval: 1500ms
stagger_from: center
stagger_duration: 40ms
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	p, err := config.Load(path)
	require.NoError(t, err)

	opts, err := p.Options()
	require.NoError(t, err)
	assert.Equal(t, []string{"Developer", "Designer"}, opts.Texts)
	assert.Equal(t, cycler.ByWords, opts.SplitBy)
	assert.False(t, opts.Loop)
	assert.False(t, opts.Auto)
	assert.Equal(t, 1500*time.Millisecond, opts.RotationInterval)
	assert.Equal(t, cycler.StaggerCenter, opts.StaggerFrom)
	assert.Equal(t, 40*time.Millisecond, opts.StaggerDuration)
}

func TestLoad_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("rotation_interval: soon\n"), 0644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_Missing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptions_Defaults(t *testing.T) {
	p := &config.Profile{Texts: []string{"a"}}
	opts, err := p.Options()
	require.NoError(t, err)

	assert.True(t, opts.Loop)
	assert.Equal(t, 2*time.Second, opts.RotationInterval)
	assert.Equal(t, cycler.StaggerFirst, opts.StaggerFrom)
	assert.Equal(t, cycler.ByCharacters, opts.SplitBy)
}

func TestOptions_BadStagger(t *testing.T) {
	p := &config.Profile{Texts: []string{"a"}, StaggerFrom: "middle"}
	_, err := p.Options()

	var cfgErr *cycler.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestOptions_ZeroStaggerIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("texts: [abc]\nstagger_duration: 0s\n"), 0644))

	p, err := config.Load(path)
	require.NoError(t, err)
	require.NotNil(t, p.StaggerDuration)

	opts, err := p.Options()
	require.NoError(t, err)
	assert.Zero(t, opts.StaggerDuration)
}

func TestOptions_UnsetStaggerUsesDefault(t *testing.T) {
	p := &config.Profile{Texts: []string{"abc"}}
	opts, err := p.Options()
	require.NoError(t, err)
	assert.Equal(t, 25*time.Millisecond, opts.StaggerDuration)
}

func TestGetConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := config.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "rotext"), dir)

	require.NoError(t, config.EnsureConfigDir(dir))
	assert.DirExists(t, dir)
}
