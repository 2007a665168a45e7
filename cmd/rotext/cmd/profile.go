package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/f3rmion/rotext/internal/config"
	"github.com/f3rmion/rotext/internal/tui"
	"github.com/spf13/viper"
)

// loadProfile reads the profile file and applies environment and flag
// overrides on top. A missing default profile falls back to config.Default;
// a missing explicit --config is an error.
func loadProfile() (*config.Profile, error) {
	path := viper.GetString("config_file")
	explicit := path != ""
	if !explicit {
		path = filepath.Join(getConfigDir(), config.FileName)
	}

	profile, err := config.Load(path)
	if err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		profile = config.Default()
	}

	if viper.IsSet("texts") {
		switch v := viper.Get("texts").(type) {
		case string:
			profile.Texts = tui.ParseList(v)
		case []string:
			profile.Texts = v
		default:
			profile.Texts = viper.GetStringSlice("texts")
		}
	}
	if viper.IsSet("split_by") {
		profile.SplitBy = viper.GetString("split_by")
	}
	if viper.IsSet("loop") {
		loop := viper.GetBool("loop")
		profile.Loop = &loop
	}
	if viper.IsSet("auto") {
		profile.Auto = viper.GetBool("auto")
	}
	if viper.IsSet("rotation_interval") {
		profile.RotationInterval = config.Duration(viper.GetDuration("rotation_interval"))
	}
	if viper.IsSet("stagger_from") {
		profile.StaggerFrom = viper.GetString("stagger_from")
	}
	if viper.IsSet("stagger_duration") {
		stagger := config.Duration(viper.GetDuration("stagger_duration"))
		profile.StaggerDuration = &stagger
	}

	return profile, nil
}
