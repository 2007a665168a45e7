// Package config handles loading and saving rotext profiles.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/f3rmion/rotext/internal/cycler"
	"gopkg.in/yaml.v3"
)

// FileName is the profile looked up in the config directory.
const FileName = "rotext.yaml"

// Profile is the on-disk description of a rotating text.
type Profile struct {
	Texts            []string  `yaml:"texts"`
	SplitBy          string    `yaml:"split_by,omitempty"`          // characters, words, lines, or a literal separator
	Loop             *bool     `yaml:"loop,omitempty"`              // defaults to true
	Auto             bool      `yaml:"auto"`                        // enable the rotation timer
	RotationInterval Duration  `yaml:"rotation_interval,omitempty"` // e.g. "2s"
	StaggerFrom      string    `yaml:"stagger_from,omitempty"`      // first, last, center, random or an index
	StaggerDuration  *Duration `yaml:"stagger_duration,omitempty"`  // e.g. "25ms"; 0s reveals all units at once
	Banner           bool      `yaml:"banner,omitempty"`
	Style            Style     `yaml:"style,omitempty"`
}

// Style holds display colors for the terminal view.
type Style struct {
	Accent     string `yaml:"accent,omitempty"`     // e.g. "#4ecdc4"
	Background string `yaml:"background,omitempty"` // e.g. "#1a1a2e"
}

// Duration is a time.Duration written as a Go duration string.
type Duration time.Duration

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the profile written by "rotext init".
func Default() *Profile {
	loop := true
	stagger := Duration(25 * time.Millisecond)
	return &Profile{
		Texts:            []string{"Fullstack Developer", "Web Developer", "Software Developer", "Fullstack AI Prompter"},
		SplitBy:          "characters",
		Loop:             &loop,
		Auto:             true,
		RotationInterval: Duration(2 * time.Second),
		StaggerFrom:      "last",
		StaggerDuration:  &stagger,
		Style: Style{
			Accent:     "#4ecdc4",
			Background: "#1a1a2e",
		},
	}
}

// Options converts the profile into cycler options. Unset fields take the
// cycler defaults.
func (p *Profile) Options() (cycler.Options, error) {
	opts := cycler.DefaultOptions(p.Texts...)
	opts.SplitBy = cycler.ParseSplitPolicy(p.SplitBy)
	opts.Auto = p.Auto
	if p.Loop != nil {
		opts.Loop = *p.Loop
	}
	if p.RotationInterval != 0 {
		opts.RotationInterval = time.Duration(p.RotationInterval)
	}
	if p.StaggerDuration != nil {
		opts.StaggerDuration = time.Duration(*p.StaggerDuration)
	}

	from, err := cycler.ParseStaggerFrom(p.StaggerFrom)
	if err != nil {
		return opts, fmt.Errorf("profile: %w", err)
	}
	opts.StaggerFrom = from

	return opts, nil
}

// Load reads a profile from a YAML file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	return &p, nil
}

// Save writes a profile to a YAML file.
func Save(path string, p *Profile) error {
	out, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rotext"), nil
}

// EnsureConfigDir creates dir if it doesn't exist.
func EnsureConfigDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
