package cycler

import (
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// SplitMode selects how the active text is broken into units.
type SplitMode int

const (
	SplitCharacters SplitMode = iota
	SplitWords
	SplitLines
	SplitCustom
	// SplitRunes splits by code point, ignoring grapheme clusters.
	SplitRunes
)

// SplitPolicy is a SplitMode plus the separator used by SplitCustom.
type SplitPolicy struct {
	Mode      SplitMode
	Separator string
}

var (
	ByCharacters = SplitPolicy{Mode: SplitCharacters}
	ByWords      = SplitPolicy{Mode: SplitWords}
	ByLines      = SplitPolicy{Mode: SplitLines}
	ByRunes      = SplitPolicy{Mode: SplitRunes}
)

// BySeparator splits on a literal separator.
func BySeparator(sep string) SplitPolicy {
	return SplitPolicy{Mode: SplitCustom, Separator: sep}
}

// ParseSplitPolicy maps a configuration string to a SplitPolicy. Known names
// select a mode; anything else is taken as a literal separator.
func ParseSplitPolicy(s string) SplitPolicy {
	switch s {
	case "", "characters", "chars":
		return ByCharacters
	case "words":
		return ByWords
	case "lines":
		return ByLines
	case "runes":
		return ByRunes
	default:
		return BySeparator(s)
	}
}

func (p SplitPolicy) String() string {
	switch p.Mode {
	case SplitWords:
		return "words"
	case SplitLines:
		return "lines"
	case SplitRunes:
		return "runes"
	case SplitCustom:
		return strconv.Quote(p.Separator)
	default:
		return "characters"
	}
}

type staggerKind int

const (
	staggerFirst staggerKind = iota
	staggerLast
	staggerCenter
	staggerRandom
	staggerIndex
)

// StaggerFrom is the origin of the per-unit delay ordering.
type StaggerFrom struct {
	kind  staggerKind
	index int
}

var (
	StaggerFirst  = StaggerFrom{kind: staggerFirst}
	StaggerLast   = StaggerFrom{kind: staggerLast}
	StaggerCenter = StaggerFrom{kind: staggerCenter}
	StaggerRandom = StaggerFrom{kind: staggerRandom}
)

// StaggerIndex orders delays by distance from unit k.
func StaggerIndex(k int) StaggerFrom {
	return StaggerFrom{kind: staggerIndex, index: k}
}

// ParseStaggerFrom accepts first, last, center, random or a decimal index.
func ParseStaggerFrom(s string) (StaggerFrom, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return StaggerFirst, nil
	case "last":
		return StaggerLast, nil
	case "center":
		return StaggerCenter, nil
	case "random":
		return StaggerRandom, nil
	}
	k, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return StaggerFirst, configErr("stagger_from", "unknown value "+strconv.Quote(s))
	}
	return StaggerIndex(k), nil
}

func (s StaggerFrom) String() string {
	switch s.kind {
	case staggerLast:
		return "last"
	case staggerCenter:
		return "center"
	case staggerRandom:
		return "random"
	case staggerIndex:
		return strconv.Itoa(s.index)
	default:
		return "first"
	}
}

// Options holds the construction parameters of a Cycler.
type Options struct {
	Texts            []string
	SplitBy          SplitPolicy
	Loop             bool
	Auto             bool
	RotationInterval time.Duration
	StaggerFrom      StaggerFrom
	StaggerDuration  time.Duration

	// OnNext receives the new index after every index change.
	OnNext func(index int)
}

// DefaultOptions returns the documented defaults with the given texts.
func DefaultOptions(texts ...string) Options {
	return Options{
		Texts:            texts,
		SplitBy:          ByCharacters,
		Loop:             true,
		RotationInterval: 2 * time.Second,
		StaggerFrom:      StaggerFirst,
		StaggerDuration:  25 * time.Millisecond,
	}
}

func (o Options) validate() error {
	if len(o.Texts) == 0 {
		return &ConfigurationError{Field: "texts", Reason: ErrNoTexts.Error(), err: ErrNoTexts}
	}
	if o.SplitBy.Mode == SplitCustom && o.SplitBy.Separator == "" {
		return configErr("split_by", "custom separator must not be empty")
	}
	if o.StaggerDuration < 0 {
		return configErr("stagger_duration", "must not be negative")
	}
	if o.Auto && o.RotationInterval <= 0 {
		return configErr("rotation_interval", "must be positive when auto is enabled")
	}
	return nil
}

// Option configures collaborators that are not part of the widget contract.
type Option func(*Cycler)

// WithLogger sets the logger used for transition diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cycler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the time source of the auto-advance ticker.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Cycler) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithSubscriber registers fn before the auto-advance ticker is armed, so
// it sees every transition from the first tick on.
func WithSubscriber(fn func(Transition)) Option {
	return func(c *Cycler) {
		if fn != nil {
			c.addSubLocked(fn)
		}
	}
}
