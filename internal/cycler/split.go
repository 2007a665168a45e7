package cycler

import (
	"regexp"
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// Unit is one animated piece of the active text.
type Unit struct {
	Text  string
	Index int

	// Whitespace marks the spacing runs kept by the words policy. They are
	// laid out but never delayed.
	Whitespace bool

	Order float64
	Delay time.Duration
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Split breaks text into units according to policy. Delays are left at zero;
// see Stagger.
func Split(text string, policy SplitPolicy) []Unit {
	if text == "" {
		return nil
	}

	var parts []string
	var spaces []bool
	switch policy.Mode {
	case SplitWords:
		parts, spaces = splitWords(text)
	case SplitLines:
		parts = strings.Split(text, "\n")
		for i, p := range parts {
			parts[i] = strings.TrimSuffix(p, "\r")
		}
	case SplitCustom:
		parts = strings.Split(text, policy.Separator)
	case SplitRunes:
		for _, r := range text {
			parts = append(parts, string(r))
		}
	default:
		g := uniseg.NewGraphemes(text)
		for g.Next() {
			parts = append(parts, g.Str())
		}
	}

	units := make([]Unit, len(parts))
	for i, p := range parts {
		units[i] = Unit{Text: p, Index: i}
		if spaces != nil {
			units[i].Whitespace = spaces[i]
		}
	}
	return units
}

// splitWords interleaves word tokens with the whitespace runs between them so
// the original spacing survives layout.
func splitWords(text string) (parts []string, spaces []bool) {
	last := 0
	for _, loc := range whitespaceRun.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			parts = append(parts, text[last:loc[0]])
			spaces = append(spaces, false)
		}
		parts = append(parts, text[loc[0]:loc[1]])
		spaces = append(spaces, true)
		last = loc[1]
	}
	if last < len(text) {
		parts = append(parts, text[last:])
		spaces = append(spaces, false)
	}
	return parts, spaces
}
