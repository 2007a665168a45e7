package cycler

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"
)

// Stagger fills Order and Delay for units in place. Whitespace units keep a
// zero delay but still count towards N, so word tokens keep the position they
// have in the full unit list. seed only matters for StaggerRandom.
func Stagger(units []Unit, from StaggerFrom, step time.Duration, seed uint64) {
	n := len(units)
	if n == 0 {
		return
	}

	var perm []int
	if from.kind == staggerRandom {
		perm = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).Perm(n)
	}

	for i := range units {
		if units[i].Whitespace {
			units[i].Order = 0
			units[i].Delay = 0
			continue
		}

		var order float64
		switch from.kind {
		case staggerLast:
			order = float64(n - 1 - i)
		case staggerCenter:
			order = math.Abs(float64(i) - float64(n-1)/2)
		case staggerRandom:
			order = float64(perm[i])
		case staggerIndex:
			order = math.Abs(float64(i - from.index))
		default:
			order = float64(i)
		}
		units[i].Order = order
		units[i].Delay = time.Duration(math.Round(order * float64(step)))
	}
}

// seedFor derives a stable seed from the item, so re-rendering the same item
// yields the same random order.
func seedFor(text string, index int) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	return h.Sum64() ^ uint64(index)
}

// MaxDelay is the largest delay in units.
func MaxDelay(units []Unit) time.Duration {
	var longest time.Duration
	for _, u := range units {
		if u.Delay > longest {
			longest = u.Delay
		}
	}
	return longest
}
