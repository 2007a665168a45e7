package cycler_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/f3rmion/rotext/internal/cycler"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roles = []string{"Developer", "Designer", "Creator"}

func newCycler(t *testing.T, mutate func(*cycler.Options), extra ...cycler.Option) *cycler.Cycler {
	t.Helper()
	opts := cycler.DefaultOptions(roles...)
	if mutate != nil {
		mutate(&opts)
	}
	c, err := cycler.New(opts, extra...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestNew_EmptyTexts(t *testing.T) {
	c, err := cycler.New(cycler.DefaultOptions())
	assert.Nil(t, c)

	var cfgErr *cycler.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "texts", cfgErr.Field)
	assert.True(t, errors.Is(err, cycler.ErrNoTexts))
}

func TestNew_InvalidOptions(t *testing.T) {
	cases := map[string]func(*cycler.Options){
		"empty separator":  func(o *cycler.Options) { o.SplitBy = cycler.BySeparator("") },
		"negative stagger": func(o *cycler.Options) { o.StaggerDuration = -time.Millisecond },
		"zero interval with auto": func(o *cycler.Options) {
			o.Auto = true
			o.RotationInterval = 0
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			opts := cycler.DefaultOptions(roles...)
			mutate(&opts)
			_, err := cycler.New(opts)
			var cfgErr *cycler.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
			assert.False(t, errors.Is(err, cycler.ErrNoTexts))
		})
	}
}

func TestNext_Sequence(t *testing.T) {
	c := newCycler(t, nil)
	assert.Equal(t, "Developer", c.Current())

	assert.True(t, c.Next())
	assert.Equal(t, "Designer", c.Current())

	assert.True(t, c.Next())
	assert.Equal(t, "Creator", c.Current())

	assert.True(t, c.Next())
	assert.Equal(t, "Developer", c.Current())
	assert.Equal(t, cycler.Forward, c.Direction())
}

func TestNext_NoLoopStopsAtEnd(t *testing.T) {
	var calls []int
	c := newCycler(t, func(o *cycler.Options) {
		o.Loop = false
		o.OnNext = func(i int) { calls = append(calls, i) }
	})

	c.JumpTo(2)
	calls = nil

	assert.False(t, c.Next())
	assert.Equal(t, 2, c.Index())
	assert.Empty(t, calls)
}

func TestPrevious(t *testing.T) {
	c := newCycler(t, nil)

	assert.True(t, c.Previous())
	assert.Equal(t, "Creator", c.Current())
	assert.Equal(t, cycler.Backward, c.Direction())

	assert.True(t, c.Previous())
	assert.Equal(t, 1, c.Index())
}

func TestPrevious_NoLoopStopsAtStart(t *testing.T) {
	c := newCycler(t, func(o *cycler.Options) { o.Loop = false })

	assert.False(t, c.Previous())
	assert.Equal(t, 0, c.Index())
}

func TestJumpTo_Clamps(t *testing.T) {
	c := newCycler(t, nil)

	for _, tc := range []struct{ in, want int }{
		{-5, 0}, {0, 0}, {1, 1}, {2, 2}, {3, 2}, {100, 2}, {-1, 0},
	} {
		c.JumpTo(tc.in)
		assert.Equal(t, tc.want, c.Index(), "JumpTo(%d)", tc.in)
	}
}

func TestJumpTo_Direction(t *testing.T) {
	c := newCycler(t, nil)

	c.JumpTo(2)
	assert.Equal(t, cycler.Forward, c.Direction())

	c.JumpTo(1)
	assert.Equal(t, cycler.Backward, c.Direction())
}

func TestJumpTo_SameIndexDoesNotNotify(t *testing.T) {
	var calls []int
	c := newCycler(t, func(o *cycler.Options) {
		o.OnNext = func(i int) { calls = append(calls, i) }
	})

	assert.False(t, c.JumpTo(0))
	assert.False(t, c.JumpTo(-3))
	assert.Empty(t, calls)

	assert.True(t, c.JumpTo(7))
	assert.Equal(t, []int{2}, calls)
}

func TestReset(t *testing.T) {
	c := newCycler(t, nil)

	c.JumpTo(1)
	assert.True(t, c.Reset())
	assert.Equal(t, "Developer", c.Current())

	assert.False(t, c.Reset())
	assert.Equal(t, 0, c.Index())
}

func TestOnNext_CalledWithNewIndex(t *testing.T) {
	var calls []int
	c := newCycler(t, func(o *cycler.Options) {
		o.OnNext = func(i int) { calls = append(calls, i) }
	})

	c.Next()
	c.Next()
	c.Previous()
	c.Reset()

	assert.Equal(t, []int{1, 2, 1, 0}, calls)
}

func TestSingleItemNeverNotifies(t *testing.T) {
	called := false
	c, err := cycler.New(cycler.Options{
		Texts:  []string{"Single Text"},
		Loop:   true,
		OnNext: func(int) { called = true },
	})
	require.NoError(t, err)
	defer c.Close()

	c.Next()
	c.Previous()
	c.JumpTo(4)
	assert.Equal(t, "Single Text", c.Current())
	assert.False(t, called)
}

func TestEmptyStringItem(t *testing.T) {
	c, err := cycler.New(cycler.DefaultOptions(""))
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "", c.Current())
	assert.Empty(t, c.Units())
}

func TestIndexInvariant(t *testing.T) {
	for _, loop := range []bool{true, false} {
		c := newCycler(t, func(o *cycler.Options) { o.Loop = loop })
		ops := []func(){
			func() { c.Next() },
			func() { c.Previous() },
			func() { c.JumpTo(-10) },
			func() { c.JumpTo(10) },
			func() { c.Reset() },
			func() { c.Tick() },
		}
		for i := 0; i < 200; i++ {
			ops[(i*7+i/3)%len(ops)]()
			idx := c.Index()
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, c.Len())
		}
	}
}

func TestSubscribe(t *testing.T) {
	c := newCycler(t, nil)

	var got []cycler.Transition
	unsubscribe := c.Subscribe(func(tr cycler.Transition) { got = append(got, tr) })

	c.Next()
	c.JumpTo(0)

	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].From)
	assert.Equal(t, 1, got[0].To)
	assert.Equal(t, cycler.Forward, got[0].Direction)
	assert.Equal(t, "Designer", got[0].Text)
	assert.Len(t, got[0].Units, len("Designer"))

	assert.Equal(t, 1, got[1].From)
	assert.Equal(t, 0, got[1].To)
	assert.Equal(t, cycler.Backward, got[1].Direction)
	assert.Equal(t, "Developer", got[1].Text)

	unsubscribe()
	c.Next()
	assert.Len(t, got, 2)
}

func TestSubscribe_ReentrantCallsKeepOrder(t *testing.T) {
	c := newCycler(t, nil)

	var got []int
	c.Subscribe(func(tr cycler.Transition) {
		got = append(got, tr.To)
		if tr.To == 1 {
			c.Next()
		}
	})

	c.Next()
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 2, c.Index())
}

func TestSetTexts(t *testing.T) {
	var calls []int
	c := newCycler(t, func(o *cycler.Options) {
		o.OnNext = func(i int) { calls = append(calls, i) }
	})
	c.JumpTo(2)
	calls = nil

	require.NoError(t, c.SetTexts([]string{"Go", "Rust"}))
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, "Go", c.Current())
	assert.Equal(t, []int{0}, calls)

	err := c.SetTexts(nil)
	assert.True(t, errors.Is(err, cycler.ErrNoTexts))
	assert.Equal(t, []string{"Go", "Rust"}, c.Texts())
}

func TestClose_StopsNavigation(t *testing.T) {
	called := false
	c := newCycler(t, func(o *cycler.Options) {
		o.OnNext = func(int) { called = true }
	})

	c.Close()
	c.Close()

	assert.False(t, c.Next())
	assert.False(t, c.JumpTo(2))
	assert.Equal(t, 0, c.Index())
	assert.False(t, called)
}

func TestUnits_UpdatedOnTransition(t *testing.T) {
	c := newCycler(t, nil)

	assert.Len(t, c.Units(), len("Developer"))
	c.Next()
	units := c.Units()
	require.Len(t, units, len("Designer"))
	assert.Equal(t, "D", units[0].Text)
	assert.Equal(t, 7*25*time.Millisecond, units[7].Delay)
}

func TestAuto_AdvancesOnTicker(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ticks := make(chan int, 10)
	c := newCycler(t, func(o *cycler.Options) {
		o.Auto = true
		o.RotationInterval = 2 * time.Second
		o.OnNext = func(i int) { ticks <- i }
	}, cycler.WithClock(clock))

	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, receive(t, ticks))

	clock.Advance(2 * time.Second)
	assert.Equal(t, 2, receive(t, ticks))
}

func TestAuto_NoLoopHoldsLastItem(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ticks := make(chan int, 10)
	c := newCycler(t, func(o *cycler.Options) {
		o.Auto = true
		o.Loop = false
		o.RotationInterval = time.Second
		o.OnNext = func(i int) { ticks <- i }
	}, cycler.WithClock(clock))
	c.JumpTo(2)
	<-ticks

	clock.Advance(time.Second)
	assertNoReceive(t, ticks)
	assert.Equal(t, 2, c.Index())
}

// Manual navigation does not re-arm the timer, so a tick can follow a manual
// step closely. This pins the current behaviour.
func TestAuto_ManualNavigationDoesNotResetTimer(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ticks := make(chan int, 10)
	c := newCycler(t, func(o *cycler.Options) {
		o.Auto = true
		o.RotationInterval = 2 * time.Second
		o.OnNext = func(i int) { ticks <- i }
	}, cycler.WithClock(clock))

	clock.Advance(time.Second)
	c.Next()
	assert.Equal(t, 1, receive(t, ticks))

	clock.Advance(time.Second)
	assert.Equal(t, 2, receive(t, ticks))
}

func TestAuto_CloseCancelsTimer(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ticks := make(chan int, 10)
	c := newCycler(t, func(o *cycler.Options) {
		o.Auto = true
		o.RotationInterval = time.Second
		o.OnNext = func(i int) { ticks <- i }
	}, cycler.WithClock(clock))

	clock.Advance(time.Second)
	assert.Equal(t, 1, receive(t, ticks))

	c.Close()
	clock.Advance(5 * time.Second)
	assertNoReceive(t, ticks)
	assert.Equal(t, 1, c.Index())
}

func TestWithSubscriber_SeesFirstTick(t *testing.T) {
	clock := clockwork.NewFakeClock()
	got := make(chan int, 10)
	newCycler(t, func(o *cycler.Options) {
		o.Auto = true
		o.RotationInterval = time.Second
	}, cycler.WithClock(clock), cycler.WithSubscriber(func(tr cycler.Transition) {
		got <- tr.To
	}))

	// no Subscribe call between New and the first tick
	clock.Advance(time.Second)
	assert.Equal(t, 1, receive(t, got))
}

func TestUnitsFor_MatchesCycler(t *testing.T) {
	c := newCycler(t, func(o *cycler.Options) { o.StaggerFrom = cycler.StaggerRandom })
	c.JumpTo(2)

	assert.Equal(t, c.Units(), cycler.UnitsFor("Creator", 2, c.Options()))
}

func TestConcurrentNavigation(t *testing.T) {
	c := newCycler(t, nil)

	var mu sync.Mutex
	count := 0
	c.Subscribe(func(cycler.Transition) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c.Next()
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 400, count)
	assert.Equal(t, 400%len(roles), c.Index())
}

func receive(t *testing.T, ch <-chan int) int {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for transition")
		return -1
	}
}

func assertNoReceive(t *testing.T, ch <-chan int) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected transition to %d", v)
	case <-time.After(50 * time.Millisecond):
	}
}
