// Package cycler implements a rotating text sequence: an index into a fixed
// list of strings that advances on a timer or on demand, plus the staggered
// unit breakdown of the active item for whatever layer animates it.
package cycler

import (
	"sync"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Direction of the most recent navigation.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Transition describes one index change.
type Transition struct {
	From      int
	To        int
	Direction Direction
	Text      string

	// Units of the new item, owned by the receiver.
	Units []Unit
}

// Cycler owns the current index of a text sequence. All methods are safe for
// concurrent use; subscribers are called in the order transitions happened.
type Cycler struct {
	mu        sync.Mutex
	opts      Options
	texts     []string
	index     int
	direction Direction
	units     []Unit
	closed    bool

	subs    map[int]func(Transition)
	nextSub int

	// pending transitions waiting to be delivered; draining is set while a
	// goroutine is delivering them.
	pending  []Transition
	draining bool

	clock  clockwork.Clock
	logger *zap.Logger
	ticker clockwork.Ticker
	stop   chan struct{}
}

// New validates opts and builds a Cycler at index 0. When opts.Auto is set
// the auto-advance ticker is armed immediately; call Close to disarm it.
func New(opts Options, extra ...Option) (*Cycler, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	c := &Cycler{
		opts:   opts,
		texts:  append([]string(nil), opts.Texts...),
		subs:   make(map[int]func(Transition)),
		clock:  clockwork.NewRealClock(),
		logger: zap.NewNop(),
	}
	c.opts.Texts = nil
	for _, o := range extra {
		o(c)
	}
	c.units = c.computeUnits()

	if opts.Auto {
		c.ticker = c.clock.NewTicker(opts.RotationInterval)
		c.stop = make(chan struct{})
		go c.run(c.ticker, c.stop)
	}

	c.logger.Debug("cycler created",
		zap.Int("texts", len(c.texts)),
		zap.Stringer("split_by", opts.SplitBy),
		zap.Stringer("stagger_from", opts.StaggerFrom),
		zap.Bool("loop", opts.Loop),
		zap.Bool("auto", opts.Auto),
		zap.Duration("interval", opts.RotationInterval))

	return c, nil
}

func (c *Cycler) run(ticker clockwork.Ticker, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			c.Tick()
		}
	}
}

// Close disarms the auto-advance ticker. Once Close returns no new transition
// is started and no further callback is invoked. Close is idempotent.
func (c *Cycler) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.pending = nil
	ticker, stop := c.ticker, c.stop
	c.ticker, c.stop = nil, nil
	c.mu.Unlock()

	if ticker != nil {
		ticker.Stop()
		close(stop)
	}
	c.logger.Debug("cycler closed")
}

// Next advances by one. At the last item it wraps to 0 when looping and is a
// no-op otherwise. It reports whether the index changed.
func (c *Cycler) Next() bool {
	return c.step(Forward, "next")
}

// Previous mirrors Next in the backward direction.
func (c *Cycler) Previous() bool {
	return c.step(Backward, "previous")
}

// Tick advances the way the auto-advance timer does. Hosts that schedule
// rotation themselves call it instead of enabling Auto.
func (c *Cycler) Tick() bool {
	return c.step(Forward, "tick")
}

func (c *Cycler) step(dir Direction, source string) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}

	n := len(c.texts)
	target := c.index
	switch dir {
	case Forward:
		if c.index < n-1 {
			target = c.index + 1
		} else if c.opts.Loop {
			target = 0
		}
	case Backward:
		if c.index > 0 {
			target = c.index - 1
		} else if c.opts.Loop {
			target = n - 1
		}
	}
	c.direction = dir

	if target == c.index {
		c.mu.Unlock()
		c.logger.Debug("navigation is a no-op",
			zap.String("source", source), zap.Int("index", target))
		return false
	}
	c.moveLocked(target, source)
	return true
}

// JumpTo moves to index, clamped into [0, Len()-1]. Out of range values are
// not an error. Jumping to the current index changes nothing.
func (c *Cycler) JumpTo(index int) bool {
	return c.jump(index, "jump")
}

// Reset jumps back to the first item.
func (c *Cycler) Reset() bool {
	return c.jump(0, "reset")
}

func (c *Cycler) jump(index int, source string) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}

	target := clamp(index, 0, len(c.texts)-1)
	if target != index {
		c.logger.Debug("jump index clamped", zap.Int("requested", index), zap.Int("index", target))
	}
	if target == c.index {
		c.mu.Unlock()
		return false
	}
	if target > c.index {
		c.direction = Forward
	} else {
		c.direction = Backward
	}
	c.moveLocked(target, source)
	return true
}

// moveLocked applies the transition, releases mu and delivers callbacks.
func (c *Cycler) moveLocked(target int, source string) {
	t := Transition{From: c.index, To: target, Direction: c.direction, Text: c.texts[target]}
	c.index = target
	c.units = c.computeUnits()
	t.Units = append([]Unit(nil), c.units...)
	c.logger.Debug("transition",
		zap.String("source", source),
		zap.Int("from", t.From),
		zap.Int("to", t.To),
		zap.Stringer("direction", t.Direction))
	c.enqueueLocked(t)
}

// SetTexts replaces the whole list and rewinds to the first item. An empty
// list is rejected and leaves the cycler untouched.
func (c *Cycler) SetTexts(texts []string) error {
	if len(texts) == 0 {
		return &ConfigurationError{Field: "texts", Reason: ErrNoTexts.Error(), err: ErrNoTexts}
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	prevIndex, prevText := c.index, c.texts[c.index]
	c.texts = append([]string(nil), texts...)
	c.index = 0
	c.direction = Forward
	c.units = c.computeUnits()
	c.logger.Debug("texts replaced", zap.Int("texts", len(texts)))

	if prevIndex == 0 && prevText == c.texts[0] {
		c.mu.Unlock()
		return nil
	}
	c.enqueueLocked(Transition{
		From:      prevIndex,
		To:        0,
		Direction: Forward,
		Text:      c.texts[0],
		Units:     append([]Unit(nil), c.units...),
	})
	return nil
}

// Subscribe registers fn for every transition. The returned function removes
// the subscription.
func (c *Cycler) Subscribe(fn func(Transition)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.addSubLocked(fn)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Cycler) addSubLocked(fn func(Transition)) int {
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return id
}

// enqueueLocked queues t and, unless another call is already delivering,
// drains the queue. It must be called with mu held and returns with mu
// released. Callbacks may call back into the Cycler.
func (c *Cycler) enqueueLocked(t Transition) {
	c.pending = append(c.pending, t)
	if c.draining {
		c.mu.Unlock()
		return
	}
	c.draining = true

	for {
		if c.closed || len(c.pending) == 0 {
			c.draining = false
			c.mu.Unlock()
			return
		}
		next := c.pending[0]
		c.pending = c.pending[1:]
		onNext := c.opts.OnNext
		subs := make([]func(Transition), 0, len(c.subs))
		for id := 0; id < c.nextSub; id++ {
			if fn, ok := c.subs[id]; ok {
				subs = append(subs, fn)
			}
		}
		c.mu.Unlock()

		if onNext != nil {
			onNext(next.To)
		}
		for _, fn := range subs {
			fn(next)
		}

		c.mu.Lock()
	}
}

// Current returns the active item.
func (c *Cycler) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.texts[c.index]
}

// Index returns the active position.
func (c *Cycler) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Len returns the number of items.
func (c *Cycler) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.texts)
}

// Direction returns the direction of the most recent navigation.
func (c *Cycler) Direction() Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.direction
}

// Texts returns a copy of the list.
func (c *Cycler) Texts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.texts...)
}

// Options returns the construction options, minus the texts.
func (c *Cycler) Options() Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts
}

// Units returns a copy of the split breakdown of the active item with its
// stagger delays.
func (c *Cycler) Units() []Unit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Unit(nil), c.units...)
}

func (c *Cycler) computeUnits() []Unit {
	return UnitsFor(c.texts[c.index], c.index, c.opts)
}

// UnitsFor splits and staggers text as a Cycler configured with opts does
// when text is the item at index.
func UnitsFor(text string, index int, opts Options) []Unit {
	units := Split(text, opts.SplitBy)
	Stagger(units, opts.StaggerFrom, opts.StaggerDuration, seedFor(text, index))
	return units
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
