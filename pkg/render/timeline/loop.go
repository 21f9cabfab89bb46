package timeline

import (
	"strconv"
	"time"
)

// Defaults for the reveal loop.
const (
	DefaultReveal      = 200 * time.Millisecond
	DefaultFade        = 4 * time.Second
	DefaultStrokeWidth = 5.0
	DefaultFadeFrom    = 10.0

	// StrokeWidth is the attribute every loop interval animates.
	StrokeWidth = "stroke-width"
)

// LoopOption configures [Loop].
type LoopOption func(*loopConfig)

type loopConfig struct {
	prefix   string
	reveal   time.Duration
	fade     time.Duration
	width    float64
	fadeFrom float64
}

// WithIDPrefix prefixes every interval ID, so several animated fragments can
// share one document without colliding.
func WithIDPrefix(p string) LoopOption { return func(c *loopConfig) { c.prefix = p } }

// WithRevealDuration sets how long each edge takes to appear.
func WithRevealDuration(d time.Duration) LoopOption { return func(c *loopConfig) { c.reveal = d } }

// WithFadeDuration sets how long the closing fade lasts.
func WithFadeDuration(d time.Duration) LoopOption { return func(c *loopConfig) { c.fade = d } }

// WithStrokeWidth sets the width edges grow to.
func WithStrokeWidth(w float64) LoopOption { return func(c *loopConfig) { c.width = w } }

// RevealID returns the ID of the reveal interval for the i-th edge (1-based).
func RevealID(prefix string, i int) string { return prefix + "edge" + strconv.Itoa(i) }

// FadeID returns the ID of the fade interval.
func FadeID(prefix string) string { return prefix + "fade" }

// Loop builds the cyclic reveal timeline for n edges. Target i is the i-th
// edge in input order (zero-based). See the package documentation for the
// shape of the result. Loop(0) returns an empty timeline.
func Loop(n int, opts ...LoopOption) Timeline {
	c := newLoopConfig(opts)
	if n <= 0 {
		return Timeline{}
	}

	fadeID := FadeID(c.prefix)
	last := RevealID(c.prefix, n)
	intervals := make([]Interval, 0, 2*n)

	for i := 1; i <= n; i++ {
		trigger := EndOf(RevealID(c.prefix, i-1))
		if i == 1 {
			trigger = Any(AtZero(), EndOf(fadeID))
		}
		intervals = append(intervals, Interval{
			ID:        RevealID(c.prefix, i),
			Target:    i - 1,
			Trigger:   trigger,
			Duration:  c.reveal,
			Attribute: StrokeWidth,
			From:      0,
			To:        c.width,
		})
	}

	// One fade is keyed to the last reveal; every other edge follows it.
	intervals = append(intervals, Interval{
		ID:        fadeID,
		Target:    n - 1,
		Trigger:   EndOf(last),
		Duration:  c.fade,
		Attribute: StrokeWidth,
		From:      c.fadeFrom,
		To:        0,
	})
	for i := 0; i < n-1; i++ {
		intervals = append(intervals, Interval{
			Target:    i,
			Trigger:   BeginOf(fadeID),
			Duration:  c.fade,
			Attribute: StrokeWidth,
			From:      c.fadeFrom,
			To:        0,
		})
	}

	return Timeline{Intervals: intervals}
}

// CycleLength returns the period of the loop built by [Loop] with the same
// options: n reveals followed by one fade.
func CycleLength(n int, opts ...LoopOption) time.Duration {
	if n <= 0 {
		return 0
	}
	c := newLoopConfig(opts)
	return time.Duration(n)*c.reveal + c.fade
}

func newLoopConfig(opts []LoopOption) loopConfig {
	c := loopConfig{
		reveal:   DefaultReveal,
		fade:     DefaultFade,
		width:    DefaultStrokeWidth,
		fadeFrom: DefaultFadeFrom,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
