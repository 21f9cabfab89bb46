package timeline

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"time"
)

// Interval animates one attribute of one target from From to To over
// Duration, starting whenever Trigger fires. Target is the zero-based index
// of the element being animated. ID may be empty for intervals that nothing
// refers to.
type Interval struct {
	ID        string
	Target    int
	Trigger   Trigger
	Duration  time.Duration
	Attribute string
	From, To  float64
}

// Dur formats the duration as a SMIL clock value ("0.2s", "4s").
func (iv Interval) Dur() string {
	return strconv.FormatFloat(iv.Duration.Seconds(), 'f', -1, 64) + "s"
}

// Timeline is an ordered set of intervals.
type Timeline struct {
	Intervals []Interval
}

// Lookup returns the interval with the given ID.
func (tl Timeline) Lookup(id string) (Interval, bool) {
	for _, iv := range tl.Intervals {
		if iv.ID != "" && iv.ID == id {
			return iv, true
		}
	}
	return Interval{}, false
}

// ForTarget returns the intervals animating target, in timeline order.
func (tl Timeline) ForTarget(target int) []Interval {
	var out []Interval
	for _, iv := range tl.Intervals {
		if iv.Target == target {
			out = append(out, iv)
		}
	}
	return out
}

// idPattern matches IDs that survive inside a SMIL begin list.
var idPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Validate checks that IDs are well formed and unique, every trigger reference resolves and
// durations are positive.
func (tl Timeline) Validate() error {
	ids := make(map[string]struct{}, len(tl.Intervals))
	for i, iv := range tl.Intervals {
		if iv.ID == "" {
			continue
		}
		if !idPattern.MatchString(iv.ID) {
			return fmt.Errorf("interval %d: id %q cannot be referenced from a begin value", i, iv.ID)
		}
		if _, dup := ids[iv.ID]; dup {
			return fmt.Errorf("interval %d: duplicate id %q", i, iv.ID)
		}
		ids[iv.ID] = struct{}{}
	}
	for i, iv := range tl.Intervals {
		if iv.Duration <= 0 {
			return fmt.Errorf("interval %d (%s): duration must be positive", i, iv.ID)
		}
		for _, ref := range iv.Trigger.Refs() {
			if _, ok := ids[ref]; !ok {
				return fmt.Errorf("interval %d (%s): trigger references unknown interval %q", i, iv.ID, ref)
			}
		}
	}
	return nil
}

// Occurrence is one activation of an interval on the absolute clock.
type Occurrence struct {
	Index int // position in Timeline.Intervals
	Start time.Duration
}

// Schedule resolves every trigger into absolute start times up to (but not
// including) horizon. Cyclic timelines are unrolled until the horizon is
// reached. The result is sorted by start time, then by interval index.
func (tl Timeline) Schedule(horizon time.Duration) []Occurrence {
	type key struct {
		index int
		start time.Duration
	}
	seen := make(map[key]struct{})
	var queue []Occurrence
	push := func(o Occurrence) {
		if o.Start >= horizon {
			return
		}
		k := key{o.Index, o.Start}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		queue = append(queue, o)
	}

	for i, iv := range tl.Intervals {
		if iv.Trigger.StartsAtZero() {
			push(Occurrence{Index: i})
		}
	}

	var out []Occurrence
	for len(queue) > 0 {
		o := queue[0]
		queue = queue[1:]
		out = append(out, o)

		src := tl.Intervals[o.Index]
		if src.ID == "" {
			continue
		}
		for j, iv := range tl.Intervals {
			for _, t := range fired(iv.Trigger) {
				if t.Ref != src.ID {
					continue
				}
				switch t.Kind {
				case KindBeginOf:
					push(Occurrence{Index: j, Start: o.Start})
				case KindEndOf:
					push(Occurrence{Index: j, Start: o.Start + src.Duration})
				}
			}
		}
	}

	slices.SortFunc(out, func(a, b Occurrence) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	return out
}

// fired flattens a trigger into its reference-bearing alternatives.
func fired(t Trigger) []Trigger {
	switch t.Kind {
	case KindEndOf, KindBeginOf:
		return []Trigger{t}
	case KindAny:
		var out []Trigger
		for _, o := range t.Of {
			out = append(out, fired(o)...)
		}
		return out
	}
	return nil
}
