package inspect

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/edgeviz/pkg/errors"
	"github.com/matzehuels/edgeviz/pkg/render/timeline"
)

// Report summarizes the animation chain of a drawing.
type Report struct {
	Lines    int           // all lines
	Animated int           // lines carrying animations
	Reveals  int           // intervals named <prefix>edge<i>
	Fades    int           // intervals keyed to the last reveal's end
	Cycle    time.Duration // time from the first reveal to its restart
	Default  time.Duration // cycle the default timing gives for as many reveals
	Prefix   string
	Problems []string
}

// OK reports whether the chain has no problems.
func (r Report) OK() bool { return len(r.Problems) == 0 }

func (r *Report) problem(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// Check parses data and verifies its reveal loop. A drawing without
// animations passes with an empty report. Parse failures are returned as
// errors; chain defects are listed in [Report.Problems].
func Check(data []byte) (Report, error) {
	d, err := Parse(data)
	if err != nil {
		return Report{}, err
	}
	return CheckDrawing(d)
}

// CheckDrawing verifies the reveal loop of an already parsed drawing.
func CheckDrawing(d *Drawing) (Report, error) {
	rep := Report{Lines: len(d.Lines), Animated: len(d.AnimatedLines())}
	tl, err := d.Timeline()
	if err != nil {
		return rep, err
	}
	if len(tl.Intervals) == 0 {
		return rep, nil
	}
	if err := tl.Validate(); err != nil {
		rep.problem("%v", err)
		return rep, nil
	}

	first := tl.Intervals[0]
	prefix, ok := strings.CutSuffix(first.ID, "edge1")
	if !ok {
		rep.problem("first animation has id %q, want a reveal ending in edge1", first.ID)
		return rep, nil
	}
	rep.Prefix = prefix

	var reveals []timeline.Interval
	for i := 1; ; i++ {
		iv, ok := tl.Lookup(timeline.RevealID(prefix, i))
		if !ok {
			break
		}
		reveals = append(reveals, iv)
	}
	rep.Reveals = len(reveals)
	n := len(reveals)

	animated := animatedTargets(tl)
	if n != len(animated) {
		rep.problem("%d reveals for %d animated lines", n, len(animated))
	}
	for i, iv := range reveals {
		if i < len(animated) && iv.Target != animated[i] {
			rep.problem("reveal %s is on line %d, want line %d", iv.ID, iv.Target, animated[i])
		}
		if i > 0 {
			want := timeline.EndOf(reveals[i-1].ID).Begin()
			if got := iv.Trigger.Begin(); got != want {
				rep.problem("reveal %s begins at %q, want %q", iv.ID, got, want)
			}
		}
	}

	last := reveals[n-1].ID
	var fade timeline.Interval
	for _, iv := range tl.Intervals {
		if iv.Trigger.Kind == timeline.KindEndOf && iv.Trigger.Ref == last {
			rep.Fades++
			fade = iv
		}
	}
	if rep.Fades != 1 {
		rep.problem("%d animations keyed to %s.end, want exactly 1", rep.Fades, last)
		return rep, nil
	}

	if !first.Trigger.StartsAtZero() {
		rep.problem("reveal %s does not start at 0s", first.ID)
	}
	if fade.ID == "" || !slices.Contains(first.Trigger.Refs(), fade.ID) {
		rep.problem("reveal %s is not restarted by the fade", first.ID)
		return rep, nil
	}

	rep.Cycle = cycle(tl, fade)
	rep.Default = timeline.CycleLength(rep.Reveals)
	for _, target := range animated {
		if !fadesWith(tl, target, fade) {
			rep.problem("line %d does not fade with %s", target, fade.ID)
		}
	}
	return rep, nil
}

// Err converts the report's problems into a single error.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "animation chain: %s", strings.Join(r.Problems, "; "))
}

func animatedTargets(tl timeline.Timeline) []int {
	var out []int
	for _, iv := range tl.Intervals {
		if !slices.Contains(out, iv.Target) {
			out = append(out, iv.Target)
		}
	}
	slices.Sort(out)
	return out
}

// cycle returns the restart time of the first interval.
func cycle(tl timeline.Timeline, fade timeline.Interval) time.Duration {
	var total time.Duration
	for _, iv := range tl.Intervals {
		if iv.ID != "" && iv.ID != fade.ID {
			total += iv.Duration
		}
	}
	horizon := 2*(total+fade.Duration) + time.Second
	for _, o := range tl.Schedule(horizon) {
		if o.Index == 0 && o.Start > 0 {
			return o.Start
		}
	}
	return 0
}

func fadesWith(tl timeline.Timeline, target int, fade timeline.Interval) bool {
	for _, iv := range tl.ForTarget(target) {
		if iv.ID != "" && iv.ID == fade.ID {
			return true
		}
		if iv.Trigger.Kind == timeline.KindBeginOf && iv.Trigger.Ref == fade.ID {
			return true
		}
	}
	return false
}
