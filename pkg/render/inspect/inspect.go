package inspect

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/matzehuels/edgeviz/pkg/errors"
	"github.com/matzehuels/edgeviz/pkg/render/timeline"
)

// Circle is a rendered node marker.
type Circle struct {
	CX, CY, R float64
	Fill      string
}

// Text is a rendered label.
type Text struct {
	X, Y   float64
	Fill   string
	Anchor string
	Value  string
}

// Line is a rendered edge. Line numbers are zero-based in document order.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	StrokeWidth    float64
	Animations     []Animation
}

// Animated reports whether the line carries <animate> children.
func (l Line) Animated() bool { return len(l.Animations) > 0 }

// Animation is a parsed <animate> element.
type Animation struct {
	ID        string
	Attribute string
	From, To  float64
	Dur       time.Duration
	Begin     string
}

// Drawing is the shape content of an SVG document.
type Drawing struct {
	Width, Height string
	Circles       []Circle
	Texts         []Text
	Lines         []Line
}

// AnimatedLines returns the lines that carry animations, in document order.
func (d *Drawing) AnimatedLines() []Line {
	var out []Line
	for _, l := range d.Lines {
		if l.Animated() {
			out = append(out, l)
		}
	}
	return out
}

// Animations returns every <animate> element in document order.
func (d *Drawing) Animations() []Animation {
	var out []Animation
	for _, l := range d.Lines {
		out = append(out, l.Animations...)
	}
	return out
}

// Parse reads an SVG document or fragment. A fragment (several top-level
// elements) is wrapped before parsing.
func Parse(data []byte) (*Drawing, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil || len(doc.ChildElements()) != 1 {
		doc = etree.NewDocument()
		wrapped := append(append([]byte("<g>"), data...), "</g>"...)
		if err := doc.ReadFromBytes(wrapped); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse svg")
		}
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "parse svg: empty document")
	}

	d := &Drawing{
		Width:  root.SelectAttrValue("width", ""),
		Height: root.SelectAttrValue("height", ""),
	}
	var err error
	walk(root, func(el *etree.Element) {
		if err != nil {
			return
		}
		err = d.add(el)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func walk(el *etree.Element, fn func(*etree.Element)) {
	fn(el)
	for _, c := range el.ChildElements() {
		walk(c, fn)
	}
}

func (d *Drawing) add(el *etree.Element) error {
	a := attrs{el: el}
	switch el.Tag {
	case "circle":
		d.Circles = append(d.Circles, Circle{
			CX: a.num("cx"), CY: a.num("cy"), R: a.num("r"), Fill: a.str("fill"),
		})
	case "text":
		d.Texts = append(d.Texts, Text{
			X: a.num("x"), Y: a.num("y"), Fill: a.str("fill"),
			Anchor: a.str("text-anchor"), Value: el.Text(),
		})
	case "line":
		l := Line{
			X1: a.num("x1"), Y1: a.num("y1"), X2: a.num("x2"), Y2: a.num("y2"),
			Stroke: a.str("stroke"), StrokeWidth: a.num("stroke-width"),
		}
		for _, c := range el.ChildElements() {
			if c.Tag != "animate" {
				continue
			}
			anim, err := parseAnimate(c)
			if err != nil {
				return fmt.Errorf("line %d: %w", len(d.Lines), err)
			}
			l.Animations = append(l.Animations, anim)
		}
		d.Lines = append(d.Lines, l)
	}
	return a.err
}

func parseAnimate(el *etree.Element) (Animation, error) {
	a := attrs{el: el}
	anim := Animation{
		ID:        a.str("id"),
		Attribute: a.str("attributeName"),
		From:      a.num("from"),
		To:        a.num("to"),
		Begin:     a.str("begin"),
	}
	if a.err != nil {
		return Animation{}, a.err
	}
	dur, err := parseClock(a.str("dur"))
	if err != nil {
		return Animation{}, err
	}
	anim.Dur = dur
	return anim, nil
}

// parseClock parses the SMIL clock values the renderer emits ("0.2s", "4s",
// "150ms").
func parseClock(s string) (time.Duration, error) {
	if s == "" {
		return 0, errors.New(errors.ErrCodeInvalidFormat, "animate without dur")
	}
	if !strings.HasSuffix(s, "s") {
		s += "s"
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid dur %q", s)
	}
	return d, nil
}

// attrs reads attributes and keeps the first conversion error.
type attrs struct {
	el  *etree.Element
	err error
}

func (a *attrs) str(key string) string { return a.el.SelectAttrValue(key, "") }

func (a *attrs) num(key string) float64 {
	s := strings.TrimSuffix(a.str(key), "px")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && a.err == nil {
		a.err = errors.New(errors.ErrCodeInvalidFormat, "<%s> %s=%q is not a number", a.el.Tag, key, s)
	}
	return v
}

// Timeline rebuilds the animation timeline. Interval targets are indexes
// into [Drawing.Lines].
func (d *Drawing) Timeline() (timeline.Timeline, error) {
	var tl timeline.Timeline
	for i, l := range d.Lines {
		for _, anim := range l.Animations {
			trig, err := timeline.ParseBegin(anim.Begin)
			if err != nil {
				return timeline.Timeline{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", i)
			}
			tl.Intervals = append(tl.Intervals, timeline.Interval{
				ID:        anim.ID,
				Target:    i,
				Trigger:   trig,
				Duration:  anim.Dur,
				Attribute: anim.Attribute,
				From:      anim.From,
				To:        anim.To,
			})
		}
	}
	return tl, nil
}
