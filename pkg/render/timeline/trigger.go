package timeline

import (
	"fmt"
	"strings"
)

// TriggerKind identifies the kind of event that starts an interval.
type TriggerKind int

const (
	// KindAtZero starts at document time zero.
	KindAtZero TriggerKind = iota
	// KindEndOf starts when the referenced interval ends.
	KindEndOf
	// KindBeginOf starts when the referenced interval begins.
	KindBeginOf
	// KindAny starts whenever any of the nested triggers fires.
	KindAny
)

// Trigger is a start condition. Build one with [AtZero], [EndOf], [BeginOf]
// or [Any].
type Trigger struct {
	Kind TriggerKind
	Ref  string    // interval ID for KindEndOf and KindBeginOf
	Of   []Trigger // alternatives for KindAny
}

// AtZero fires once at time zero.
func AtZero() Trigger { return Trigger{Kind: KindAtZero} }

// EndOf fires every time the interval with the given ID ends.
func EndOf(id string) Trigger { return Trigger{Kind: KindEndOf, Ref: id} }

// BeginOf fires every time the interval with the given ID begins.
func BeginOf(id string) Trigger { return Trigger{Kind: KindBeginOf, Ref: id} }

// Any fires whenever one of ts fires. Nested Any triggers are flattened.
func Any(ts ...Trigger) Trigger {
	var flat []Trigger
	for _, t := range ts {
		if t.Kind == KindAny {
			flat = append(flat, t.Of...)
			continue
		}
		flat = append(flat, t)
	}
	return Trigger{Kind: KindAny, Of: flat}
}

// Refs returns the interval IDs the trigger depends on, in order.
func (t Trigger) Refs() []string {
	switch t.Kind {
	case KindEndOf, KindBeginOf:
		return []string{t.Ref}
	case KindAny:
		var refs []string
		for _, o := range t.Of {
			refs = append(refs, o.Refs()...)
		}
		return refs
	}
	return nil
}

// StartsAtZero reports whether the trigger fires at time zero.
func (t Trigger) StartsAtZero() bool {
	switch t.Kind {
	case KindAtZero:
		return true
	case KindAny:
		for _, o := range t.Of {
			if o.StartsAtZero() {
				return true
			}
		}
	}
	return false
}

// Begin compiles the trigger to a SMIL begin value such as "0s;fade.end".
func (t Trigger) Begin() string {
	switch t.Kind {
	case KindAtZero:
		return "0s"
	case KindEndOf:
		return t.Ref + ".end"
	case KindBeginOf:
		return t.Ref + ".begin"
	case KindAny:
		parts := make([]string, len(t.Of))
		for i, o := range t.Of {
			parts[i] = o.Begin()
		}
		return strings.Join(parts, ";")
	}
	return ""
}

// String returns the SMIL form, for logs and test failures.
func (t Trigger) String() string { return t.Begin() }

// ParseBegin parses a SMIL begin value produced by [Trigger.Begin]. Offsets
// ("x.end+1s"), wallclock values and event names other than begin/end are
// rejected.
func ParseBegin(s string) (Trigger, error) {
	parts := strings.Split(s, ";")
	ts := make([]Trigger, 0, len(parts))
	for _, p := range parts {
		t, err := parseOne(strings.TrimSpace(p))
		if err != nil {
			return Trigger{}, err
		}
		ts = append(ts, t)
	}
	if len(ts) == 1 {
		return ts[0], nil
	}
	return Any(ts...), nil
}

func parseOne(s string) (Trigger, error) {
	switch {
	case s == "0s" || s == "0":
		return AtZero(), nil
	case strings.HasSuffix(s, ".end"):
		if id := strings.TrimSuffix(s, ".end"); validRef(id) {
			return EndOf(id), nil
		}
	case strings.HasSuffix(s, ".begin"):
		if id := strings.TrimSuffix(s, ".begin"); validRef(id) {
			return BeginOf(id), nil
		}
	}
	return Trigger{}, fmt.Errorf("unsupported begin value %q", s)
}

func validRef(id string) bool {
	return id != "" && !strings.ContainsAny(id, " +;")
}
