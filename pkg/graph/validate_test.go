package graph

import (
	"math"
	"testing"

	"github.com/matzehuels/edgeviz/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		g        Graph
		wantCode errors.Code
	}{
		{"Empty", nil, ""},
		{"Valid", Graph{NewEdge("A", "B", 1), Link("B", "C")}, ""},
		{"ZeroWeight", Graph{NewEdge("A", "B", 0)}, ""},
		{"SelfLoop", Graph{NewEdge("A", "A", 1)}, errors.ErrCodeMalformedEdge},
		{"EmptyName", Graph{NewEdge("", "B", 1)}, errors.ErrCodeMalformedEdge},
		{"NegativeWeight", Graph{NewEdge("A", "B", -1)}, errors.ErrCodeMalformedEdge},
		{"NaNWeight", Graph{NewEdge("A", "B", math.NaN())}, errors.ErrCodeMalformedEdge},
		{"InfWeight", Graph{NewEdge("A", "B", math.Inf(1))}, errors.ErrCodeMalformedEdge},
		{"SecondEdgeBad", Graph{NewEdge("A", "B", 1), NewEdge("C", "C", 1)}, errors.ErrCodeMalformedEdge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.g)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestValidatePositions(t *testing.T) {
	tests := []struct {
		name    string
		p       Positions
		wantErr bool
	}{
		{"Empty", nil, false},
		{"Valid", Positions{NodeIdentity{"A"}.At(1, 2)}, false},
		{"EmptyName", Positions{NodeIdentity{""}.At(1, 2)}, true},
		{"NaN", Positions{NodeIdentity{"A"}.At(math.NaN(), 2)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositions(tt.p)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckCoverage(t *testing.T) {
	p := Positions{NodeIdentity{"A"}.At(0, 0), NodeIdentity{"B"}.At(10, 0)}

	if err := CheckCoverage(p, Graph{NewEdge("A", "B", 1)}); err != nil {
		t.Errorf("CheckCoverage() unexpected error: %v", err)
	}

	err := CheckCoverage(p, Graph{NewEdge("A", "B", 1), NewEdge("B", "C", 1)})
	if !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Fatalf("CheckCoverage() error = %v, want %s", err, errors.ErrCodeUnknownNode)
	}
}

func TestPositionsLookupFirstMatch(t *testing.T) {
	p := Positions{
		NodeIdentity{"A"}.At(1, 1),
		NodeIdentity{"B"}.At(2, 2),
		NodeIdentity{"A"}.At(9, 9),
	}

	n, ok := p.Lookup("A")
	if !ok || n.X != 1 {
		t.Errorf("Lookup(A) = %+v, %v; want first entry", n, ok)
	}
	if idx := p.Index(); idx["A"].X != 1 {
		t.Errorf("Index()[A] = %+v, want first entry", idx["A"])
	}
	if _, ok := p.Lookup("Z"); ok {
		t.Error("Lookup(Z) should miss")
	}

	restricted := p.Restrict([]string{"A"})
	if len(restricted) != 2 {
		t.Errorf("Restrict(A) kept %d entries, want 2", len(restricted))
	}
}

func TestMidpoint(t *testing.T) {
	a := NodeIdentity{"A"}.At(10, 20)
	b := NodeIdentity{"B"}.At(30, 25)
	m := Midpoint(a, b)
	if m.X != 20 || m.Y != 22.5 {
		t.Errorf("Midpoint() = %v, want {20 22.5}", m)
	}
	if a.Identity() != (NodeIdentity{Name: "A"}) {
		t.Errorf("Identity() = %v", a.Identity())
	}
}
