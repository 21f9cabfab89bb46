package raster

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/edgeviz/pkg/errors"
	"github.com/matzehuels/edgeviz/pkg/render/inspect"
)

const animated = `<svg width="100px" height="50px" version="1.1" xmlns="http://www.w3.org/2000/svg">
<rect x="0" width="100" height="50" fill="cornsilk" rx="0" />
<line x1="10" y1="25" x2="90" y2="25" stroke="blue" stroke-width="0">
	<animate id="edge1" attributeName="stroke-width" from="0" to="5" dur="0.2s" begin="0s;fade.end" fill="freeze" />
	<animate id="fade" attributeName="stroke-width" from="10" to="0" dur="4s" begin="edge1.end" fill="freeze" />
</line>
<circle cx="10" cy="25" r="5" fill="red" />
<text x="17" y="25" fill="red">A</text>
</svg>
`

func TestFreeze(t *testing.T) {
	out, err := Freeze([]byte(animated))
	if err != nil {
		t.Fatalf("Freeze() error: %v", err)
	}
	if strings.Contains(string(out), "<animate") {
		t.Errorf("frozen svg still animates:\n%s", out)
	}
	if !strings.Contains(string(out), `viewBox="0 0 100 50"`) {
		t.Errorf("viewBox not added:\n%s", out)
	}

	d, err := inspect.Parse(out)
	if err != nil {
		t.Fatalf("inspect.Parse() error: %v", err)
	}
	if len(d.Lines) != 1 || d.Lines[0].StrokeWidth != 5 {
		t.Errorf("lines = %+v, want one line of width 5", d.Lines)
	}
	if len(d.Texts) != 1 {
		t.Errorf("texts = %d, want labels kept", len(d.Texts))
	}
}

func TestFreezeKeepsViewBox(t *testing.T) {
	in := `<svg viewBox="0 0 10 10" xmlns="http://www.w3.org/2000/svg"><line x1="0" y1="0" x2="1" y2="1" stroke="blue" stroke-width="5" /></svg>`
	out, err := Freeze([]byte(in))
	if err != nil {
		t.Fatalf("Freeze() error: %v", err)
	}
	if strings.Count(string(out), "viewBox") != 1 {
		t.Errorf("viewBox duplicated:\n%s", out)
	}
}

func TestFreezeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not xml", "<svg"},
		{"not svg", "<g></g>"},
		{"no size", `<svg xmlns="http://www.w3.org/2000/svg"></svg>`},
		{"bad size", `<svg width="wide" height="10" xmlns="http://www.w3.org/2000/svg"></svg>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Freeze([]byte(tt.in))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("Freeze() error = %v, want %s", err, errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestToPNG(t *testing.T) {
	data, err := ToPNG([]byte(animated), 2)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("size = %dx%d, want 200x100", b.Dx(), b.Dy())
	}

	// The frozen line crosses the middle of the canvas in blue.
	r, g, b, _ := img.At(100, 50).RGBA()
	if b>>8 < 200 || r>>8 > 80 || g>>8 > 80 {
		t.Errorf("pixel at line = (%d, %d, %d), want blue", r>>8, g>>8, b>>8)
	}
}

func TestToPNGScale(t *testing.T) {
	for _, scale := range []float64{0, -1} {
		if _, err := ToPNG([]byte(animated), scale); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ToPNG(scale=%v) error = %v, want %s", scale, err, errors.ErrCodeInvalidInput)
		}
	}
}

func TestToPNGTooLarge(t *testing.T) {
	tests := []struct {
		name  string
		size  string
		scale float64
	}{
		{"huge width", `width="1e19px" height="446px"`, 2},
		{"huge both", `width="1e30px" height="1e30px"`, 1},
		{"area over limit", `width="10000px" height="10000px"`, 1},
		{"scale pushes over", `width="700px" height="446px"`, 1e6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := `<svg ` + tt.size + ` version="1.1" xmlns="http://www.w3.org/2000/svg">` +
				`<line x1="0" y1="0" x2="10" y2="10" stroke="blue" stroke-width="5" /></svg>`
			_, err := ToPNG([]byte(svg), tt.scale)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ToPNG() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}
