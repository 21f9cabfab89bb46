package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/edgeviz/pkg/errors"
)

// MaxPixels bounds the output image area.
const MaxPixels = 64 << 20

// ToPNG rasterizes svg at the given scale (1.0 is one pixel per user unit).
// Animated documents are frozen first, see [Freeze].
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	img, err := ToImage(svg, scale)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// ToImage rasterizes svg into an RGBA image.
func ToImage(svg []byte, scale float64) (*image.RGBA, error) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", scale)
	}
	frozen, err := Freeze(svg)
	if err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(frozen), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read svg")
	}
	vb := icon.ViewBox
	if vb.W <= 0 || vb.H <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "svg has no usable size")
	}

	fw, fh := math.Ceil(vb.W*scale), math.Ceil(vb.H*scale)
	if math.IsInf(fw, 0) || math.IsInf(fh, 0) || fw*fh > MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput, "image of %gx%g pixels is too large", fw, fh)
	}
	w, h := int(fw), int(fh)
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return img, nil
}

// Freeze returns a static copy of svg showing the final frame of every
// reveal: each animated element takes the "to" value of its first <animate>
// and loses its animation children. A viewBox is added from width and height
// when missing.
func Freeze(svg []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(svg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse svg")
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "not an svg document")
	}

	if root.SelectAttr("viewBox") == nil {
		w, err := length(root.SelectAttrValue("width", ""))
		if err != nil {
			return nil, err
		}
		h, err := length(root.SelectAttrValue("height", ""))
		if err != nil {
			return nil, err
		}
		root.CreateAttr("viewBox", fmt.Sprintf("0 0 %s %s", fmtNum(w), fmtNum(h)))
	}

	freeze(root)

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write svg")
	}
	return out, nil
}

func freeze(el *etree.Element) {
	var first *etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == "animate" {
			if first == nil {
				first = c
			}
			el.RemoveChild(c)
			continue
		}
		freeze(c)
	}
	if first == nil {
		return
	}
	if attr, to := first.SelectAttrValue("attributeName", ""), first.SelectAttrValue("to", ""); attr != "" && to != "" {
		el.CreateAttr(attr, to)
	}
}

func length(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
	if err != nil || v <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidFormat, "svg needs a viewBox or a numeric width and height, got %q", s)
	}
	return v, nil
}

func fmtNum(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
