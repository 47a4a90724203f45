package render

import (
	"fmt"

	"github.com/stakpak/paks-og/pkg/card"
	perrors "github.com/stakpak/paks-og/pkg/errors"
	"github.com/stakpak/paks-og/pkg/fonts"
)

// ShapeKind identifies a positioned primitive.
type ShapeKind string

// Shape kinds.
const (
	ShapeRect ShapeKind = "rect"
	ShapeText ShapeKind = "text"
)

// Shape is an absolutely positioned primitive.
//
// For rects, X/Y/W/H is the box. For text, X/Y is the start of the
// baseline and W is the advance width of Text; text never wraps.
// Gradients in Fill use canvas coordinates.
type Shape struct {
	Kind ShapeKind `json:"kind"`
	ID   string    `json:"id,omitempty"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w,omitempty"`
	H float64 `json:"h,omitempty"`

	Radius      float64    `json:"radius,omitempty"`
	Fill        card.Paint `json:"fill,omitzero"`
	Stroke      string     `json:"stroke,omitempty"`
	StrokeWidth float64    `json:"stroke_width,omitempty"`

	Text   string  `json:"text,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Weight int     `json:"weight,omitempty"`
	Color  string  `json:"color,omitempty"`
}

// Image is the resolution-independent rendering of a card: a background and
// a list of shapes drawn in order, plus the fonts the text shapes use.
type Image struct {
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Background card.Paint `json:"background"`
	Shapes     []Shape    `json:"shapes"`

	Fonts *fonts.FontSet `json:"-"`
}

// Texts returns the content of every text shape in drawing order.
func (img *Image) Texts() []string {
	var out []string
	for _, s := range img.Shapes {
		if s.Kind == ShapeText {
			out = append(out, s.Text)
		}
	}
	return out
}

// Validate checks that img can be rasterized: a positive size, known shape
// kinds, parseable colors and fonts for every text weight.
func (img *Image) Validate() error {
	if img == nil {
		return perrors.New(perrors.ErrCodeRenderFailed, "nil image")
	}
	if img.Width <= 0 || img.Height <= 0 {
		return perrors.New(perrors.ErrCodeRenderFailed, "invalid canvas size %dx%d", img.Width, img.Height)
	}
	if err := validatePaint(img.Background); err != nil {
		return perrors.Wrap(perrors.ErrCodeRenderFailed, err, "background")
	}
	for i, s := range img.Shapes {
		if err := validateShape(img, s); err != nil {
			return perrors.Wrap(perrors.ErrCodeRenderFailed, err, "shape %d (%s)", i, s.ID)
		}
	}
	return nil
}

func validateShape(img *Image, s Shape) error {
	switch s.Kind {
	case ShapeRect:
		if s.W < 0 || s.H < 0 {
			return fmt.Errorf("negative size %gx%g", s.W, s.H)
		}
		if err := validatePaint(s.Fill); err != nil {
			return err
		}
		if s.Stroke != "" {
			if _, err := ParseColor(s.Stroke); err != nil {
				return err
			}
		}
	case ShapeText:
		if s.Size <= 0 {
			return fmt.Errorf("non-positive font size %g", s.Size)
		}
		if _, err := ParseColor(s.Color); err != nil {
			return err
		}
		if img.Fonts == nil || !img.Fonts.Has(fonts.Weight(s.Weight)) {
			return fmt.Errorf("no font for weight %d", s.Weight)
		}
	default:
		return fmt.Errorf("unknown shape kind %q", s.Kind)
	}
	return nil
}

func validatePaint(p card.Paint) error {
	if p.Gradient == nil {
		if p.Color == "" {
			return nil
		}
		_, err := ParseColor(p.Color)
		return err
	}
	if len(p.Gradient.Stops) == 0 {
		return fmt.Errorf("gradient without stops")
	}
	for _, st := range p.Gradient.Stops {
		if _, err := ParseColor(st.Color); err != nil {
			return err
		}
	}
	return nil
}
