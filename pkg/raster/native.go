package raster

import (
	"bytes"
	"context"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/stakpak/paks-og/pkg/card"
	"github.com/stakpak/paks-og/pkg/fonts"
	"github.com/stakpak/paks-og/pkg/render"
)

// Native draws images in-process with fogleman/gg.
type Native struct{}

// Name implements Backend.
func (Native) Name() string { return BackendNative }

// Rasterize implements Backend.
func (Native) Rasterize(ctx context.Context, img *render.Image, width int) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	w, h, err := targetSize(img, width)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	canvas, err := draw(img)
	if err != nil {
		return nil, err
	}
	if w != img.Width {
		canvas = imaging.Resize(canvas, w, h, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, rasterErr(err, "encode png")
	}
	return &Image{Data: buf.Bytes(), Width: w, Height: h}, nil
}

// draw paints img at its native size.
func draw(img *render.Image) (image.Image, error) {
	dc := gg.NewContext(img.Width, img.Height)

	if !img.Background.IsZero() {
		p, err := pattern(img.Background)
		if err != nil {
			return nil, rasterErr(err, "background")
		}
		dc.SetFillStyle(p)
		dc.DrawRectangle(0, 0, float64(img.Width), float64(img.Height))
		dc.Fill()
	}

	faces := newFaceCache(img.Fonts)
	defer faces.close()

	for _, s := range img.Shapes {
		var err error
		switch s.Kind {
		case render.ShapeRect:
			err = drawRect(dc, s)
		case render.ShapeText:
			err = drawText(dc, faces, s)
		}
		if err != nil {
			return nil, rasterErr(err, "draw %s %q", s.Kind, s.ID)
		}
	}
	return dc.Image(), nil
}

func drawRect(dc *gg.Context, s render.Shape) error {
	path := func() {
		if s.Radius > 0 {
			dc.DrawRoundedRectangle(s.X, s.Y, s.W, s.H, s.Radius)
		} else {
			dc.DrawRectangle(s.X, s.Y, s.W, s.H)
		}
	}

	if !s.Fill.IsZero() {
		p, err := pattern(s.Fill)
		if err != nil {
			return err
		}
		path()
		dc.SetFillStyle(p)
		dc.Fill()
	}
	if s.Stroke != "" && s.StrokeWidth > 0 {
		c, err := render.ParseColor(s.Stroke)
		if err != nil {
			return err
		}
		// Inset by half the stroke so it stays inside the box.
		inset := s.StrokeWidth / 2
		r := max(s.Radius-inset, 0)
		if r > 0 {
			dc.DrawRoundedRectangle(s.X+inset, s.Y+inset, s.W-s.StrokeWidth, s.H-s.StrokeWidth, r)
		} else {
			dc.DrawRectangle(s.X+inset, s.Y+inset, s.W-s.StrokeWidth, s.H-s.StrokeWidth)
		}
		dc.SetColor(c)
		dc.SetLineWidth(s.StrokeWidth)
		dc.Stroke()
	}
	return nil
}

func drawText(dc *gg.Context, faces *faceCache, s render.Shape) error {
	c, err := render.ParseColor(s.Color)
	if err != nil {
		return err
	}
	face, err := faces.get(fonts.Weight(s.Weight), s.Size)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(c)
	dc.DrawString(s.Text, s.X, s.Y)
	return nil
}

// pattern converts a paint into a gg fill pattern.
func pattern(p card.Paint) (gg.Pattern, error) {
	if p.Gradient == nil {
		c, err := render.ParseColor(p.Color)
		if err != nil {
			return nil, err
		}
		return gg.NewSolidPattern(c), nil
	}
	g := gg.NewLinearGradient(p.Gradient.X0, p.Gradient.Y0, p.Gradient.X1, p.Gradient.Y1)
	for _, st := range p.Gradient.Stops {
		c, err := render.ParseColor(st.Color)
		if err != nil {
			return nil, err
		}
		g.AddColorStop(st.Offset, color.Color(c))
	}
	return g, nil
}
