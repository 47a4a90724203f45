package render

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/stakpak/paks-og/pkg/card"
	perrors "github.com/stakpak/paks-og/pkg/errors"
	"github.com/stakpak/paks-og/pkg/fonts"
)

const (
	defaultLineHeight = 1.2
	ellipsis          = "..."
)

// Render resolves a card layout into an Image: text is measured with fs,
// wrapped and clipped, badges are sized around their text, and rows are
// flowed. The result is a pure function of its inputs.
//
// A text node whose weight is missing from fs is a programming error and is
// reported with code INTERNAL_ERROR.
func Render(l card.Layout, fs *fonts.FontSet) (*Image, error) {
	if fs == nil {
		return nil, perrors.New(perrors.ErrCodeInternal, "render called without fonts")
	}
	if l.Width <= 0 || l.Height <= 0 {
		return nil, perrors.New(perrors.ErrCodeRenderFailed, "invalid canvas size %dx%d", l.Width, l.Height)
	}

	r := &renderer{fonts: fs, faces: map[faceKey]font.Face{}}
	defer r.close()

	for _, n := range l.Nodes {
		if err := r.node(n, n.X, n.Y); err != nil {
			return nil, err
		}
	}

	img := &Image{
		Width:      l.Width,
		Height:     l.Height,
		Background: l.Background,
		Shapes:     r.shapes,
		Fonts:      fs,
	}
	return img, nil
}

type faceKey struct {
	weight int
	size   float64
}

type renderer struct {
	fonts  *fonts.FontSet
	faces  map[faceKey]font.Face
	shapes []Shape
}

func (r *renderer) close() {
	for _, f := range r.faces {
		_ = f.Close()
	}
}

func (r *renderer) face(weight int, size float64) (font.Face, error) {
	k := faceKey{weight, size}
	if f, ok := r.faces[k]; ok {
		return f, nil
	}
	w := fonts.Weight(weight)
	if !r.fonts.Has(w) {
		return nil, perrors.New(perrors.ErrCodeInternal, "layout uses font weight %d not in font set %q", weight, r.fonts.Family)
	}
	if size <= 0 {
		return nil, perrors.New(perrors.ErrCodeRenderFailed, "non-positive font size %g", size)
	}
	f, err := r.fonts.Face(w, size)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "build face")
	}
	r.faces[k] = f
	return f, nil
}

// node emits shapes for n with its top-left corner at (x, y).
func (r *renderer) node(n card.Node, x, y float64) error {
	switch n.Kind {
	case card.KindRect:
		r.shapes = append(r.shapes, Shape{
			Kind: ShapeRect, ID: n.ID,
			X: x, Y: y, W: n.W, H: n.H,
			Radius: n.Radius, Fill: offsetPaint(n.Fill, x, y),
			Stroke: n.Stroke, StrokeWidth: n.StrokeWidth,
		})
		return nil
	case card.KindText:
		return r.text(n, x, y)
	case card.KindBadge:
		return r.badge(n, x, y)
	case card.KindRow:
		return r.row(n, x, y)
	default:
		return perrors.New(perrors.ErrCodeRenderFailed, "unknown node kind %q (%s)", n.Kind, n.ID)
	}
}

type textBlock struct {
	face    font.Face
	lines   []string
	widths  []float64
	ascent  float64
	descent float64
	lineH   float64
}

func (b textBlock) width() float64 {
	w := 0.0
	for _, lw := range b.widths {
		w = max(w, lw)
	}
	return w
}

func (b textBlock) height() float64 {
	if len(b.lines) == 0 {
		return 0
	}
	return float64(len(b.lines)-1)*b.lineH + b.ascent + b.descent
}

func (r *renderer) layoutText(n card.Node) (textBlock, error) {
	face, err := r.face(n.Weight, n.Size)
	if err != nil {
		return textBlock{}, err
	}
	lh := n.LineHeight
	if lh <= 0 {
		lh = defaultLineHeight
	}
	m := face.Metrics()
	b := textBlock{
		face:    face,
		ascent:  toFloat(m.Ascent),
		descent: toFloat(m.Descent),
		lineH:   n.Size * lh,
	}
	b.lines = wrap(face, n.Text, n.MaxWidth, n.MaxLines)
	for _, l := range b.lines {
		b.widths = append(b.widths, measure(face, l))
	}
	return b, nil
}

func (r *renderer) text(n card.Node, x, y float64) error {
	b, err := r.layoutText(n)
	if err != nil {
		return err
	}
	r.emitLines(n, b, x, y)
	return nil
}

func (r *renderer) emitLines(n card.Node, b textBlock, x, y float64) {
	for i, line := range b.lines {
		lx := x
		if n.Align == card.AlignRight {
			lx = x - b.widths[i]
		}
		id := n.ID
		if len(b.lines) > 1 {
			id = fmt.Sprintf("%s-%d", n.ID, i)
		}
		r.shapes = append(r.shapes, Shape{
			Kind: ShapeText, ID: id,
			X: lx, Y: y + b.ascent + float64(i)*b.lineH, W: b.widths[i],
			Text: line, Size: n.Size, Weight: n.Weight, Color: n.Color,
		})
	}
}

// badgeSize returns the box a badge occupies: its fixed W/H when set,
// otherwise its single line of text plus padding.
func (r *renderer) badgeSize(n card.Node) (textBlock, float64, float64, error) {
	single := n
	single.MaxWidth, single.MaxLines = 0, 1
	b, err := r.layoutText(single)
	if err != nil {
		return b, 0, 0, err
	}
	w, h := n.W, n.H
	if w <= 0 {
		w = b.width() + 2*n.PadX
	}
	if h <= 0 {
		h = b.ascent + b.descent + 2*n.PadY
	}
	return b, w, h, nil
}

func (r *renderer) badge(n card.Node, x, y float64) error {
	b, w, h, err := r.badgeSize(n)
	if err != nil {
		return err
	}
	r.shapes = append(r.shapes, Shape{
		Kind: ShapeRect, ID: n.ID,
		X: x, Y: y, W: w, H: h,
		Radius: min(n.Radius, h/2), Fill: offsetPaint(n.Fill, x, y),
		Stroke: n.Stroke, StrokeWidth: n.StrokeWidth,
	})

	tx := x + (w-b.width())/2
	ty := y + (h-(b.ascent+b.descent))/2
	label := n
	label.ID = n.ID + "-label"
	label.Align = card.AlignLeft
	r.emitLines(label, b, tx, ty)
	return nil
}

// size returns the box a row child occupies.
func (r *renderer) size(n card.Node) (float64, float64, error) {
	switch n.Kind {
	case card.KindRect:
		return n.W, n.H, nil
	case card.KindText:
		b, err := r.layoutText(n)
		if err != nil {
			return 0, 0, err
		}
		return b.width(), b.height(), nil
	case card.KindBadge:
		_, w, h, err := r.badgeSize(n)
		return w, h, err
	default:
		return 0, 0, perrors.New(perrors.ErrCodeRenderFailed, "node kind %q cannot be placed in a row (%s)", n.Kind, n.ID)
	}
}

func (r *renderer) row(n card.Node, x, y float64) error {
	type box struct{ w, h float64 }
	boxes := make([]box, len(n.Children))
	rowH := n.H
	for i, c := range n.Children {
		w, h, err := r.size(c)
		if err != nil {
			return err
		}
		boxes[i] = box{w, h}
		if n.H <= 0 {
			rowH = max(rowH, h)
		}
	}

	cx := x
	for i, c := range n.Children {
		top := y + (rowH-boxes[i].h)/2
		if err := r.node(c, cx, top); err != nil {
			return err
		}
		cx += boxes[i].w + n.Gap
	}
	return nil
}

// offsetPaint moves a node-relative gradient into canvas coordinates.
func offsetPaint(p card.Paint, x, y float64) card.Paint {
	if p.Gradient == nil {
		return p
	}
	g := *p.Gradient
	g.X0 += x
	g.X1 += x
	g.Y0 += y
	g.Y1 += y
	g.Stops = append([]card.Stop(nil), g.Stops...)
	return card.Paint{Color: p.Color, Gradient: &g}
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func measure(face font.Face, s string) float64 {
	return toFloat(font.MeasureString(face, s))
}

// wrap breaks text into lines no wider than maxWidth (no limit when
// maxWidth <= 0). Words wider than a line are split between runes. When
// maxLines > 0 and the text needs more, the last kept line is ellipsized.
func wrap(face font.Face, text string, maxWidth float64, maxLines int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if maxWidth <= 0 {
		line := strings.Join(words, " ")
		return []string{line}
	}

	var lines []string
	cur := ""
	for _, word := range words {
		candidate := word
		if cur != "" {
			candidate = cur + " " + word
		}
		if measure(face, candidate) <= maxWidth {
			cur = candidate
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
		for measure(face, word) > maxWidth {
			head, rest := splitToWidth(face, word, maxWidth)
			lines = append(lines, head)
			word = rest
		}
		cur = word
	}
	if cur != "" {
		lines = append(lines, cur)
	}

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = ellipsize(face, lines[maxLines-1], maxWidth)
	}
	return lines
}

// splitToWidth returns the longest rune prefix of s that fits in maxWidth
// (at least one rune) and the remainder.
func splitToWidth(face font.Face, s string, maxWidth float64) (string, string) {
	runes := []rune(s)
	n := 1
	for n < len(runes) && measure(face, string(runes[:n+1])) <= maxWidth {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

// ellipsize appends an ellipsis to a truncated line, dropping runes until
// it fits.
func ellipsize(face font.Face, line string, maxWidth float64) string {
	runes := []rune(line)
	for len(runes) > 0 {
		s := strings.TrimRight(string(runes), " ") + ellipsis
		if measure(face, s) <= maxWidth {
			return s
		}
		runes = runes[:len(runes)-1]
	}
	return ellipsis
}
