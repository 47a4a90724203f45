package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/stakpak/paks-og/pkg/card"
	"github.com/stakpak/paks-og/pkg/fonts"
)

// SVG serializes img as a standalone SVG document. Both font weights are
// embedded as base64 @font-face rules so the document renders identically
// without the fonts installed. Output is byte-identical for equal images.
func (img *Image) SVG() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		img.Width, img.Height, img.Width, img.Height)

	family := fonts.DefaultFamily
	if img.Fonts != nil {
		family = img.Fonts.Family
	}

	var defs bytes.Buffer
	gradients := 0
	paintRef := func(p card.Paint) string {
		if p.Gradient == nil {
			return colorAttrs("fill", p.Color)
		}
		id := fmt.Sprintf("g%d", gradients)
		gradients++
		writeGradient(&defs, id, p.Gradient)
		return fmt.Sprintf(`fill="url(#%s)"`, id)
	}

	var body bytes.Buffer
	fmt.Fprintf(&body, `  <rect x="0" y="0" width="%d" height="%d" %s/>`+"\n", img.Width, img.Height, paintRef(img.Background))
	for _, s := range img.Shapes {
		switch s.Kind {
		case ShapeRect:
			fmt.Fprintf(&body, `  <rect x="%s" y="%s" width="%s" height="%s"`, num(s.X), num(s.Y), num(s.W), num(s.H))
			if s.Radius > 0 {
				fmt.Fprintf(&body, ` rx="%s"`, num(s.Radius))
			}
			if s.Fill.IsZero() {
				body.WriteString(` fill="none"`)
			} else {
				body.WriteString(" " + paintRef(s.Fill))
			}
			if s.Stroke != "" && s.StrokeWidth > 0 {
				fmt.Fprintf(&body, ` %s stroke-width="%s"`, colorAttrs("stroke", s.Stroke), num(s.StrokeWidth))
			}
			body.WriteString("/>\n")
		case ShapeText:
			fmt.Fprintf(&body, `  <text x="%s" y="%s" font-family="'%s'" font-size="%s" font-weight="%d" %s xml:space="preserve">%s</text>`+"\n",
				num(s.X), num(s.Y), escapeXML(family), num(s.Size), s.Weight, colorAttrs("fill", s.Color), escapeXML(s.Text))
		}
	}

	buf.WriteString("  <defs>\n")
	if img.Fonts != nil {
		buf.WriteString("    <style>\n")
		for _, w := range []fonts.Weight{fonts.WeightRegular, fonts.WeightBold} {
			fmt.Fprintf(&buf, "      @font-face { font-family: '%s'; font-weight: %d; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
				escapeXML(family), int(w), img.Fonts.Base64(w))
		}
		buf.WriteString("    </style>\n")
	}
	buf.Write(defs.Bytes())
	buf.WriteString("  </defs>\n")
	buf.Write(body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeGradient(buf *bytes.Buffer, id string, g *card.Gradient) {
	fmt.Fprintf(buf, `    <linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
		id, num(g.X0), num(g.Y0), num(g.X1), num(g.Y1))
	for _, st := range g.Stops {
		hex, opacity := svgColor(st.Color)
		fmt.Fprintf(buf, `      <stop offset="%s" stop-color="%s"`, num(st.Offset), hex)
		if opacity < 1 {
			fmt.Fprintf(buf, ` stop-opacity="%s"`, num(opacity))
		}
		buf.WriteString("/>\n")
	}
	buf.WriteString("    </linearGradient>\n")
}

// colorAttrs renders attr="#rrggbb" plus attr-opacity when the color has alpha.
func colorAttrs(attr, c string) string {
	if c == "" {
		return attr + `="none"`
	}
	hex, opacity := svgColor(c)
	if opacity < 1 {
		return fmt.Sprintf(`%s="%s" %s-opacity="%s"`, attr, hex, attr, num(opacity))
	}
	return fmt.Sprintf(`%s="%s"`, attr, hex)
}

// svgColor splits a hex color into #rrggbb and an opacity. Unparseable
// colors are passed through; Validate reports them.
func svgColor(c string) (string, float64) {
	col, err := ParseColor(c)
	if err != nil {
		return c, 1
	}
	return fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B), float64(col.A) / 255
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
