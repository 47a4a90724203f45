// Package card builds the declarative layout of a package social card.
//
// A [Layout] is plain data: a canvas size, a background and a tree of
// [Node]s. It carries no behavior and serializes to JSON, so renderers can
// be swapped without touching the layout logic. [Build] is the only
// producer; the render package is the consumer.
//
// # Coordinates
//
// The canvas is 1200×630 logical pixels with the origin at the top left.
// Top-level nodes are absolutely positioned by X and Y. Children of a row
// ignore their own X and Y: they flow left to right from the row's origin,
// separated by Gap, and are vertically centered in the row's height.
package card

// Canvas size in logical pixels.
const (
	Width  = 1200
	Height = 630
)

// Kind identifies a node variant.
type Kind string

// Node kinds.
const (
	// KindRect is a filled, optionally rounded and stroked rectangle.
	KindRect Kind = "rect"

	// KindText is a block of text wrapped to MaxWidth and clipped to MaxLines.
	KindText Kind = "text"

	// KindBadge is a rounded rectangle sized to hug its single line of text,
	// unless W or H fix a dimension.
	KindBadge Kind = "badge"

	// KindRow lays out its children horizontally.
	KindRow Kind = "row"
)

// Text alignment relative to X.
const (
	AlignLeft  = "left"
	AlignRight = "right"
)

// Weights used by card text. Every font set provides both.
const (
	WeightRegular = 400
	WeightBold    = 700
)

// Layout is a complete card description.
type Layout struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Background Paint  `json:"background"`
	Nodes      []Node `json:"nodes"`
}

// Paint is either a solid color or a linear gradient. Colors are hex strings
// (#rgb, #rrggbb or #rrggbbaa).
type Paint struct {
	Color    string    `json:"color,omitempty"`
	Gradient *Gradient `json:"gradient,omitempty"`
}

// Gradient is a linear gradient between two points in the coordinate space
// of the node it paints (canvas space for the background).
type Gradient struct {
	X0    float64 `json:"x0"`
	Y0    float64 `json:"y0"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	Stops []Stop  `json:"stops"`
}

// Stop is a gradient color stop with an offset in [0, 1].
type Stop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// IsZero reports whether the paint draws nothing.
func (p Paint) IsZero() bool {
	return p.Color == "" && p.Gradient == nil
}

// Solid returns a solid paint.
func Solid(color string) Paint { return Paint{Color: color} }

// Node is one element of the layout tree. Which fields apply depends on Kind.
type Node struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id,omitempty"`

	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	W float64 `json:"w,omitempty"`
	H float64 `json:"h,omitempty"`

	// Box styling for rect and badge.
	Radius      float64 `json:"radius,omitempty"`
	Fill        Paint   `json:"fill,omitzero"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`

	// Text content and styling for text and badge.
	Text       string  `json:"text,omitempty"`
	Size       float64 `json:"size,omitempty"`
	Weight     int     `json:"weight,omitempty"`
	Color      string  `json:"color,omitempty"`
	LineHeight float64 `json:"line_height,omitempty"`
	MaxWidth   float64 `json:"max_width,omitempty"`
	MaxLines   int     `json:"max_lines,omitempty"`
	Align      string  `json:"align,omitempty"`

	// Badge padding around its text.
	PadX float64 `json:"pad_x,omitempty"`
	PadY float64 `json:"pad_y,omitempty"`

	// Row spacing and content.
	Gap      float64 `json:"gap,omitempty"`
	Children []Node  `json:"children,omitempty"`
}

// Find returns the first node with the given ID, searching depth first.
func (l Layout) Find(id string) (Node, bool) {
	return find(l.Nodes, id)
}

func find(nodes []Node, id string) (Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
		if c, ok := find(n.Children, id); ok {
			return c, true
		}
	}
	return Node{}, false
}

// Walk calls fn for every node, parents before children.
func (l Layout) Walk(fn func(Node)) {
	walk(l.Nodes, fn)
}

func walk(nodes []Node, fn func(Node)) {
	for _, n := range nodes {
		fn(n)
		walk(n.Children, fn)
	}
}
