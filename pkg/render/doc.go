// Package render turns a card layout into a vector image.
//
// # Overview
//
// [Render] resolves everything that depends on font metrics: it measures
// and wraps text, clips it to a line budget with an ellipsis, sizes badges
// around their labels and flows row children. The resulting [Image] is a
// flat list of absolutely positioned [Shape]s that any backend can draw
// without knowing about layout.
//
//	layout := card.Build(summary)
//	img, err := render.Render(layout, fontSet)
//	svg := img.SVG()
//
// # Determinism
//
// Render and [Image.SVG] are pure: the same layout and font set produce
// equal images and byte-identical SVG documents.
//
// # Errors
//
// A layout that references a font weight missing from the font set yields an
// INTERNAL_ERROR; other malformed layouts yield RENDER_FAILED. Use
// [Image.Validate] before handing an image to a rasterizer.
package render
