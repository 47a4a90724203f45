// Package raster turns a [render.Image] into PNG bytes.
//
// The [Native] backend draws the image with fogleman/gg at its native size
// and scales the result with disintegration/imaging when a different width
// is requested, so the aspect ratio is always preserved. The [RSVG] backend
// shells out to rsvg-convert using the image's SVG serialization; it is
// useful for comparing output against a browser-grade SVG renderer.
//
// Rasterization is never retried: a malformed image fails only the request
// that produced it.
package raster
