// Package fonts resolves, parses and caches the two font weights used on
// social cards.
//
// A [FontSet] holds the raw bytes of a regular and a bold font file for one
// family. A [Provider] produces it lazily from an ordered list of [Source]s
// (local directory first, then the remote CDN) and keeps it in a [Cache] for
// the rest of the process lifetime.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// DefaultFamily is the font family cards are set in.
const DefaultFamily = "Inter"

// Weight is a CSS-style font weight.
type Weight int

// The two weights every FontSet carries.
const (
	WeightRegular Weight = 400
	WeightBold    Weight = 700
)

func (w Weight) String() string {
	switch w {
	case WeightRegular:
		return "Regular"
	case WeightBold:
		return "Bold"
	default:
		return fmt.Sprintf("Weight(%d)", int(w))
	}
}

// FontSet is an immutable pair of font files. Parsed fonts and base64
// encodings are computed once and shared.
type FontSet struct {
	Family  string
	Regular []byte
	Bold    []byte

	// Source names where the bytes came from (local, remote, embedded).
	Source string

	regular *opentype.Font
	bold    *opentype.Font

	b64Once [2]sync.Once
	b64     [2]string
}

// NewFontSet parses both files and returns a FontSet. Bytes that do not parse
// as TrueType/OpenType are rejected, so an HTML error page served in place of
// a font never reaches the cache.
func NewFontSet(family string, regular, bold []byte) (*FontSet, error) {
	if len(regular) == 0 || len(bold) == 0 {
		return nil, fmt.Errorf("font set %q: empty font data", family)
	}
	r, err := opentype.Parse(regular)
	if err != nil {
		return nil, fmt.Errorf("parse %s-Regular: %w", family, err)
	}
	b, err := opentype.Parse(bold)
	if err != nil {
		return nil, fmt.Errorf("parse %s-Bold: %w", family, err)
	}
	return &FontSet{
		Family:  family,
		Regular: regular,
		Bold:    bold,
		regular: r,
		bold:    b,
	}, nil
}

// Has reports whether the set provides w.
func (fs *FontSet) Has(w Weight) bool {
	return w == WeightRegular || w == WeightBold
}

// Bytes returns the raw file for w.
func (fs *FontSet) Bytes(w Weight) ([]byte, bool) {
	switch w {
	case WeightRegular:
		return fs.Regular, true
	case WeightBold:
		return fs.Bold, true
	default:
		return nil, false
	}
}

// Font returns the parsed font for w. The result is safe for concurrent use;
// faces built from it are not.
func (fs *FontSet) Font(w Weight) (*opentype.Font, bool) {
	switch w {
	case WeightRegular:
		return fs.regular, fs.regular != nil
	case WeightBold:
		return fs.bold, fs.bold != nil
	default:
		return nil, false
	}
}

// Face builds a new face for w at size pixels (72 DPI). Callers own the face
// and must not share it between goroutines.
func (fs *FontSet) Face(w Weight, size float64) (font.Face, error) {
	f, ok := fs.Font(w)
	if !ok {
		return nil, fmt.Errorf("font set %q has no %s weight", fs.Family, w)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Base64 returns the standard base64 encoding of the file for w, computed on
// first access.
func (fs *FontSet) Base64(w Weight) string {
	i := 0
	if w == WeightBold {
		i = 1
	}
	fs.b64Once[i].Do(func() {
		data, _ := fs.Bytes(w)
		fs.b64[i] = base64.StdEncoding.EncodeToString(data)
	})
	return fs.b64[i]
}

// FileName returns the conventional file name for a family and weight,
// e.g. "Inter-Bold.ttf".
func FileName(family string, w Weight) string {
	return family + "-" + w.String() + ".ttf"
}
