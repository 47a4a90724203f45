package raster

import (
	"golang.org/x/image/font"

	"github.com/stakpak/paks-og/pkg/fonts"
)

type faceKey struct {
	weight fonts.Weight
	size   float64
}

// faceCache builds each (weight, size) face once per rasterization.
type faceCache struct {
	fonts *fonts.FontSet
	faces map[faceKey]font.Face
}

func newFaceCache(fs *fonts.FontSet) *faceCache {
	return &faceCache{fonts: fs, faces: map[faceKey]font.Face{}}
}

func (c *faceCache) get(w fonts.Weight, size float64) (font.Face, error) {
	k := faceKey{w, size}
	if f, ok := c.faces[k]; ok {
		return f, nil
	}
	f, err := c.fonts.Face(w, size)
	if err != nil {
		return nil, err
	}
	c.faces[k] = f
	return f, nil
}

func (c *faceCache) close() {
	for _, f := range c.faces {
		_ = f.Close()
	}
}
