package raster

import (
	"context"
	"fmt"
	"math"
	"strings"

	perrors "github.com/stakpak/paks-og/pkg/errors"
	"github.com/stakpak/paks-og/pkg/render"
)

// Width limits.
const (
	DefaultWidth = 1200
	MaxWidth     = 4096
)

// Backend names accepted by [NewBackend].
const (
	BackendNative = "native"
	BackendRSVG   = "rsvg"
)

// Image is an encoded PNG and its pixel dimensions.
type Image struct {
	Data   []byte
	Width  int
	Height int
}

// Len returns the encoded size in bytes.
func (i *Image) Len() int { return len(i.Data) }

// Backend rasterizes vector images.
type Backend interface {
	Name() string
	Rasterize(ctx context.Context, img *render.Image, width int) (*Image, error)
}

// NewBackend returns the backend registered under name. An empty name
// selects the native backend.
func NewBackend(name string) (Backend, error) {
	switch strings.ToLower(name) {
	case "", BackendNative:
		return Native{}, nil
	case BackendRSVG:
		return &RSVG{}, nil
	default:
		return nil, perrors.New(perrors.ErrCodeInvalidConfig, "unknown raster backend %q (want %s or %s)", name, BackendNative, BackendRSVG)
	}
}

// Rasterize encodes img as a PNG width pixels wide using the native backend.
// A width of 0 means [DefaultWidth].
func Rasterize(img *render.Image, width int) (*Image, error) {
	return Native{}.Rasterize(context.Background(), img, width)
}

// targetSize resolves the output size for a requested width.
func targetSize(img *render.Image, width int) (int, int, error) {
	if width == 0 {
		width = DefaultWidth
	}
	if width < 1 || width > MaxWidth {
		return 0, 0, perrors.New(perrors.ErrCodeInvalidInput, "width %d out of range 1..%d", width, MaxWidth)
	}
	return width, ScaledHeight(img.Width, img.Height, width), nil
}

// ScaledHeight returns the height that keeps a w x h canvas's aspect ratio
// at the given width.
func ScaledHeight(w, h, width int) int {
	if w <= 0 {
		return 0
	}
	return max(int(math.Round(float64(h)*float64(width)/float64(w))), 1)
}

func rasterErr(err error, format string, args ...any) error {
	return perrors.Wrap(perrors.ErrCodeRasterFailed, err, "%s", fmt.Sprintf(format, args...))
}
