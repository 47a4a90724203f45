package raster

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	perrors "github.com/stakpak/paks-og/pkg/errors"
	"github.com/stakpak/paks-og/pkg/render"
)

// ErrRSVGMissing is returned when rsvg-convert is not on PATH.
var ErrRSVGMissing = errors.New("rsvg-convert not found; install librsvg (brew install librsvg, apt install librsvg2-bin)")

// RSVG rasterizes the SVG serialization of an image with rsvg-convert.
type RSVG struct {
	// Path is the rsvg-convert binary. Empty means look it up on PATH.
	Path string
}

// Name implements Backend.
func (*RSVG) Name() string { return BackendRSVG }

// Available reports whether the rsvg-convert binary can be found.
func (r *RSVG) Available() bool {
	_, err := r.binary()
	return err == nil
}

func (r *RSVG) binary() (string, error) {
	if r.Path != "" {
		return r.Path, nil
	}
	p, err := exec.LookPath("rsvg-convert")
	if err != nil {
		return "", ErrRSVGMissing
	}
	return p, nil
}

// Rasterize implements Backend.
func (r *RSVG) Rasterize(ctx context.Context, img *render.Image, width int) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	w, h, err := targetSize(img, width)
	if err != nil {
		return nil, err
	}
	bin, err := r.binary()
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeRasterFailed, err, "rsvg backend")
	}

	cmd := exec.CommandContext(ctx, bin,
		"-f", "png",
		"-w", strconv.Itoa(w),
		"-h", strconv.Itoa(h),
	)
	cmd.Stdin = bytes.NewReader(img.SVG())

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, rasterErr(err, "rsvg-convert: %s", strings.TrimSpace(errBuf.String()))
	}
	return &Image{Data: out.Bytes(), Width: w, Height: h}, nil
}
