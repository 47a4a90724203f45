package pipeline

import (
	"context"

	"github.com/stakpak/paks-og/pkg/card"
	perrors "github.com/stakpak/paks-og/pkg/errors"
	"github.com/stakpak/paks-og/pkg/fonts"
	"github.com/stakpak/paks-og/pkg/render"
)

// FontProvider supplies the font set used for measurement and drawing.
type FontProvider interface {
	Fonts(ctx context.Context) (*fonts.FontSet, error)
}

// FontSetProvider serves a fixed font set.
type FontSetProvider struct{ Set *fonts.FontSet }

// Fonts implements FontProvider.
func (p FontSetProvider) Fonts(context.Context) (*fonts.FontSet, error) {
	if p.Set == nil {
		return nil, perrors.New(perrors.ErrCodeFontUnavailable, "no font set configured")
	}
	return p.Set, nil
}

func (r *Runner) loadFonts(ctx context.Context) (*fonts.FontSet, error) {
	if r.Fonts == nil {
		return nil, perrors.New(perrors.ErrCodeFontUnavailable, "no font provider configured")
	}
	return r.Fonts.Fonts(ctx)
}

func (r *Runner) render(l card.Layout, fs *fonts.FontSet) (*render.Image, error) {
	img, err := render.Render(l, fs)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("rendered card", "shapes", len(img.Shapes), "fonts", fs.Source)
	return img, nil
}
