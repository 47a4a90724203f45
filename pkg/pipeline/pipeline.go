// Package pipeline produces social-preview cards for registry packages.
//
// A run moves through four stages, each reported to the observability
// pipeline hooks:
//
//  1. Resolving metadata: look the package up in the registry, falling back
//     to a default summary when the lookup fails or finds nothing
//  2. Building the layout: [card.Build] turns the summary into a layout tree
//  3. Rendering: [render.Render] resolves the tree with the loaded fonts
//  4. Rasterizing: a [raster.Backend] encodes the PNG
//
// Only the last three stages can fail a run. Lookup errors are logged and
// recovered.
//
// # Usage
//
//	runner := pipeline.NewRunner(pipeline.Config{
//	    Lookup: pipeline.NewRegistryLookup(client),
//	    Fonts:  provider,
//	    Logger: logger,
//	})
//	result, err := runner.Execute(ctx, pipeline.Options{Owner: "acme", Name: "widgets"})
//	if err != nil {
//	    return err
//	}
//	png := result.Artifact
package pipeline

import (
	"slices"
	"time"

	"github.com/stakpak/paks-og/pkg/card"
	perrors "github.com/stakpak/paks-og/pkg/errors"
	"github.com/stakpak/paks-og/pkg/pak"
	"github.com/stakpak/paks-og/pkg/raster"
	"github.com/stakpak/paks-og/pkg/render"
)

// Stage names passed to observability hooks.
const (
	StageResolvingMetadata = "resolving_metadata"
	StageBuildingLayout    = "building_layout"
	StageRendering         = "rendering"
	StageRasterizing       = "rasterizing"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// DefaultFormat is the format served over HTTP.
const DefaultFormat = FormatPNG

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatPNG, FormatSVG, FormatJSON}

// ValidateFormat checks that format is supported. Formats are case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return perrors.New(perrors.ErrCodeInvalidFormat, "unsupported format %q (want png, svg or json)", format)
	}
	return nil
}

// Options selects the package and the output of one run.
type Options struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`

	// Format is png, svg or json (the layout tree). Empty means png.
	Format string `json:"format,omitempty"`

	// Width is the PNG width in pixels. Zero means the native 1200.
	Width int `json:"width,omitempty"`

	// Refresh bypasses cached registry responses and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Offline skips the registry and renders the default summary.
	Offline bool `json:"offline,omitempty"`
}

// ValidateAndSetDefaults checks the path segments and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if err := perrors.ValidateOwner(o.Owner); err != nil {
		return err
	}
	if err := perrors.ValidatePackageName(o.Name); err != nil {
		return err
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Width == 0 {
		o.Width = raster.DefaultWidth
	}
	if o.Width < 1 || o.Width > raster.MaxWidth {
		return perrors.New(perrors.ErrCodeInvalidInput, "width %d out of range 1..%d", o.Width, raster.MaxWidth)
	}
	return nil
}

// Result holds everything a run produced.
type Result struct {
	Summary pak.Summary `json:"summary"`

	// Fallback is set when the summary is the default one because the
	// lookup failed or was skipped.
	Fallback bool `json:"fallback"`

	Layout card.Layout `json:"layout"`

	// Image is nil when the artifact came from the cache.
	Image *render.Image `json:"-"`

	// Artifact holds the encoded output in the requested format.
	Artifact    []byte `json:"-"`
	ContentType string `json:"content_type"`

	// Width and Height are the pixel size of a PNG artifact.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	CacheHit bool  `json:"cache_hit"`
	Stats    Stats `json:"stats"`
}

// Stats records how long each stage took.
type Stats struct {
	ResolveTime time.Duration `json:"resolve_time"`
	LayoutTime  time.Duration `json:"layout_time"`
	RenderTime  time.Duration `json:"render_time"`
	RasterTime  time.Duration `json:"raster_time"`
}

// Total returns the summed stage durations.
func (s Stats) Total() time.Duration {
	return s.ResolveTime + s.LayoutTime + s.RenderTime + s.RasterTime
}

// ContentType returns the media type of an artifact format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	default:
		return "image/png"
	}
}
