package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stakpak/paks-og/pkg/cache"
	"github.com/stakpak/paks-og/pkg/card"
	"github.com/stakpak/paks-og/pkg/fonts"
	"github.com/stakpak/paks-og/pkg/observability"
	"github.com/stakpak/paks-og/pkg/raster"
)

// Config wires a Runner's collaborators.
type Config struct {
	// Lookup fetches metadata. Nil renders the default summary for every
	// package.
	Lookup Lookup

	// Fonts supplies the font set. Required for svg and png output.
	Fonts FontProvider

	// Backend rasterizes PNGs. Nil means the native backend.
	Backend raster.Backend

	// Cache stores rendered artifacts. Nil disables artifact caching.
	Cache cache.Cache
	Keyer cache.Keyer

	Logger *log.Logger
}

// Runner executes the card pipeline. It holds no per-request state and is
// safe for concurrent use.
type Runner struct {
	Lookup  Lookup
	Fonts   FontProvider
	Backend raster.Backend
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
}

// NewRunner creates a runner, filling in defaults for nil collaborators.
func NewRunner(cfg Config) *Runner {
	r := &Runner{
		Lookup:  cfg.Lookup,
		Fonts:   cfg.Fonts,
		Backend: cfg.Backend,
		Cache:   cfg.Cache,
		Keyer:   cfg.Keyer,
		Logger:  cfg.Logger,
	}
	if r.Backend == nil {
		r.Backend = raster.Native{}
	}
	if r.Cache == nil {
		r.Cache = cache.NewNullCache()
	}
	if r.Keyer == nil {
		r.Keyer = cache.NewDefaultKeyer()
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	return r
}

// Execute runs the pipeline for one package. Errors carry codes from
// pkg/errors: invalid options are INVALID_*, missing fonts are
// FONT_UNAVAILABLE, and drawing failures are RENDER_FAILED or
// RASTER_FAILED. Lookup failures never fail a run.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	res := &Result{ContentType: ContentType(opts.Format)}

	_ = r.stage(ctx, StageResolvingMetadata, &res.Stats.ResolveTime, func() error {
		res.Summary, res.Fallback = r.resolve(ctx, opts)
		return nil
	})

	err := r.stage(ctx, StageBuildingLayout, &res.Stats.LayoutTime, func() error {
		res.Layout = card.Build(res.Summary)
		if opts.Format != FormatJSON {
			return nil
		}
		data, err := MarshalLayout(res.Layout)
		res.Artifact = data
		return err
	})
	if err != nil {
		return nil, err
	}
	if opts.Format == FormatJSON {
		return res, nil
	}

	var (
		fs  *fonts.FontSet
		key string
	)
	err = r.stage(ctx, StageRendering, &res.Stats.RenderTime, func() error {
		var err error
		if fs, err = r.loadFonts(ctx); err != nil {
			return err
		}
		key = r.artifactKey(res.Layout, fs, opts)
		if r.fromCache(ctx, key, opts, res) {
			return nil
		}
		res.Image, err = r.render(res.Layout, fs)
		return err
	})
	if err != nil {
		return nil, err
	}
	if res.CacheHit {
		r.Logger.Debug("served cached card", "owner", opts.Owner, "name", opts.Name, "format", opts.Format)
		return res, nil
	}

	if opts.Format == FormatSVG {
		res.Artifact = res.Image.SVG()
		r.store(ctx, key, res.Artifact)
		return res, nil
	}

	err = r.stage(ctx, StageRasterizing, &res.Stats.RasterTime, func() error {
		out, err := r.Backend.Rasterize(ctx, res.Image, opts.Width)
		if err != nil {
			return err
		}
		res.Artifact, res.Width, res.Height = out.Data, out.Width, out.Height
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, res.Artifact)

	r.Logger.Debug("generated card",
		"owner", opts.Owner,
		"name", opts.Name,
		"fallback", res.Fallback,
		"bytes", len(res.Artifact),
		"duration", res.Stats.Total())
	return res, nil
}

// Close releases the artifact cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) hooks() observability.PipelineHooks {
	return observability.Pipeline()
}

// stage times fn and reports it to the pipeline hooks.
func (r *Runner) stage(ctx context.Context, name string, elapsed *time.Duration, fn func() error) error {
	h := r.hooks()
	h.OnStageStart(ctx, name)
	start := time.Now()
	err := fn()
	*elapsed = time.Since(start)
	h.OnStageComplete(ctx, name, *elapsed, err)
	if err != nil {
		r.Logger.Debug("stage failed", "stage", name, "err", err)
	}
	return err
}

// artifactKeyType labels artifact cache events for the cache hooks.
const artifactKeyType = "artifact"

func (r *Runner) artifactKey(l card.Layout, fs *fonts.FontSet, opts Options) string {
	hash, err := LayoutHash(l)
	if err != nil {
		return ""
	}
	return r.Keyer.ArtifactKey(hash, cache.ArtifactKeyOpts{
		Format:  opts.Format,
		Width:   opts.Width,
		Backend: r.Backend.Name(),
		Family:  fs.Family,
	})
}

func (r *Runner) fromCache(ctx context.Context, key string, opts Options, res *Result) bool {
	if key == "" || opts.Refresh {
		return false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, artifactKeyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, artifactKeyType)
	res.Artifact = data
	res.CacheHit = true
	if opts.Format == FormatPNG {
		res.Width = opts.Width
		res.Height = raster.ScaledHeight(card.Width, card.Height, opts.Width)
	}
	return true
}

func (r *Runner) store(ctx context.Context, key string, data []byte) {
	if key == "" {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Debug("artifact cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, artifactKeyType, len(data))
}
