package fonts

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	perrors "github.com/stakpak/paks-og/pkg/errors"
	"github.com/stakpak/paks-og/pkg/observability"
)

// Provider returns the process-wide FontSet, populating the Cache from its
// sources on first use.
//
// Concurrent first callers share one population. Population runs detached
// from the caller's cancellation so that a client hanging up does not abort
// it for everyone waiting; a caller whose context ends stops waiting.
type Provider struct {
	cache   *Cache
	family  string
	sources []Source
	logger  *log.Logger

	group    singleflight.Group
	attempts atomic.Int64
}

// NewProvider creates a provider. A nil cache gets a private one, an empty
// family means [DefaultFamily] and nil sources mean [DefaultSources].
func NewProvider(cache *Cache, family string, sources []Source, logger *log.Logger) *Provider {
	if cache == nil {
		cache = NewCache()
	}
	if family == "" {
		family = DefaultFamily
	}
	if logger == nil {
		logger = log.Default()
	}
	if sources == nil {
		sources = DefaultSources()
	}
	return &Provider{
		cache:   cache,
		family:  family,
		sources: sources,
		logger:  logger,
	}
}

// DefaultSources returns [LocalSource, RemoteSource] with default settings.
func DefaultSources() []Source {
	return []Source{&LocalSource{}, &RemoteSource{}}
}

// Family returns the family requested from sources.
func (p *Provider) Family() string { return p.family }

// Attempts returns how many source loads have been started. A populated
// cache never increases it.
func (p *Provider) Attempts() int64 { return p.attempts.Load() }

// Fonts returns the cached FontSet, loading it if necessary. When every
// source fails the error carries code FONT_UNAVAILABLE and joins each
// source's failure; the cache stays empty so a later call retries.
func (p *Provider) Fonts(ctx context.Context) (*FontSet, error) {
	if fs := p.cache.Load(); fs != nil {
		return fs, nil
	}

	ch := p.group.DoChan("fonts", func() (any, error) {
		if fs := p.cache.Load(); fs != nil {
			return fs, nil
		}
		fs, err := p.populate(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		p.cache.Store(fs)
		return fs, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*FontSet), nil
	}
}

func (p *Provider) populate(ctx context.Context) (*FontSet, error) {
	hooks := observability.Fonts()
	var errs []error

	for _, src := range p.sources {
		p.attempts.Add(1)
		start := time.Now()
		fs, err := src.Load(ctx, p.family)
		hooks.OnFontLoad(ctx, src.Name(), time.Since(start), err)
		if err != nil {
			p.logger.Warn("font source failed", "source", src.Name(), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		fs.Source = src.Name()
		p.logger.Debug("fonts loaded", "source", src.Name(), "family", fs.Family,
			"regular_bytes", len(fs.Regular), "bold_bytes", len(fs.Bold),
			"duration", time.Since(start))
		return fs, nil
	}

	if len(errs) == 0 {
		errs = append(errs, errors.New("no font sources configured"))
	}
	return nil, perrors.Wrap(perrors.ErrCodeFontUnavailable, errors.Join(errs...),
		"could not load %s fonts", p.family)
}
