package pipeline

import (
	"context"
	"fmt"

	"github.com/stakpak/paks-og/pkg/integrations"
	"github.com/stakpak/paks-og/pkg/integrations/paks"
	"github.com/stakpak/paks-og/pkg/pak"
)

// Lookup fetches package metadata from a registry.
type Lookup interface {
	Lookup(ctx context.Context, owner, name string, refresh bool) (pak.Summary, error)
}

// LookupFunc adapts a function to [Lookup].
type LookupFunc func(ctx context.Context, owner, name string, refresh bool) (pak.Summary, error)

// Lookup implements Lookup.
func (f LookupFunc) Lookup(ctx context.Context, owner, name string, refresh bool) (pak.Summary, error) {
	return f(ctx, owner, name, refresh)
}

// NewRegistryLookup looks packages up with the Paks registry client.
func NewRegistryLookup(c *paks.Client) Lookup {
	return LookupFunc(func(ctx context.Context, owner, name string, refresh bool) (pak.Summary, error) {
		p, err := c.GetPak(ctx, owner, name, refresh)
		if err != nil {
			return pak.Summary{}, err
		}
		return p.Summary(), nil
	})
}

// resolve returns the summary to draw. It never fails: lookup errors and
// summaries missing a name or owner are logged at warn level and replaced by
// the default summary, keeping the requested owner and name verbatim.
func (r *Runner) resolve(ctx context.Context, opts Options) (pak.Summary, bool) {
	if opts.Offline || r.Lookup == nil {
		return pak.Default(opts.Owner, opts.Name), true
	}

	s, err := r.Lookup.Lookup(ctx, opts.Owner, opts.Name, opts.Refresh)
	if err == nil && (s.Name == "" || s.Owner == "") {
		err = fmt.Errorf("%w: lookup returned a summary without name or owner", integrations.ErrNotFound)
	}
	if err != nil {
		r.Logger.Warn("pak lookup failed, using defaults", "owner", opts.Owner, "name", opts.Name, "err", err)
		r.hooks().OnFallback(ctx, opts.Owner, opts.Name, err)
		return pak.Default(opts.Owner, opts.Name), true
	}
	return s.WithDefaults(), false
}
