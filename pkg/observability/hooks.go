// Package observability lets the binary attach metrics or tracing to
// paks-og without the libraries depending on a backend.
//
// Libraries emit events through the accessor functions ([Pipeline], [Fonts],
// [Cache], [HTTP]). Each returns a no-op implementation until main registers
// its own with the matching Set function:
//
//	observability.SetPipelineHooks(stageTimer{})
//
//	// in the pipeline
//	observability.Pipeline().OnStageComplete(ctx, "rendering", elapsed, err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// PipelineHooks receives card pipeline events. Stages are
// resolving_metadata, building_layout, rendering and rasterizing.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, stage string)
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)

	// OnFallback fires when the registry lookup failed and the default
	// card was rendered instead.
	OnFallback(ctx context.Context, owner, name string, err error)
}

// FontHooks receives one event per font source tried.
type FontHooks interface {
	OnFontLoad(ctx context.Context, source string, duration time.Duration, err error)
}

// CacheHooks receives cache events. keyType is the registry client prefix
// ("paks") or "artifact" for rendered cards.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives outgoing registry request events.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnFallback(context.Context, string, string, error)             {}

type NoopFontHooks struct{}

func (NoopFontHooks) OnFontLoad(context.Context, string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// registry is replaced as a whole on every Set so readers never lock.
type registry struct {
	pipeline PipelineHooks
	fonts    FontHooks
	cache    CacheHooks
	http     HTTPHooks
}

func defaults() *registry {
	return &registry{
		pipeline: NoopPipelineHooks{},
		fonts:    NoopFontHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	}
}

var (
	current atomic.Pointer[registry]
	writeMu sync.Mutex
)

func init() { current.Store(defaults()) }

func update(fn func(r *registry)) {
	writeMu.Lock()
	defer writeMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetPipelineHooks registers pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetFontHooks registers font hooks. Nil is ignored.
func SetFontHooks(h FontHooks) {
	if h != nil {
		update(func(r *registry) { r.fonts = h })
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

func Pipeline() PipelineHooks { return current.Load().pipeline }
func Fonts() FontHooks        { return current.Load().fonts }
func Cache() CacheHooks       { return current.Load().cache }
func HTTP() HTTPHooks         { return current.Load().http }

// Reset restores the no-op hooks. Tests call it from t.Cleanup.
func Reset() {
	writeMu.Lock()
	defer writeMu.Unlock()
	current.Store(defaults())
}
