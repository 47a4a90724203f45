package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingFonts struct {
	NoopFontHooks
	loads atomic.Int32
}

func (c *countingFonts) OnFontLoad(context.Context, string, time.Duration, error) { c.loads.Add(1) }

type stageNames struct {
	NoopPipelineHooks
	mu     sync.Mutex
	stages []string
}

func (s *stageNames) OnStageStart(_ context.Context, stage string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stages = append(s.stages, stage)
}

func TestDefaultsAreNoop(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T", Pipeline())
	}
	if _, ok := Fonts().(NoopFontHooks); !ok {
		t.Errorf("Fonts() = %T", Fonts())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T", HTTP())
	}

	ctx := context.Background()
	Pipeline().OnFallback(ctx, "acme", "widgets", nil)
	Cache().OnCacheSet(ctx, "artifact", 1024)
	HTTP().OnResponse(ctx, "GET", "apiv2.stakpak.dev", "/v1/paks/search", 200, time.Millisecond)
}

func TestSetKeepsOtherHooks(t *testing.T) {
	t.Cleanup(Reset)

	fonts := &countingFonts{}
	stages := &stageNames{}
	SetFontHooks(fonts)
	SetPipelineHooks(stages)
	SetPipelineHooks(nil)

	ctx := context.Background()
	Fonts().OnFontLoad(ctx, "local", time.Millisecond, nil)
	Pipeline().OnStageStart(ctx, "rendering")

	if fonts.loads.Load() != 1 {
		t.Errorf("font loads = %d, want 1", fonts.loads.Load())
	}
	if len(stages.stages) != 1 || stages.stages[0] != "rendering" {
		t.Errorf("stages = %v", stages.stages)
	}

	Reset()
	Fonts().OnFontLoad(ctx, "remote", time.Millisecond, nil)
	if fonts.loads.Load() != 1 {
		t.Error("hooks still called after Reset")
	}
}

func TestConcurrentSetAndRead(t *testing.T) {
	t.Cleanup(Reset)

	fonts := &countingFonts{}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetFontHooks(fonts)
			SetCacheHooks(NoopCacheHooks{})
		}()
		go func() {
			defer wg.Done()
			Fonts().OnFontLoad(context.Background(), "local", 0, nil)
			_ = Cache()
		}()
	}
	wg.Wait()

	if Fonts() != FontHooks(fonts) {
		t.Errorf("Fonts() = %T after concurrent sets", Fonts())
	}
}
