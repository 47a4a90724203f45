// Package integrations provides the shared HTTP client for registry APIs.
//
// # Overview
//
// [Client] wraps an *http.Client with the behavior every registry client
// needs:
//
//   - default headers (User-Agent, Accept) applied to each request
//   - retry with exponential backoff for transient failures
//   - optional response caching through any [cache.Cache] backend
//   - status classification into [ErrNotFound], [ErrUnauthorized],
//     [ErrNetwork], rate-limit errors and [APIError]
//
// The Paks registry client lives in the [paks] subpackage:
//
//	client := paks.NewClient(paks.Config{BaseURL: paks.DefaultBaseURL})
//	p, err := client.GetPak(ctx, "acme", "widgets", false)
//
// [cache.Cache]: github.com/stakpak/paks-og/pkg/cache.Cache
// [paks]: github.com/stakpak/paks-og/pkg/integrations/paks
package integrations
