// Package httputil provides the HTTP helpers shared by the registry client and
// the remote font source.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff. Only errors wrapped
// with [cache.Retryable] are retried, so callers decide which failures are
// transient (network errors, 5xx responses):
//
//	err := httputil.Retry(ctx, 3, 500*time.Millisecond, func() error {
//	    return fetch()
//	})
//
// # Fetching bytes
//
// [FetchBytes] performs a plain GET and returns the body, classifying
// failures the same way the registry client does. It is used to download
// font files, which are served without authentication.
//
// [cache.Retryable]: github.com/stakpak/paks-og/pkg/cache.Retryable
package httputil
