package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/stakpak/paks-og/pkg/cache"
)

// ErrStatus is returned when a server answers with a non-2xx status.
var ErrStatus = errors.New("unexpected status")

// maxBodySize caps downloaded bodies; font files are well below it.
const maxBodySize = 16 << 20

// FetchBytes performs a GET on url and returns the body.
// Transport errors and 5xx responses are wrapped with [cache.Retryable].
func FetchBytes(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("get %s: %w", url, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("%w: get %s: %d", ErrStatus, url, resp.StatusCode)
		if resp.StatusCode >= 500 {
			return nil, cache.Retryable(err)
		}
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("read %s: %w", url, err))
	}
	if len(data) > maxBodySize {
		return nil, fmt.Errorf("get %s: body exceeds %d bytes", url, maxBodySize)
	}
	return data, nil
}
