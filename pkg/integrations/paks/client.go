package paks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/stakpak/paks-og/pkg/buildinfo"
	"github.com/stakpak/paks-og/pkg/cache"
	"github.com/stakpak/paks-og/pkg/integrations"
)

// DefaultBaseURL is the production registry API.
const DefaultBaseURL = "https://apiv2.stakpak.dev"

// Config configures a registry client. The zero value is usable: it talks to
// [DefaultBaseURL] without a timeout or cache.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Retries  int
	Cache    cache.Cache
	Keyer    cache.Keyer
	CacheTTL time.Duration

	// Options are applied after the fields above, e.g. to inject a test transport.
	Options []integrations.Option
}

// Client provides access to the Paks registry API.
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a registry client.
func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = cache.TTLHTTP
	}
	headers := map[string]string{
		"User-Agent": buildinfo.UserAgent(),
		"Accept":     "application/json",
	}
	opts := []integrations.Option{
		integrations.WithTimeout(cfg.Timeout),
		integrations.WithRetries(cfg.Retries),
		integrations.WithKeyer(cfg.Keyer),
	}
	opts = append(opts, cfg.Options...)

	return &Client{
		Client:  integrations.NewClient(cfg.Cache, "paks", ttl, headers, opts...),
		baseURL: base,
	}
}

// BaseURL returns the registry base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// SearchPaks runs a search and returns the raw results. Results are not cached.
func (c *Client) SearchPaks(ctx context.Context, q SearchQuery) ([]Pak, error) {
	var resp searchResponse
	if err := c.Get(ctx, c.searchURL(q), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetPak looks up a single pak by exact owner and name.
//
// If refresh is true, the cache is bypassed. Returns an error wrapping
// [integrations.ErrNotFound] when the search yields no result.
func (c *Client) GetPak(ctx context.Context, owner, name string, refresh bool) (*Pak, error) {
	var p Pak
	err := c.Cached(ctx, owner+"/"+name, refresh, &p, func() error {
		results, err := c.SearchPaks(ctx, SearchQuery{Owner: owner, PakName: name, Limit: 1})
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return fmt.Errorf("%w: pak %s/%s", integrations.ErrNotFound, owner, name)
		}
		// A record without a name or owner cannot be drawn.
		if results[0].Name == "" || results[0].OwnerName == "" {
			return fmt.Errorf("%w: pak %s/%s: result has no name or owner", integrations.ErrNotFound, owner, name)
		}
		p = results[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) searchURL(q SearchQuery) string {
	v := url.Values{}
	if q.Owner != "" {
		v.Set("owner", q.Owner)
	}
	if q.PakName != "" {
		v.Set("pak_name", q.PakName)
	}
	if q.Query != "" {
		v.Set("query", q.Query)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	u := c.baseURL + "/v1/paks/search"
	if enc := v.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}
