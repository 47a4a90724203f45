// Package paks provides an HTTP client for the Paks registry API.
//
// # Overview
//
// The service only needs one endpoint: identifier search. A pak is looked
// up by searching for its exact owner and name with a limit of one:
//
//	GET {base}/v1/paks/search?owner=acme&pak_name=widgets&limit=1
//	{"results":[{"name":"widgets","owner_name":"acme",...}]}
//
// # Usage
//
//	client := paks.NewClient(paks.Config{})
//	p, err := client.GetPak(ctx, "acme", "widgets", false)
//	if errors.Is(err, integrations.ErrNotFound) {
//	    // no such pak
//	}
//	summary := p.Summary()
//
// Responses can be cached through any [cache.Cache] backend; by default no
// cache is used. Empty search results are never cached.
//
// [cache.Cache]: github.com/stakpak/paks-og/pkg/cache.Cache
package paks
