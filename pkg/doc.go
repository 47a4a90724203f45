// Package pkg holds the libraries behind paks-og, the social preview image
// service for the Paks registry.
//
// # Overview
//
// A preview card is produced in four stages, each owned by one package:
//
//	Paks registry ([integrations/paks])
//	         ↓
//	    [pak] summary, or the default card when the lookup fails
//	         ↓
//	    [card] layout tree at 1200x630
//	         ↓
//	    [render] SVG document and image model
//	         ↓
//	    [raster] PNG at the requested width
//
// [pipeline] runs the stages in order and [fonts] supplies the font pair
// both renderers measure and draw with.
//
// # Supporting packages
//
//   - [cache]: artifact and HTTP response caching (file, Redis or none)
//   - [httputil]: retrying HTTP fetches
//   - [errors]: coded errors with HTTP status mapping
//   - [format]: download count and text formatting
//   - [observability]: hooks for pipeline, font, cache and HTTP events
//   - [buildinfo]: version and user agent strings
//
// The HTTP server and the command-line tool live under internal/.
//
// [integrations/paks]: github.com/stakpak/paks-og/pkg/integrations/paks
// [pak]: github.com/stakpak/paks-og/pkg/pak
// [card]: github.com/stakpak/paks-og/pkg/card
// [render]: github.com/stakpak/paks-og/pkg/render
// [raster]: github.com/stakpak/paks-og/pkg/raster
// [pipeline]: github.com/stakpak/paks-og/pkg/pipeline
// [fonts]: github.com/stakpak/paks-og/pkg/fonts
// [cache]: github.com/stakpak/paks-og/pkg/cache
// [httputil]: github.com/stakpak/paks-og/pkg/httputil
// [errors]: github.com/stakpak/paks-og/pkg/errors
// [format]: github.com/stakpak/paks-og/pkg/format
// [observability]: github.com/stakpak/paks-og/pkg/observability
// [buildinfo]: github.com/stakpak/paks-og/pkg/buildinfo
package pkg
