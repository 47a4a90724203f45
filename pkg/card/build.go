package card

import (
	"strings"

	"github.com/stakpak/paks-og/pkg/format"
	"github.com/stakpak/paks-og/pkg/pak"
)

// DescriptionLimit is the character budget for the card description.
const DescriptionLimit = 200

// Node IDs assigned by Build.
const (
	IDLogo        = "logo"
	IDWordmark    = "wordmark"
	IDDomain      = "domain"
	IDOwner       = "owner"
	IDName        = "name"
	IDDescription = "description"
	IDBadge       = "visibility"
	IDDownloads   = "downloads"
)

// Palette.
const (
	colorText      = "#fafafa"
	colorMuted     = "#a1a1aa"
	colorBody      = "#d4d4d8"
	colorAccent    = "#7c3aed"
	colorAccentHi  = "#db2777"
	colorBadgeText = "#ddd6fe"
	colorBadgeFill = "#7c3aed33"
	colorRule      = "#ffffff1f"
)

const (
	marginX      = 80
	contentWidth = Width - 2*marginX
)

// Build lays out the card for s. It is pure: the same summary always yields
// an equal layout. Every field is rendered; callers supply defaults for
// missing metadata.
func Build(s pak.Summary) Layout {
	logoGradient := &Gradient{
		X0: 0, Y0: 0, X1: 56, Y1: 56,
		Stops: []Stop{{Offset: 0, Color: colorAccent}, {Offset: 1, Color: colorAccentHi}},
	}

	header := Node{
		Kind: KindRow,
		ID:   "header",
		X:    marginX,
		Y:    64,
		H:    56,
		Gap:  18,
		Children: []Node{
			{
				Kind:   KindBadge,
				ID:     IDLogo,
				W:      56,
				H:      56,
				Radius: 14,
				Fill:   Paint{Gradient: logoGradient},
				Text:   "P",
				Size:   32,
				Weight: WeightBold,
				Color:  colorText,
			},
			{
				Kind:   KindText,
				ID:     IDWordmark,
				Text:   "Paks",
				Size:   32,
				Weight: WeightBold,
				Color:  colorText,
			},
		},
	}

	domain := Node{
		Kind:   KindText,
		ID:     IDDomain,
		X:      Width - marginX,
		Y:      76,
		Text:   "paks.stakpak.dev",
		Size:   24,
		Weight: WeightRegular,
		Color:  colorMuted,
		Align:  AlignRight,
	}

	owner := Node{
		Kind:     KindText,
		ID:       IDOwner,
		X:        marginX,
		Y:        196,
		Text:     s.Owner,
		Size:     30,
		Weight:   WeightRegular,
		Color:    colorMuted,
		MaxWidth: contentWidth,
		MaxLines: 1,
	}

	name := Node{
		Kind:     KindText,
		ID:       IDName,
		X:        marginX,
		Y:        240,
		Text:     s.Name,
		Size:     72,
		Weight:   WeightBold,
		Color:    colorText,
		MaxWidth: contentWidth,
		MaxLines: 1,
	}

	description := Node{
		Kind:       KindText,
		ID:         IDDescription,
		X:          marginX,
		Y:          342,
		Text:       format.Summary(s.Description, DescriptionLimit),
		Size:       30,
		Weight:     WeightRegular,
		Color:      colorBody,
		LineHeight: 1.4,
		MaxWidth:   contentWidth,
		MaxLines:   3,
	}

	rule := Node{
		Kind: KindRect,
		ID:   "rule",
		X:    marginX,
		Y:    505,
		W:    contentWidth,
		H:    1,
		Fill: Solid(colorRule),
	}

	footer := Node{
		Kind: KindRow,
		ID:   "footer",
		X:    marginX,
		Y:    530,
		H:    44,
		Gap:  24,
		Children: []Node{
			{
				Kind:        KindBadge,
				ID:          IDBadge,
				H:           44,
				Radius:      22,
				Fill:        Solid(colorBadgeFill),
				Stroke:      colorAccent,
				StrokeWidth: 2,
				Text:        strings.ToUpper(s.Visibility.String()),
				Size:        20,
				Weight:      WeightBold,
				Color:       colorBadgeText,
				PadX:        18,
			},
			{
				Kind:   KindText,
				ID:     IDDownloads,
				Text:   format.Magnitude(s.Downloads) + " downloads",
				Size:   26,
				Weight: WeightRegular,
				Color:  colorMuted,
			},
		},
	}

	return Layout{
		Width:  Width,
		Height: Height,
		Background: Paint{Gradient: &Gradient{
			X0: 0, Y0: 0, X1: Width, Y1: Height,
			Stops: []Stop{{Offset: 0, Color: "#09090b"}, {Offset: 1, Color: "#1e1b4b"}},
		}},
		Nodes: []Node{header, domain, owner, name, description, rule, footer},
	}
}
