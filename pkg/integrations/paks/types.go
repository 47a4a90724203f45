package paks

import (
	"github.com/stakpak/paks-og/pkg/pak"
)

// Pak is a registry entry as returned by the search endpoint. Only the fields
// the service displays are decoded.
type Pak struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	OwnerName      string  `json:"owner_name"`
	URI            string  `json:"uri,omitempty"`
	Description    *string `json:"description,omitempty"`
	Visibility     string  `json:"visibility,omitempty"`
	TotalDownloads int64   `json:"total_downloads"`
}

// Summary converts the registry entry into a card summary, applying defaults
// for absent optional fields.
func (p Pak) Summary() pak.Summary {
	s := pak.Summary{
		Name:       p.Name,
		Owner:      p.OwnerName,
		Visibility: pak.Visibility(p.Visibility),
		Downloads:  p.TotalDownloads,
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	return s.WithDefaults()
}

// SearchQuery is the query string of the search endpoint. Empty fields are
// omitted.
type SearchQuery struct {
	Owner   string
	PakName string
	Query   string
	Limit   int
	Offset  int
}

type searchResponse struct {
	Results []Pak `json:"results"`
}
