// Package pak defines the package summary rendered onto social cards.
//
// A [Summary] is the minimal, display-relevant view of one registry entry.
// It is built once per request, either from a registry lookup or from
// defaults derived from the requested identifier, and never mutated.
package pak

import (
	"strings"
)

// DefaultDescription is shown when a pak has no description or could not be
// looked up.
const DefaultDescription = "A knowledge pak for AI agents, published on the Paks registry."

// Visibility is the registry visibility level of a pak.
type Visibility string

// Visibility levels, matching the registry's uppercase wire values.
const (
	VisibilityPublic   Visibility = "PUBLIC"
	VisibilityUnlisted Visibility = "UNLISTED"
	VisibilityPrivate  Visibility = "PRIVATE"
)

// ParseVisibility converts a wire value to a Visibility.
// Matching is case-insensitive; empty or unknown values yield PUBLIC.
func ParseVisibility(s string) Visibility {
	switch Visibility(strings.ToUpper(strings.TrimSpace(s))) {
	case VisibilityUnlisted:
		return VisibilityUnlisted
	case VisibilityPrivate:
		return VisibilityPrivate
	default:
		return VisibilityPublic
	}
}

// String returns the uppercase label used on badges.
func (v Visibility) String() string {
	if v == "" {
		return string(VisibilityPublic)
	}
	return string(v)
}

// Summary holds everything a social card displays about one pak.
type Summary struct {
	Name        string     `json:"name"`
	Owner       string     `json:"owner"`
	Description string     `json:"description"`
	Visibility  Visibility `json:"visibility"`
	Downloads   int64      `json:"downloads"`
}

// Default returns the placeholder summary for an identifier that could not be
// resolved. Owner and name are used verbatim.
func Default(owner, name string) Summary {
	return Summary{
		Name:        name,
		Owner:       owner,
		Description: DefaultDescription,
		Visibility:  VisibilityPublic,
		Downloads:   0,
	}
}

// URI returns the short "owner/name" identifier.
func (s Summary) URI() string {
	return s.Owner + "/" + s.Name
}

// WithDefaults fills absent optional fields with their defaults.
// Name and owner are never replaced.
func (s Summary) WithDefaults() Summary {
	if strings.TrimSpace(s.Description) == "" {
		s.Description = DefaultDescription
	}
	s.Visibility = ParseVisibility(string(s.Visibility))
	if s.Downloads < 0 {
		s.Downloads = 0
	}
	return s
}
