package pipeline

import (
	"encoding/json"

	"github.com/stakpak/paks-og/pkg/cache"
	"github.com/stakpak/paks-og/pkg/card"
	perrors "github.com/stakpak/paks-og/pkg/errors"
)

// MarshalLayout serializes a layout tree as indented JSON.
func MarshalLayout(l card.Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "marshal layout")
	}
	return append(data, '\n'), nil
}

// LayoutHash identifies a layout for artifact caching.
func LayoutHash(l card.Layout) (string, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return "", perrors.Wrap(perrors.ErrCodeInternal, err, "marshal layout")
	}
	return cache.Hash(data), nil
}
