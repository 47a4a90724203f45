// Package format turns raw registry fields into display strings for social cards.
//
// Both functions are pure and deterministic. Their output is embedded into
// cached images, so changing a rule changes every card rendered afterwards.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Magnitude renders a non-negative count with a K or M suffix.
//
// Values below 1000 are returned as-is. Larger values are divided and printed
// with exactly one decimal place; trailing zeros are kept ("15.0K", "1.0M").
// Negative input is treated as zero.
func Magnitude(n int64) string {
	switch {
	case n < 0:
		return "0"
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// Summary shortens text to at most maxLen characters for display.
//
// The rules are applied in order:
//  1. Text that already fits is returned unchanged.
//  2. If the first sentence (with its period) is non-empty, fits, and more
//     text follows it, the first sentence is returned.
//  3. Otherwise the first maxLen characters are cut back to the last space
//     and "..." is appended. Without a space the hard cut is used.
//
// Rule 3 always truncates the full text, even when a first sentence exists
// but is itself too long. Lengths count runes, not bytes.
func Summary(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	sentences := strings.Split(text, ".")
	if first := sentences[0]; first != "" && len([]rune(first))+1 <= maxLen && len(sentences) > 1 {
		return first + "."
	}

	cut := string(runes[:max(maxLen, 0)])
	lastSpace := strings.LastIndex(cut, " ")
	if lastSpace == -1 {
		return cut + "..."
	}
	return cut[:lastSpace] + "..."
}
