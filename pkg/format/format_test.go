package format

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMagnitude(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{950, "950"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{15000, "15.0K"},
		{999_949, "999.9K"},
		{1_000_000, "1.0M"},
		{2_340_000, "2.3M"},
		{12_500_000, "12.5M"},
		{-5, "0"},
	}

	for _, tt := range tests {
		if got := Magnitude(tt.in); got != tt.want {
			t.Errorf("Magnitude(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSummary(t *testing.T) {
	longWords := strings.Repeat("lorem ipsum ", 15) // 180 chars, no periods

	tests := []struct {
		name   string
		text   string
		maxLen int
		want   string
	}{
		{
			name:   "under limit unchanged",
			text:   "Short text.",
			maxLen: 200,
			want:   "Short text.",
		},
		{
			name:   "exactly at limit unchanged",
			text:   "abcde",
			maxLen: 5,
			want:   "abcde",
		},
		{
			name:   "first sentence rule",
			text:   "First sentence here. Second sentence that is irrelevant and long.",
			maxLen: 30,
			want:   "First sentence here.",
		},
		{
			name:   "card description",
			text:   "A widget toolkit. More detail follows that is not needed.",
			maxLen: 20,
			want:   "A widget toolkit.",
		},
		{
			name:   "word boundary without periods",
			text:   longWords,
			maxLen: 100,
			want:   longWords[:95] + "...",
		},
		{
			name:   "long first sentence truncates full text",
			text:   "This opening sentence is far too long to fit. Tail.",
			maxLen: 20,
			want:   "This opening...",
		},
		{
			name:   "empty first sentence falls through",
			text:   ".hidden configuration files everywhere",
			maxLen: 12,
			want:   ".hidden...",
		},
		{
			name:   "no space hard cut",
			text:   "supercalifragilisticexpialidocious",
			maxLen: 10,
			want:   "supercalif...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summary(tt.text, tt.maxLen); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummaryWordBoundaryLength(t *testing.T) {
	text := strings.Repeat("word ", 36) // 180 chars
	got := Summary(text, 100)

	if !strings.HasSuffix(got, "...") {
		t.Fatalf("Summary() = %q, want ... suffix", got)
	}
	body := strings.TrimSuffix(got, "...")
	if len(body) > 100 {
		t.Errorf("body length = %d, want <= 100", len(body))
	}
	if strings.HasSuffix(body, " ") {
		t.Errorf("body %q should end before the last space", body)
	}
	if !strings.HasPrefix(text, body) {
		t.Errorf("body %q is not a prefix of the input", body)
	}
}

func TestSummaryCountsRunes(t *testing.T) {
	text := strings.Repeat("é", 10)
	if got := Summary(text, 10); got != text {
		t.Errorf("Summary() = %q, want unchanged", got)
	}

	got := Summary(strings.Repeat("é", 12), 10)
	if n := utf8.RuneCountInString(strings.TrimSuffix(got, "...")); n != 10 {
		t.Errorf("rune count = %d, want 10", n)
	}
}
