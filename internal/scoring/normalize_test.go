package scoring

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		maxChars int
		expect   string
	}{
		{
			name:     "empty input",
			input:    "",
			maxChars: 100,
			expect:   "",
		},
		{
			name:     "whitespace only",
			input:    "  \n\t ",
			maxChars: 100,
			expect:   "",
		},
		{
			name:     "shorter than budget",
			input:    "short text",
			maxChars: 100,
			expect:   "short text",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "  padded  ",
			maxChars: 100,
			expect:   "padded",
		},
		{
			name:     "non-positive budget",
			input:    "anything",
			maxChars: 0,
			expect:   "",
		},
		{
			name:     "truncates and appends marker",
			input:    "abcdefgh",
			maxChars: 5,
			expect:   "abcde...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input, tt.maxChars); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNormalizeTruncationLength(t *testing.T) {
	got := Normalize(strings.Repeat("a", 2000), 1500)

	if len(got) != 1503 {
		t.Fatalf("expected length 1503, got %d", len(got))
	}
	if !strings.HasSuffix(got, truncationMarker) {
		t.Fatalf("expected truncation marker suffix, got %q", got[len(got)-10:])
	}
}
