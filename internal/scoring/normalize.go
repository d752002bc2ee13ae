package scoring

import "strings"

// truncationMarker is appended whenever Normalize cuts text off.
const truncationMarker = "..."

// Normalize trims surrounding whitespace and caps the text at maxChars
// runes, appending the truncation marker when something was cut off.
// It is total over any input: empty text and non-positive budgets yield
// an empty string.
func Normalize(text string, maxChars int) string {
	text = strings.TrimSpace(text)
	if maxChars <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	return string(runes[:maxChars]) + truncationMarker
}
