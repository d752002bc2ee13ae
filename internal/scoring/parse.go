package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	jobMarker = regexp.MustCompile(`(?i)===\s*JOB\s+\d+\s*===`)
	digitRun  = regexp.MustCompile(`\d+`)
)

// ParseBatch splits the raw evaluation response into one record per job
// block, in the order the blocks appear. Only the score is extracted as
// structured data; the rest of each block (score line included) is kept
// verbatim as the analysis text. Correlation with the input batch is purely
// positional, Reconcile catches any count mismatch.
func ParseBatch(raw string) []ScoreRecord {
	segments := jobMarker.Split(raw, -1)
	records := make([]ScoreRecord, 0, len(segments))

	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		records = append(records, ScoreRecord{
			Score:    extractScore(segment),
			Analysis: segment,
		})
	}

	return records
}

// extractScore finds the first line starting with "score" (case-insensitive)
// and returns the first run of decimal digits on it, clamped to [0,100].
// A missing score line or a score line without digits yields 0.
func extractScore(segment string) int {
	for _, line := range strings.Split(segment, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToLower(line), "score") {
			continue
		}

		digits := digitRun.FindString(line)
		if digits == "" {
			return 0
		}

		score, err := strconv.Atoi(digits)
		if err != nil {
			// Digit run too long to fit an int; it can only be over the cap.
			return 100
		}

		return clampScore(score)
	}

	return 0
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
