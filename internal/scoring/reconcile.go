package scoring

// Reconcile enforces the engine's output invariant: exactly one record per
// input job. A matching parse is returned unchanged; any count mismatch
// discards the parsed content and substitutes fallback records, so callers
// never see a partial or over-long list.
func Reconcile(parsed []ScoreRecord, expected int) []ScoreRecord {
	if len(parsed) == expected {
		return parsed
	}

	return FallbackRecords(expected, fallbackAnalysis)
}

// FallbackRecords builds count zero-score records carrying the given
// explanation.
func FallbackRecords(count int, analysis string) []ScoreRecord {
	records := make([]ScoreRecord, count)
	for i := range records {
		records[i] = ScoreRecord{Score: 0, Analysis: analysis}
	}
	return records
}
