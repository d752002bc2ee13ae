package scoring

import (
	"strings"
	"testing"
)

func TestParseBatchWellFormedResponse(t *testing.T) {
	raw := `=== JOB 1 ===
Score: 82
Reason: Strong overlap with Go and Kubernetes experience.
Message: Hi, I noticed your opening and would love to chat.

=== JOB 2 ===
Score: 45
Reason: Missing most required skills.
Message: Hello, I am interested in this role.

=== JOB 3 ===
Score: 91
Reason: Nearly perfect match.
Message: Hi there!`

	records := ParseBatch(raw)

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	expected := []int{82, 45, 91}
	for i, record := range records {
		if record.Score != expected[i] {
			t.Fatalf("record %d: expected score %d, got %d", i, expected[i], record.Score)
		}
		if !strings.HasPrefix(record.Analysis, "Score:") {
			t.Fatalf("record %d: expected analysis to keep the score line, got %q", i, record.Analysis)
		}
		if !strings.Contains(record.Analysis, "Message:") {
			t.Fatalf("record %d: expected analysis to keep the message, got %q", i, record.Analysis)
		}
	}
}

func TestParseBatchEdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		records int
		scores  []int
	}{
		{
			name:    "empty response",
			raw:     "",
			records: 0,
		},
		{
			name:    "whitespace only",
			raw:     "  \n\n ",
			records: 0,
		},
		{
			name:    "score line without digits",
			raw:     "=== JOB 1 ===\nScore: unknown\nReason: n/a",
			records: 1,
			scores:  []int{0},
		},
		{
			name:    "missing score line",
			raw:     "=== JOB 1 ===\nReason: model ignored the format",
			records: 1,
			scores:  []int{0},
		},
		{
			name:    "score above bounds clamped",
			raw:     "=== JOB 1 ===\nScore: 150\nReason: enthusiastic model",
			records: 1,
			scores:  []int{100},
		},
		{
			name:    "case-insensitive score prefix",
			raw:     "=== JOB 1 ===\nSCORE: 60\nReason: fine",
			records: 1,
			scores:  []int{60},
		},
		{
			name:    "commentary before first marker becomes its own segment",
			raw:     "Sure, here are the evaluations:\n=== JOB 1 ===\nScore: 70\nReason: ok",
			records: 2,
			scores:  []int{0, 70},
		},
		{
			name:    "lowercase marker",
			raw:     "=== job 1 ===\nScore: 33\nReason: weak fit",
			records: 1,
			scores:  []int{33},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			records := ParseBatch(tt.raw)
			if len(records) != tt.records {
				t.Fatalf("expected %d records, got %d", tt.records, len(records))
			}
			for i, want := range tt.scores {
				if records[i].Score != want {
					t.Fatalf("record %d: expected score %d, got %d", i, want, records[i].Score)
				}
			}
		})
	}
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	parsed := []ScoreRecord{{Score: 80, Analysis: "good"}, {Score: 20, Analysis: "bad"}}

	t.Run("matching count passes through", func(t *testing.T) {
		t.Parallel()
		records := Reconcile(parsed, 2)
		if len(records) != 2 || records[0].Score != 80 || records[1].Score != 20 {
			t.Fatalf("expected parsed records unchanged, got %+v", records)
		}
	})

	t.Run("undersegmented parse degrades", func(t *testing.T) {
		t.Parallel()
		records := Reconcile(parsed[:1], 3)
		if len(records) != 3 {
			t.Fatalf("expected 3 fallback records, got %d", len(records))
		}
		for i, record := range records {
			if record.Score != 0 {
				t.Fatalf("record %d: expected fallback score 0, got %d", i, record.Score)
			}
			if !strings.Contains(record.Analysis, "quota") {
				t.Fatalf("record %d: expected explanatory analysis, got %q", i, record.Analysis)
			}
		}
	})

	t.Run("oversegmented parse degrades", func(t *testing.T) {
		t.Parallel()
		records := Reconcile(parsed, 1)
		if len(records) != 1 || records[0].Score != 0 {
			t.Fatalf("expected single fallback record, got %+v", records)
		}
	})
}
