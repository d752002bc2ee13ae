package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/ankg/jobmatch/internal/jsearch"
	"github.com/ankg/jobmatch/internal/scoring"
)

// Entry is one ranked job with its evaluation outcome.
type Entry struct {
	Rank     int    `json:"rank"`
	Title    string `json:"title,omitempty"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
	Link     string `json:"link,omitempty"`
	Score    int    `json:"score"`
	Analysis string `json:"analysis,omitempty"`
}

type Report struct {
	Entries []Entry `json:"entries"`
}

// Build zips jobs with their score records positionally and orders the
// result by score, highest first. The sort is stable so equally scored jobs
// keep the job source's order.
func Build(jobs []*jsearch.Job, records []scoring.ScoreRecord) *Report {
	count := len(jobs)
	if len(records) < count {
		count = len(records)
	}

	entries := make([]Entry, 0, count)
	for i := 0; i < count; i++ {
		entries = append(entries, Entry{
			Title:    jobs[i].Title,
			Company:  jobs[i].Employer,
			Location: jobs[i].Location(),
			Link:     jobs[i].Link(),
			Score:    records[i].Score,
			Analysis: records[i].Analysis,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return &Report{Entries: entries}
}

func (r *Report) Len() int {
	return len(r.Entries)
}

// Summary returns one compact line per entry for console output.
func (r *Report) Summary() []string {
	lines := make([]string, 0, len(r.Entries))
	for _, entry := range r.Entries {
		line := fmt.Sprintf("%d. [%d] %s / %s", entry.Rank, entry.Score, entry.Title, entry.Company)
		if entry.Location != "" {
			line = fmt.Sprintf("%s (%s)", line, entry.Location)
		}
		lines = append(lines, line)
	}
	return lines
}

// DumpToTmpFile writes the full report to a temporary JSON file and returns
// its name.
func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobmatch_report_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
