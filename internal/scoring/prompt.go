package scoring

import (
	"fmt"
	"strings"

	_ "embed"
)

//go:embed prompt.md
var promptTemplate string

const (
	// The resume appears once per request while job descriptions appear
	// once per job, so each job gets a tighter budget than the resume.
	resumeMaxChars         = 6000
	jobDescriptionMaxChars = 2000
)

// BuildPrompt assembles one evaluation request covering the whole batch:
// a resume block, one ordinal-tagged block per job in input order, and a
// fixed instruction block describing the response shape ParseBatch relies on.
func BuildPrompt(resume string, jobs []JobPosting) string {
	prompt := strings.ReplaceAll(promptTemplate, "{{RESUME}}", Normalize(resume, resumeMaxChars))
	return strings.ReplaceAll(prompt, "{{JOBS}}", buildJobBlocks(jobs))
}

func buildJobBlocks(jobs []JobPosting) string {
	var builder strings.Builder
	for i, job := range jobs {
		if i > 0 {
			builder.WriteString("\n")
		}
		fmt.Fprintf(&builder, "=== JOB %d ===\n", i+1)
		fmt.Fprintf(&builder, "Title: %s\n", strings.TrimSpace(job.Title))
		fmt.Fprintf(&builder, "Company: %s\n", strings.TrimSpace(job.Company))
		fmt.Fprintf(&builder, "Location: %s\n", strings.TrimSpace(job.Location))
		fmt.Fprintf(&builder, "Description: %s\n", Normalize(job.Description, jobDescriptionMaxChars))
	}
	return builder.String()
}
