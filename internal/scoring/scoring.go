package scoring

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ankg/jobmatch/internal/ai"
	"github.com/ankg/jobmatch/internal/utils"
)

// JobPosting is a single job considered for the candidate. All fields are
// optional; order inside a batch is significant because the evaluation
// response is correlated back to it positionally.
type JobPosting struct {
	Title       string
	Company     string
	Location    string
	Description string
}

// ScoreRecord is the per-job outcome of a batch evaluation. Analysis keeps
// the provider's rationale and outreach message as one opaque blob.
type ScoreRecord struct {
	Score    int
	Analysis string
}

const (
	fallbackAnalysis    = "scoring unavailable for this job due to a parsing or quota issue"
	rateLimitedAnalysis = "scoring unavailable for this job: the evaluation provider is rate limited, try again later"

	defaultMaxLogLength = 200
)

// Engine scores a whole batch of job postings against a resume in one
// request to the text-generation provider.
type Engine struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewEngine(generator ai.Generator, logger *zap.Logger, maxLogLength int) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Engine{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// ScoreBatch evaluates every job against the resume and always returns
// exactly one record per job, in input order. Rate-limit exhaustion and
// unparseable responses degrade to fallback records; any other provider
// failure is returned to the caller untouched.
func (e *Engine) ScoreBatch(ctx context.Context, resume string, jobs []JobPosting) ([]ScoreRecord, error) {
	if len(jobs) == 0 {
		return []ScoreRecord{}, nil
	}

	if e.generator == nil {
		return nil, errors.New("generator is required")
	}

	prompt := BuildPrompt(resume, jobs)

	e.logger.Debug("batch evaluation request",
		zap.Int("jobs", len(jobs)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		if errors.Is(err, ai.ErrRateLimited) {
			e.logger.Warn("degrading batch to fallback records",
				zap.Int("jobs", len(jobs)),
				zap.Error(err),
			)
			return FallbackRecords(len(jobs), rateLimitedAnalysis), nil
		}
		return nil, fmt.Errorf("evaluate batch: %w", err)
	}

	e.logger.Debug("batch evaluation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	parsed := ParseBatch(raw)
	if len(parsed) != len(jobs) {
		e.logger.Warn("evaluation response does not match batch size",
			zap.Int("expected", len(jobs)),
			zap.Int("parsed", len(parsed)),
		)
	}

	return Reconcile(parsed, len(jobs)), nil
}
