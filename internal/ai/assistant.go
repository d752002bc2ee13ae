package ai

import (
	"context"
	"errors"
)

// Generator produces free-form text for a single prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ErrRateLimited reports that the provider refused the request because of
// quota or rate limiting and that every retry attempt was exhausted. Callers
// are expected to degrade gracefully instead of failing the whole batch.
var ErrRateLimited = errors.New("text generation rate limited")
