package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/ankg/jobmatch/internal/ai"
	"github.com/ankg/jobmatch/internal/utils"
)

const (
	defaultModel       = "gemini-2.5-pro"
	defaultMaxAttempts = 2
	defaultBackoff     = 5 * time.Second
	defaultTimeout     = 60 * time.Second
)

// contentCaller is the part of the genai API the generator relies on.
// The real client satisfies it via *genai.Models.
type contentCaller interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config controls the Gemini generator and its retry behaviour.
type Config struct {
	APIKey      string
	Model       string
	MaxAttempts int
	Backoff     time.Duration
	Timeout     time.Duration
}

// Generator wraps the Google GenAI client with a bounded retry policy:
// rate-limit failures are retried with a fixed backoff, anything else is
// returned to the caller immediately.
type Generator struct {
	models      contentCaller
	model       string
	maxAttempts int
	backoff     time.Duration
	timeout     time.Duration
	logger      *zap.Logger
}

// NewGenerator creates a Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, cfg Config, logger *zap.Logger) (*Generator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		models:      client.Models,
		model:       model,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		timeout:     timeout,
		logger:      logger,
	}, nil
}

// GenerateContent sends the prompt to Gemini and returns the textual response.
// When the provider keeps reporting quota exhaustion the returned error wraps
// ai.ErrRateLimited so callers can degrade instead of failing hard.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		output, err := g.generateOnce(ctx, prompt)
		if err == nil {
			return output, nil
		}

		if !isRateLimited(err) {
			return "", fmt.Errorf("generate content: %w", err)
		}

		lastErr = err
		g.logger.Warn("gemini rate limited",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", g.maxAttempts),
			zap.Error(err),
		)

		if attempt < g.maxAttempts {
			if err := utils.WaitFor(ctx, g.backoff); err != nil {
				return "", err
			}
		}
	}

	return "", fmt.Errorf("%w: %d attempts failed, last error: %v", ai.ErrRateLimited, g.maxAttempts, lastErr)
}

func (g *Generator) generateOnce(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func isRateLimited(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.Code == http.StatusTooManyRequests || strings.EqualFold(apiErr.Status, "RESOURCE_EXHAUSTED")
}
