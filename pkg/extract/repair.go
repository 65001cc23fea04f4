package extract

import (
	"context"
	"fmt"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/ports"
)

// DefaultMaxRetries is the number of repair prompts issued after the first attempt.
const DefaultMaxRetries = 3

// Parser validates a raw completion and converts it to T.
type Parser[T any] func(raw string) (T, error)

// RepairPrompt builds the prompt that asks the completer to fix a malformed payload.
// malformed is the previous response verbatim; err is why it was rejected.
type RepairPrompt func(malformed string, err error) string

// Request describes one structured extraction.
type Request[T any] struct {
	// Target names what is being extracted, for errors and events.
	Target string
	// Prompt is the initial extraction prompt.
	Prompt string
	// Parse validates each completion.
	Parse Parser[T]
	// Repair builds the follow-up prompt after a parse failure.
	Repair RepairPrompt
	// MaxRetries bounds the number of repair prompts. Negative means zero.
	MaxRetries int
	// OnAttempt, if set, is called after every completion with the 1-based
	// attempt number and the parse error (nil on success).
	OnAttempt func(attempt int, err error)
}

// Structured runs the extraction with bounded self-correction.
// It makes at most MaxRetries+1 completion calls. Completer errors are returned
// immediately; only parse failures are retried.
func Structured[T any](ctx context.Context, c ports.Completer, req Request[T]) (T, error) {
	var zero T
	if req.Parse == nil || req.Repair == nil {
		return zero, fmt.Errorf("extract %s: parser and repair prompt are required", req.Target)
	}

	retries := max(req.MaxRetries, 0)
	prompt := req.Prompt

	var (
		raw      string
		parseErr error
	)
	for attempt := 1; attempt <= retries+1; attempt++ {
		resp, err := c.Complete(ctx, prompt)
		if err != nil {
			return zero, fmt.Errorf("extract %s: completion failed on attempt %d: %w", req.Target, attempt, err)
		}
		raw = resp

		value, err := req.Parse(raw)
		if req.OnAttempt != nil {
			req.OnAttempt(attempt, err)
		}
		if err == nil {
			return value, nil
		}
		parseErr = err
		prompt = req.Repair(raw, err)
	}

	return zero, &domain.ExtractionError{
		Target:   req.Target,
		Attempts: retries + 1,
		Payload:  raw,
		Err:      parseErr,
	}
}
