// Package gemini provides a Completion Oracle backed by the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gemini-2.0-flash"

// ErrNoCandidates is returned when the API answers without any candidate.
var ErrNoCandidates = errors.New("gemini returned no candidates")

// Config configures the completer.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
}

// generator is the slice of *genai.Models the completer needs.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Completer implements ports.Completer with a single-turn GenerateContent call.
// It is safe for concurrent use.
type Completer struct {
	models      generator
	model       string
	temperature float32
}

// New creates a Completer talking to the Gemini API.
func New(ctx context.Context, cfg Config) (*Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required (set GEMINI_API_KEY)")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newCompleter(client.Models, cfg), nil
}

func newCompleter(models generator, cfg Config) *Completer {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Completer{
		models:      models,
		model:       model,
		temperature: cfg.Temperature,
	}
}

// Model returns the model name requests are sent to.
func (c *Completer) Model() string {
	return c.model
}

// Complete sends prompt as a single user turn and returns the text of the first candidate.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := c.models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate (%s): %w", c.model, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}
	return resp.Text(), nil
}
