package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	model    string
	prompt   string
	config   *genai.GenerateContentConfig
	response *genai.GenerateContentResponse
	err      error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) == 1 && len(contents[0].Parts) == 1 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.response, f.err
}

func answer(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(text, genai.RoleModel)}},
	}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.ErrorContains(t, err, "API key is required")
}

func TestComplete(t *testing.T) {
	fake := &fakeModels{response: answer("owner")}
	c := newCompleter(fake, Config{})

	got, err := c.Complete(context.Background(), "classify this")
	require.NoError(t, err)
	assert.Equal(t, "owner", got)
	assert.Equal(t, DefaultModel, fake.model)
	assert.Equal(t, "classify this", fake.prompt)
	require.NotNil(t, fake.config.Temperature)
	assert.Equal(t, float32(0), *fake.config.Temperature)
}

func TestComplete_Errors(t *testing.T) {
	boom := errors.New("quota exceeded")
	c := newCompleter(&fakeModels{err: boom}, Config{Model: "gemini-1.5-pro"})
	_, err := c.Complete(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "gemini-1.5-pro")

	c = newCompleter(&fakeModels{response: &genai.GenerateContentResponse{}}, Config{})
	_, err = c.Complete(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoCandidates)
}
