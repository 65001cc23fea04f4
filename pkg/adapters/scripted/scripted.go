// Package scripted provides deterministic oracles that replay canned responses.
// They stand in for the LLM and the terminal in tests and offline demos.
package scripted

import (
	"context"
	"errors"
	"sync"
)

// ErrExhausted is returned when a script has no responses left.
var ErrExhausted = errors.New("scripted responses exhausted")

// Script replays responses in order and records every prompt it receives.
type Script struct {
	mu        sync.Mutex
	responses []string
	prompts   []string
}

func newScript(responses []string) *Script {
	return &Script{responses: append([]string(nil), responses...)}
}

func (s *Script) next(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts = append(s.prompts, prompt)
	if len(s.responses) == 0 {
		return "", ErrExhausted
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

// Calls returns how many prompts were received.
func (s *Script) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

// Prompts returns a copy of the prompts received so far.
func (s *Script) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// Remaining returns how many responses have not been consumed.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.responses)
}

// Completer is a scripted Completion Oracle.
type Completer struct {
	*Script
}

// NewCompleter returns a Completer that answers with responses in order.
func NewCompleter(responses ...string) *Completer {
	return &Completer{Script: newScript(responses)}
}

// Complete returns the next scripted response.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	return c.next(ctx, prompt)
}

// Asker is a scripted Interaction Oracle.
type Asker struct {
	*Script
}

// NewAsker returns an Asker that replies with replies in order.
func NewAsker(replies ...string) *Asker {
	return &Asker{Script: newScript(replies)}
}

// Ask returns the next scripted reply.
func (a *Asker) Ask(ctx context.Context, prompt string) (string, error) {
	return a.next(ctx, prompt)
}
