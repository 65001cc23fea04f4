package ports

import "context"

// Completer is the Completion Oracle: given a prompt, it returns a free-text completion.
// Implementations own their retry and timeout policy; the engine calls it once per request.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Asker is the Interaction Oracle: it presents a prompt to a human and returns one line of reply.
type Asker interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f(ctx, prompt).
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// AskerFunc adapts a plain function to the Asker interface.
type AskerFunc func(ctx context.Context, prompt string) (string, error)

// Ask calls f(ctx, prompt).
func (f AskerFunc) Ask(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
