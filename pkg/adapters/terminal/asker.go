// Package terminal provides an Interaction Oracle that talks to a person on a terminal.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Renderer turns markdown into terminal output.
type Renderer func(markdown string) (string, error)

// Asker implements ports.Asker over a reader/writer pair.
// A background pump reads lines so Ask can return as soon as ctx is done.
type Asker struct {
	reader   *bufio.Reader
	writer   io.Writer
	renderer Renderer
	prefix   string
	prompt   string

	mu        sync.Mutex
	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// Option configures the Asker.
type Option func(*Asker)

// WithRenderer renders questions and messages before printing them.
func WithRenderer(r Renderer) Option {
	return func(a *Asker) {
		a.renderer = r
	}
}

// WithPrompt changes the input prompt (default "You: ").
func WithPrompt(p string) Option {
	return func(a *Asker) {
		a.prompt = p
	}
}

// NewAsker creates an Asker. nil arguments default to Stdin and Stdout.
func NewAsker(r io.Reader, w io.Writer, opts ...Option) *Asker {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	a := &Asker{
		reader: bufio.NewReader(r),
		writer: w,
		prefix: "AI: ",
		prompt: "You: ",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Asker) initPump() {
	a.startOnce.Do(func() {
		a.inputChan = make(chan inputResult)
		go a.pump()
	})
}

func (a *Asker) pump() {
	for {
		text, err := a.reader.ReadString('\n')
		if text != "" {
			a.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				a.inputChan <- inputResult{err: err}
			}
			close(a.inputChan)
			return
		}
	}
}

// Say prints a message from the assistant.
func (a *Asker) Say(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintln(a.writer, a.render(a.prefix+msg))
}

// Ask prints the question and waits for one line of input.
// Invalid input is rejected with a notice and the prompt is shown again.
func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	a.initPump()

	a.mu.Lock()
	defer a.mu.Unlock()

	fmt.Fprintln(a.writer, a.render(a.prefix+question))
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(a.writer, a.prompt)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-a.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			clean, err := SanitizeInput(strings.TrimSpace(res.text))
			if err != nil {
				fmt.Fprintf(a.writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

func (a *Asker) render(msg string) string {
	if a.renderer == nil {
		return msg
	}
	out, err := a.renderer(msg)
	if err != nil {
		return msg
	}
	return strings.TrimSpace(out)
}
