package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/intake/internal/config"
	"github.com/aretw0/intake/internal/logging"
	"github.com/aretw0/intake/internal/presentation/graph"
	"github.com/aretw0/intake/internal/presentation/tui"
	"github.com/aretw0/intake/pkg/adapters/terminal"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/observability"
	"github.com/aretw0/intake/pkg/ports"
)

// ErrRunFailed is returned after a failed run has been reported to the user.
var ErrRunFailed = errors.New("intake run failed")

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Config    config.Config
	SessionID string
	Render    bool // markdown rendering and banner, for interactive terminals

	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Completer overrides the Gemini client (tests, offline demos).
	Completer ports.Completer
}

// Execute runs one conversation to its end.
// On failure the reason and the transcript are written to Err and ErrRunFailed is returned.
func Execute(ctx context.Context, opts RunOptions) error {
	level, err := logging.ParseLevel(opts.Config.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewWithWriter(opts.Err, level)

	var askerOpts []terminal.Option
	if opts.Render {
		render, err := tui.NewRenderer(0)
		if err != nil {
			logger.Warn("markdown rendering disabled", "error", err)
		} else {
			askerOpts = append(askerOpts, terminal.WithRenderer(render))
		}
	}
	asker := terminal.NewAsker(opts.In, opts.Out, askerOpts...)

	c, err := createEngine(ctx, opts.Config, opts.Completer, asker, logger, presenterHooks(asker))
	if err != nil {
		return err
	}
	defer c.Close()

	if addr := opts.Config.MetricsAddr; addr != "" {
		diagram := graph.GenerateMermaid(c.engine.Inspect(), c.engine.Entry(), nil)
		stop := serveMetrics(addr, observability.NewRouter(c.metrics, diagram), logger)
		defer stop()
	}

	if opts.Render {
		tui.PrintBanner(opts.Out)
	}

	state := c.engine.Start(opts.SessionID)
	logger.Info("session created", "session_id", state.SessionID)

	state, runErr := c.engine.Run(ctx, state)
	if runErr != nil {
		if isInterrupted(runErr) {
			printSystemMessage(opts.Out, "Session '%s' interrupted.", state.SessionID)
			return nil
		}
		reportFailure(opts.Err, state, runErr)
		return ErrRunFailed
	}

	if opts.Render {
		tui.PrintFarewell(opts.Out)
	}
	return nil
}

func reportFailure(w io.Writer, state *domain.State, err error) {
	switch {
	case errors.Is(err, domain.ErrNotConverged):
		fmt.Fprintf(w, "Error: the conversation did not reach a conclusion: %v\n", err)
	case errors.Is(err, domain.ErrExtractionFailed):
		fmt.Fprintf(w, "Error: could not understand the details provided: %v\n", err)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	if state != nil {
		printTranscript(w, state.Messages)
	}
}

// presenterHooks shows the assistant's own messages as steps append them.
// Questions and replies are already on screen through the asker; match results are
// intermediate data and only reach the user through show_properties.
func presenterHooks(asker *terminal.Asker) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepLeave: func(_ context.Context, e *domain.StepEvent) {
			if e.StepID == domain.StepMatchProperties || e.Diff == nil || e.Diff.Messages == nil {
				return
			}
			for _, m := range e.Diff.Messages.Appended {
				if strings.HasPrefix(m, "AI: ") || strings.HasPrefix(m, "User: ") {
					continue
				}
				asker.Say(m)
			}
		},
	}
}

// serveMetrics starts the metrics router in the background and returns its shutdown.
func serveMetrics(addr string, h http.Handler, logger *slog.Logger) func() {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
