package observability_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnStepEnter(ctx, &domain.StepEvent{StepID: domain.StepDetectUserType})
	hooks.OnStepEnter(ctx, &domain.StepEvent{StepID: domain.StepDetectUserType})
	hooks.OnStepEnter(ctx, &domain.StepEvent{StepID: domain.StepCollectOwnerDetails})
	hooks.OnExtractionAttempt(ctx, &domain.ExtractionEvent{Target: "owner_details", Attempt: 1, IsError: true})
	hooks.OnExtractionAttempt(ctx, &domain.ExtractionEvent{Target: "owner_details", Attempt: 2})
	hooks.OnRunFinish(ctx, &domain.RunEvent{Status: domain.StatusCompleted, Steps: 4})

	visits, err := testutil.GatherAndCount(m.Registry(), "intake_step_visits_total")
	require.NoError(t, err)
	assert.Equal(t, 2, visits, "one series per step")
	histograms, err := testutil.GatherAndCount(m.Registry(), "intake_run_steps")
	require.NoError(t, err)
	assert.Equal(t, 1, histograms)

	expected := `
# HELP intake_step_visits_total Total number of step executions
# TYPE intake_step_visits_total counter
intake_step_visits_total{step="collect_owner_details"} 1
intake_step_visits_total{step="detect_user_type"} 2
# HELP intake_extraction_attempts_total Structured extraction attempts by target and outcome
# TYPE intake_extraction_attempts_total counter
intake_extraction_attempts_total{outcome="malformed",target="owner_details"} 1
intake_extraction_attempts_total{outcome="ok",target="owner_details"} 1
# HELP intake_runs_total Finished runs by final status
# TYPE intake_runs_total counter
intake_runs_total{status="completed"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), bytes.NewBufferString(expected),
		"intake_step_visits_total", "intake_extraction_attempts_total", "intake_runs_total"))
}

func TestCompose(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{OnStepEnter: func(context.Context, *domain.StepEvent) { order = append(order, "a") }}
	b := domain.LifecycleHooks{
		OnStepEnter: func(context.Context, *domain.StepEvent) { order = append(order, "b") },
		OnRunFinish: func(context.Context, *domain.RunEvent) { order = append(order, "finish") },
	}

	hooks := observability.Compose(a, domain.LifecycleHooks{}, b)
	hooks.OnStepEnter(context.Background(), &domain.StepEvent{})
	hooks.OnRunFinish(context.Background(), &domain.RunEvent{})

	assert.Equal(t, []string{"a", "b", "finish"}, order)
	assert.Nil(t, hooks.OnStepLeave)
	assert.Nil(t, hooks.OnExtractionAttempt)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	hooks := observability.LoggingHooks(logger)

	hooks.OnRunFinish(context.Background(), &domain.RunEvent{
		EventBase: domain.EventBase{SessionID: "s1"},
		Status:    domain.StatusFailed,
		Steps:     10,
		Err:       errors.New("workflow did not converge"),
	})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "session_id=s1")
	assert.Contains(t, out, "status=failed")
}

func TestRouter(t *testing.T) {
	m := observability.NewMetrics()
	m.Hooks().OnRunFinish(context.Background(), &domain.RunEvent{Status: domain.StatusCompleted, Steps: 3})

	srv := httptest.NewServer(observability.NewRouter(m, "graph TD\n"))
	defer srv.Close()

	get := func(path string) (int, string) {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	code, body := get("/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)

	code, body = get("/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `intake_runs_total{status="completed"} 1`)

	code, body = get("/graph")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "graph TD\n", body)
}

func TestRouter_NoDiagram(t *testing.T) {
	rec := httptest.NewRecorder()
	observability.NewRouter(observability.NewMetrics(), "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graph", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
