package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/npfs/pension-simulator/internal/analysis"
	"github.com/npfs/pension-simulator/internal/config"
	"github.com/npfs/pension-simulator/internal/domain"
	"github.com/npfs/pension-simulator/internal/voterreach"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.ServerConfig{
		Port:              "0",
		CORSAllowedOrigin: "http://localhost:3000",
		VoterDataDir:      t.TempDir(),
	}
	s, err := New(cfg, nil)
	require.NoError(t, err)
	s.Sensitivity.Models.Samples = 300
	return s
}

func do(s *Server, method, uri, body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.Header.SetContentType("application/json")
		ctx.Request.SetBodyString(body)
	}
	s.Handler()(ctx)
	return ctx
}

func decode[T any](t *testing.T, ctx *fasthttp.RequestCtx) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &v), string(ctx.Response.Body()))
	return v
}

func TestIndexAndHealth(t *testing.T) {
	s := newTestServer(t)

	ctx := do(s, "GET", "/", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	index := decode[map[string]any](t, ctx)
	assert.Equal(t, ServiceName, index["service"])

	ctx = do(s, "GET", "/health", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "healthy", decode[map[string]string](t, ctx)["status"])
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
}

func TestSimulation(t *testing.T) {
	s := newTestServer(t)

	ctx := do(s, "POST", "/simulation", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	result := decode[domain.ProjectionResult](t, ctx)
	require.NotNil(t, result.DepletionYear)
	assert.Equal(t, 2056, *result.DepletionYear)
	assert.Len(t, result.YearlyResults, 70)

	ctx = do(s, "POST", "/simulation", `{"contribution_rate": 0.13}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	result = decode[domain.ProjectionResult](t, ctx)
	assert.Equal(t, 0.40, result.Params.ReplacementRate)
	require.NotNil(t, result.DepletionYear)
	assert.Equal(t, 2079, *result.DepletionYear)
}

func TestSimulationRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"out of range", `{"pension_age": 75}`, "pension_age"},
		{"malformed", `{"contribution_rate": `, "invalid request body"},
		{"reversed horizon", `{"start_year": 2090, "end_year": 2030}`, "start_year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := do(s, "POST", "/simulation", tt.body)
			require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
			resp := decode[ErrorResponse](t, ctx)
			assert.Equal(t, 400, resp.Status)
			assert.Contains(t, resp.Message, tt.want)
		})
	}
}

func TestMonteCarlo(t *testing.T) {
	s := newTestServer(t)

	ctx := do(s, "POST", "/analysis/monte-carlo?n_simulations=100&use_regime_switching=false", "{}")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	summary := decode[domain.MonteCarloSummary](t, ctx)
	assert.Equal(t, 100, summary.NSimulations)
	assert.False(t, summary.RegimeSwitching)
	assert.LessOrEqual(t, summary.CI90Lower, summary.MedianDepletionYear)
	assert.GreaterOrEqual(t, summary.CI90Upper, summary.MedianDepletionYear)

	ctx = do(s, "GET", "/analysis/monte-carlo/quick", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	summary = decode[domain.MonteCarloSummary](t, ctx)
	assert.Equal(t, QuickSimulations, summary.NSimulations)
	assert.True(t, summary.RegimeSwitching)

	for _, uri := range []string{
		"/analysis/monte-carlo?n_simulations=99",
		"/analysis/monte-carlo?n_simulations=10001",
		"/analysis/monte-carlo?n_simulations=many",
		"/analysis/monte-carlo?use_regime_switching=maybe",
	} {
		ctx = do(s, "POST", uri, "")
		assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode(), uri)
	}
}

func TestMonteCarloCancelledOnShutdown(t *testing.T) {
	s := newTestServer(t)
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	s.baseCtx = cancelled

	ctx := do(s, "GET", "/analysis/monte-carlo/quick", "")
	assert.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
}

func TestSensitivity(t *testing.T) {
	s := newTestServer(t)

	ctx := do(s, "GET", "/analysis/shap/summary", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	result := decode[domain.SensitivityResult](t, ctx)
	assert.Equal(t, 2056, result.BaseDepletionYear)
	assert.Equal(t, 2056, result.CurrentDepletionYear)
	assert.Equal(t, 4, result.FeatureEffects[analysis.EffectContributionUp])
	assert.Len(t, result.FeatureImportance, len(analysis.FeatureNames))

	ctx = do(s, "POST", "/analysis/shap", `{"contribution_rate": 0.13}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	result = decode[domain.SensitivityResult](t, ctx)
	assert.Equal(t, 2079, result.CurrentDepletionYear)
}

func TestGenerations(t *testing.T) {
	s := newTestServer(t)

	ctx := do(s, "GET", "/analysis/generations/summary", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	result := decode[domain.GenerationAnalysisResult](t, ctx)
	assert.Len(t, result.Generations, 16)
	assert.InDelta(t, 0.662, result.EquityIndex, 1e-9)

	ctx = do(s, "POST", "/analysis/generations", `{"replacement_rate": 0.35}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	ctx = do(s, "GET", "/analysis/generations/compare", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	compare := decode[map[string]domain.GenerationComparison](t, ctx)
	assert.Len(t, compare, 4)
	assert.InDelta(t, 0.662, compare["current"].EquityIndex, 1e-9)
}

func TestVoterReachRoutes(t *testing.T) {
	s := newTestServer(t)

	ctx := do(s, "GET", "/api/voter-reach/stations", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Len(t, decode[[]voterreach.Station](t, ctx), 5)

	ctx = do(s, "GET", "/api/voter-reach/districts", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Len(t, decode[[]voterreach.District](t, ctx), 1)

	ctx = do(s, "GET", "/api/voter-reach/ridership?hour=8&station_id=1002", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	rows := decode[[]voterreach.Ridership](t, ctx)
	require.Len(t, rows, 1)
	assert.Equal(t, 11300.0, *rows[0].Total)

	ctx = do(s, "GET", "/api/voter-reach/election?district=songpa", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Len(t, decode[[]voterreach.Election](t, ctx), 1)

	ctx = do(s, "POST", "/api/voter-reach/optimize", `{"target_hour": 8, "top_n": 2}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	resp := decode[voterreach.OptimizeResponse](t, ctx)
	require.Len(t, resp.Recommendations, 2)
	assert.InDelta(t, 8000.4, resp.Recommendations[0].Score, 1e-9)

	ctx = do(s, "GET", "/api/voter-reach/heatmap?hour=8", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Len(t, decode[[]voterreach.HeatmapPoint](t, ctx), 5)
}

func TestVoterReachValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method, uri, body string
	}{
		{"GET", "/api/voter-reach/heatmap", ""},
		{"GET", "/api/voter-reach/heatmap?hour=24", ""},
		{"GET", "/api/voter-reach/ridership?hour=noon", ""},
		{"POST", "/api/voter-reach/optimize", `{"top_n": 5}`},
		{"POST", "/api/voter-reach/optimize", `{"target_hour": 8, "top_n": 0}`},
		{"POST", "/api/voter-reach/optimize", ""},
	}
	for _, tt := range tests {
		ctx := do(s, tt.method, tt.uri, tt.body)
		assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode(), tt.uri+" "+tt.body)
	}
}

func TestRoutingErrors(t *testing.T) {
	s := newTestServer(t)

	ctx := do(s, "GET", "/nope", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())

	ctx = do(s, "GET", "/simulation", "")
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
}

func TestCORSAndRequestID(t *testing.T) {
	s := newTestServer(t)

	ctx := do(s, "OPTIONS", "/simulation", "")
	assert.Equal(t, fasthttp.StatusNoContent, ctx.Response.StatusCode())
	assert.Equal(t, "http://localhost:3000", string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")))

	ctx = do(s, "GET", "/health", "")
	id := string(ctx.Response.Header.Peek(RequestIDHeader))
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	ctx = &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod("GET")
	ctx.Request.SetRequestURI("/health")
	ctx.Request.Header.Set(RequestIDHeader, "abc-123")
	s.Handler()(ctx)
	assert.Equal(t, "abc-123", string(ctx.Response.Header.Peek(RequestIDHeader)))
}

func TestNewRejectsBrokenVoterData(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, voterreach.StationsFile), []byte("not json"), 0o644))
	_, err := New(config.ServerConfig{VoterDataDir: dir}, nil)
	assert.ErrorContains(t, err, "failed to load voter data")
}

func TestSchedulerReloadsVoterData(t *testing.T) {
	s := newTestServer(t)
	sched := NewScheduler(s.Voter, s.Config.VoterDataDir, s.Logger)

	stations := `[{"id": "X", "name": "Xylo", "line": "Line 9", "lat": 37.0, "lng": 127.0}]`
	require.NoError(t, os.WriteFile(filepath.Join(s.Config.VoterDataDir, voterreach.StationsFile), []byte(stations), 0o644))
	sched.ReloadVoterData()
	assert.Len(t, s.Voter.Stations(), 1)

	// a broken file keeps the previous dataset
	require.NoError(t, os.WriteFile(filepath.Join(s.Config.VoterDataDir, voterreach.StationsFile), []byte("{"), 0o644))
	sched.ReloadVoterData()
	assert.Len(t, s.Voter.Stations(), 1)

	assert.NoError(t, sched.RegisterVoterReload("0 0 * * * *"))
	assert.Error(t, sched.RegisterVoterReload("every hour"))
}
