package server

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/npfs/pension-simulator/internal/calculation"
	"github.com/npfs/pension-simulator/internal/config"
	"github.com/npfs/pension-simulator/internal/domain"
)

// Monte Carlo request limits.
const (
	MinSimulations   = 100
	MaxSimulations   = 10000
	QuickSimulations = 500
)

func (s *Server) handleIndex(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{
		"service": ServiceName,
		"version": ServiceVersion,
		"endpoints": map[string]any{
			"health":      "/health",
			"simulation":  "/simulation",
			"shap":        "/analysis/shap",
			"monte_carlo": "/analysis/monte-carlo",
			"generations": "/analysis/generations",
			"voter_reach": map[string]string{
				"districts": "/api/voter-reach/districts",
				"stations":  "/api/voter-reach/stations",
				"ridership": "/api/voter-reach/ridership",
				"election":  "/api/voter-reach/election",
				"optimize":  "/api/voter-reach/optimize",
				"heatmap":   "/api/voter-reach/heatmap",
			},
		},
	})
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "healthy", "service": "npfs-api"})
}

// decodeParams reads simulation parameters from the request body. Missing
// fields keep the current scheme defaults.
func decodeParams(ctx *fasthttp.RequestCtx) (domain.SimulationParameters, error) {
	params := domain.DefaultParameters()
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &params); err != nil {
			return params, fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
		}
	}
	if err := config.ValidateParameters(params); err != nil {
		return params, err
	}
	return params, nil
}

func (s *Server) handleSimulation(ctx *fasthttp.RequestCtx) {
	params, err := decodeParams(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, s.Projector.Project(params))
}

func (s *Server) handleMonteCarlo(ctx *fasthttp.RequestCtx) {
	params, err := decodeParams(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	args := ctx.QueryArgs()
	n := config.DefaultSimulations
	if args.Has("n_simulations") {
		n, err = strconv.Atoi(string(args.Peek("n_simulations")))
		if err != nil {
			s.fail(ctx, fmt.Errorf("%w: n_simulations must be an integer", errBadRequest))
			return
		}
	}
	if n < MinSimulations || n > MaxSimulations {
		s.fail(ctx, fmt.Errorf("%w: n_simulations must be between %d and %d", errBadRequest, MinSimulations, MaxSimulations))
		return
	}
	regime := true
	if args.Has("use_regime_switching") {
		regime, err = strconv.ParseBool(string(args.Peek("use_regime_switching")))
		if err != nil {
			s.fail(ctx, fmt.Errorf("%w: use_regime_switching must be a boolean", errBadRequest))
			return
		}
	}
	s.runMonteCarlo(ctx, params, n, regime)
}

func (s *Server) handleQuickMonteCarlo(ctx *fasthttp.RequestCtx) {
	s.runMonteCarlo(ctx, domain.DefaultParameters(), QuickSimulations, true)
}

func (s *Server) runMonteCarlo(ctx *fasthttp.RequestCtx, params domain.SimulationParameters, n int, regime bool) {
	summary, err := s.MonteCarlo.Run(s.context(), params, calculation.MonteCarloConfig{
		NumSimulations:  n,
		RegimeSwitching: regime,
	})
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, summary)
}

func (s *Server) handleSensitivity(ctx *fasthttp.RequestCtx) {
	params, err := decodeParams(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	s.runSensitivity(ctx, params)
}

func (s *Server) handleSensitivitySummary(ctx *fasthttp.RequestCtx) {
	s.runSensitivity(ctx, domain.DefaultParameters())
}

func (s *Server) runSensitivity(ctx *fasthttp.RequestCtx, params domain.SimulationParameters) {
	result, err := s.Sensitivity.Analyze(s.context(), params)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleGenerations(ctx *fasthttp.RequestCtx) {
	params, err := decodeParams(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, s.Generations.Analyze(params))
}

func (s *Server) handleGenerationsSummary(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, s.Generations.Analyze(domain.DefaultParameters()))
}

func (s *Server) handleGenerationsCompare(ctx *fasthttp.RequestCtx) {
	results, err := s.Generations.CompareScenarios(s.context())
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, results)
}
