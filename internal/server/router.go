package server

import (
	"github.com/valyala/fasthttp"
)

type route struct {
	method  string
	path    string
	handler func(*Server, *fasthttp.RequestCtx)
}

var routes = []route{
	{fasthttp.MethodGet, "/", (*Server).handleIndex},
	{fasthttp.MethodGet, "/health", (*Server).handleHealth},
	{fasthttp.MethodPost, "/simulation", (*Server).handleSimulation},
	{fasthttp.MethodPost, "/analysis/monte-carlo", (*Server).handleMonteCarlo},
	{fasthttp.MethodGet, "/analysis/monte-carlo/quick", (*Server).handleQuickMonteCarlo},
	{fasthttp.MethodPost, "/analysis/shap", (*Server).handleSensitivity},
	{fasthttp.MethodGet, "/analysis/shap/summary", (*Server).handleSensitivitySummary},
	{fasthttp.MethodPost, "/analysis/generations", (*Server).handleGenerations},
	{fasthttp.MethodGet, "/analysis/generations/summary", (*Server).handleGenerationsSummary},
	{fasthttp.MethodGet, "/analysis/generations/compare", (*Server).handleGenerationsCompare},
	{fasthttp.MethodGet, "/api/voter-reach/districts", (*Server).handleDistricts},
	{fasthttp.MethodGet, "/api/voter-reach/stations", (*Server).handleStations},
	{fasthttp.MethodGet, "/api/voter-reach/ridership", (*Server).handleRidership},
	{fasthttp.MethodGet, "/api/voter-reach/election", (*Server).handleElection},
	{fasthttp.MethodPost, "/api/voter-reach/optimize", (*Server).handleOptimize},
	{fasthttp.MethodGet, "/api/voter-reach/heatmap", (*Server).handleHeatmap},
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())
	pathFound := false
	for _, r := range routes {
		if r.path != path {
			continue
		}
		pathFound = true
		if r.method == method {
			r.handler(s, ctx)
			return
		}
	}
	if pathFound {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeError(ctx, fasthttp.StatusNotFound, "not found")
}
