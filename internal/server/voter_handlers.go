package server

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/npfs/pension-simulator/internal/voterreach"
)

func (s *Server) handleDistricts(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, s.Voter.Districts())
}

func (s *Server) handleStations(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, s.Voter.Stations())
}

// queryHour parses the hour query argument; nil when absent.
func queryHour(ctx *fasthttp.RequestCtx) (*int, error) {
	args := ctx.QueryArgs()
	if !args.Has("hour") {
		return nil, nil
	}
	hour, err := strconv.Atoi(string(args.Peek("hour")))
	if err != nil {
		return nil, fmt.Errorf("%w: hour must be an integer", errBadRequest)
	}
	return &hour, nil
}

func (s *Server) handleRidership(ctx *fasthttp.RequestCtx) {
	hour, err := queryHour(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	rows, err := s.Voter.Ridership(hour, string(ctx.QueryArgs().Peek("station_id")))
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, rows)
}

func (s *Server) handleElection(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, s.Voter.Election(string(ctx.QueryArgs().Peek("district"))))
}

func (s *Server) handleOptimize(ctx *fasthttp.RequestCtx) {
	req := voterreach.OptimizeRequest{TargetHour: -1, TopN: voterreach.DefaultTopN}
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.fail(ctx, fmt.Errorf("%w: invalid request body: %v", errBadRequest, err))
		return
	}
	resp, err := s.Voter.Optimize(req)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) handleHeatmap(ctx *fasthttp.RequestCtx) {
	hour, err := queryHour(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	if hour == nil {
		s.fail(ctx, fmt.Errorf("%w: hour is required", errBadRequest))
		return
	}
	points, err := s.Voter.Heatmap(*hour)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, points)
}
