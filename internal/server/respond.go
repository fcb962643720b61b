package server

import (
	"errors"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/npfs/pension-simulator/internal/config"
	"github.com/npfs/pension-simulator/internal/voterreach"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

var errBadRequest = errors.New("bad request")

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

// fail maps err to a status code and writes it.
func (s *Server) fail(ctx *fasthttp.RequestCtx, err error) {
	status := fasthttp.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, config.ErrParameterOutOfRange),
		errors.Is(err, voterreach.ErrInvalidHour),
		errors.Is(err, voterreach.ErrInvalidTopN):
		status = fasthttp.StatusBadRequest
	default:
		s.Logger.Errorf("%s %s: %v", ctx.Method(), ctx.Path(), err)
	}
	writeError(ctx, status, err.Error())
}
