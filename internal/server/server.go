// Package server exposes the simulator over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/npfs/pension-simulator/internal/analysis"
	"github.com/npfs/pension-simulator/internal/calculation"
	"github.com/npfs/pension-simulator/internal/config"
	"github.com/npfs/pension-simulator/internal/voterreach"
)

// Service metadata reported by the index route.
const (
	ServiceName    = "NPFS API"
	ServiceVersion = "0.1.0"
)

const shutdownTimeout = 10 * time.Second

// Server routes API requests to the simulator components.
type Server struct {
	Config      config.ServerConfig
	Projector   *calculation.Projector
	MonteCarlo  *calculation.MonteCarloSimulator
	Sensitivity *analysis.Sensitivity
	Generations *analysis.GenerationAnalyzer
	Voter       *voterreach.Service
	Logger      calculation.Logger

	// baseCtx bounds long-running handlers; cancelled on shutdown.
	baseCtx context.Context
}

// New wires the simulator components for cfg. The voter dataset is read from
// cfg.VoterDataDir.
func New(cfg config.ServerConfig, logger calculation.Logger) (*Server, error) {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	ds, err := voterreach.LoadDataset(cfg.VoterDataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load voter data: %w", err)
	}

	projector := calculation.NewProjector()
	mc := calculation.NewMonteCarloSimulator()
	mc.SetLogger(logger)
	models := analysis.NewModelStore(cfg.ImportanceModelPath)
	models.Logger = logger

	return &Server{
		Config:      cfg,
		Projector:   projector,
		MonteCarlo:  mc,
		Sensitivity: analysis.NewSensitivity(models),
		Generations: analysis.NewGenerationAnalyzer(),
		Voter:       voterreach.NewService(ds),
		Logger:      logger,
		baseCtx:     context.Background(),
	}, nil
}

// Handler returns the routed request handler with middleware applied.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.recoverPanic(s.withRequestID(s.withCORS(s.logRequests(s.route))))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	baseCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.baseCtx = baseCtx

	if spec := s.Config.VoterReloadCron; spec != "" {
		sched := NewScheduler(s.Voter, s.Config.VoterDataDir, s.Logger)
		if err := sched.RegisterVoterReload(spec); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         ServiceName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Infof("%s listening on %s", ServiceName, s.Config.Addr())
		errCh <- srv.ListenAndServe(s.Config.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.Logger.Infof("shutting down")
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (s *Server) context() context.Context {
	if s.baseCtx == nil {
		return context.Background()
	}
	return s.baseCtx
}
