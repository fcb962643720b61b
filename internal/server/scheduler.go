package server

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/npfs/pension-simulator/internal/calculation"
	"github.com/npfs/pension-simulator/internal/voterreach"
)

// Scheduler runs the periodic maintenance tasks of the server.
type Scheduler struct {
	Cron    *cron.Cron
	Voter   *voterreach.Service
	DataDir string
	Logger  calculation.Logger
}

// NewScheduler creates a scheduler using six-field cron specs.
func NewScheduler(voter *voterreach.Service, dataDir string, logger calculation.Logger) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Voter:   voter,
		DataDir: dataDir,
		Logger:  logger,
	}
}

// RegisterVoterReload reloads the voter dataset on the given cron schedule.
func (s *Scheduler) RegisterVoterReload(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.ReloadVoterData); err != nil {
		return fmt.Errorf("register voter reload: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Infof("scheduler started")
}

// Stop stops the scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Infof("scheduler stopped")
}

// ReloadVoterData re-reads the voter data directory. The current dataset is
// kept when the files cannot be parsed.
func (s *Scheduler) ReloadVoterData() {
	ds, err := voterreach.LoadDataset(s.DataDir)
	if err != nil {
		s.Logger.Errorf("voter data reload: %v", err)
		return
	}
	s.Voter.Replace(ds)
	s.Logger.Infof("voter data reloaded: %d stations, %d ridership rows", len(ds.Stations), len(ds.Ridership))
}
