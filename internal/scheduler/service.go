package scheduler

import (
	"context"
	"time"

	"github.com/brittbaker321/reddit-trend-tracker/internal/config"
	"github.com/brittbaker321/reddit-trend-tracker/internal/trends"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service handles scheduling of snapshot runs
type Service struct {
	config     *config.Config
	aggregator *trends.Service
	cron       *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, aggregator *trends.Service) *Service {
	return &Service{
		config:     cfg,
		aggregator: aggregator,
		cron:       cron.New(cron.WithSeconds(), cron.WithLocation(cfg.Location)),
	}
}

// Start begins the scheduled snapshot runs
func (s *Service) Start() error {
	_, err := s.cron.AddFunc(s.config.SnapshotSchedule, func() {
		logrus.Info("Starting scheduled snapshot run")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		if _, err := s.aggregator.Run(ctx, time.Now()); err != nil {
			logrus.Errorf("Scheduled snapshot run failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with spec %q in %s", s.config.SnapshotSchedule, s.config.TimeZone)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
