package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/market/internal/config"
	"github.com/mamadbah2/market/internal/domain/models"
)

// ReportGenerator builds and stores a market report.
type ReportGenerator interface {
	Generate(ctx context.Context) (models.MarketReport, string, error)
}

// ReportDeliverer sends a report summary to its recipient.
type ReportDeliverer interface {
	DeliverReport(ctx context.Context, summary string) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	reporting ReportGenerator
	delivery  ReportDeliverer
	logger    *zap.Logger
}

// NewScheduler creates a scheduler running in the configured timezone. delivery may be
// nil, in which case reports are only stored.
func NewScheduler(cfg config.ReportingConfig, reporting ReportGenerator, delivery ReportDeliverer, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	if _, err := cron.ParseStandard(cfg.CronSchedule); err != nil {
		return nil, fmt.Errorf("parse cron schedule %q: %w", cfg.CronSchedule, err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		schedule:  cfg.CronSchedule,
		reporting: reporting,
		delivery:  delivery,
		logger:    logger,
	}, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.sendMarketReport); err != nil {
		return fmt.Errorf("schedule market report: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendMarketReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.RunReport(ctx); err != nil {
		s.logger.Error("scheduled market report failed", zap.Error(err))
	}
}

// RunReport generates a report and delivers its summary when delivery is configured.
func (s *Scheduler) RunReport(ctx context.Context) error {
	s.logger.Info("generating market report")

	report, summary, err := s.reporting.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generate market report: %w", err)
	}

	if s.delivery == nil {
		s.logger.Debug("report delivery disabled", zap.String("report_id", report.ID))
		return nil
	}

	if err := s.delivery.DeliverReport(ctx, summary); err != nil {
		return fmt.Errorf("deliver market report %s: %w", report.ID, err)
	}

	s.logger.Info("market report sent successfully", zap.String("report_id", report.ID))
	return nil
}
