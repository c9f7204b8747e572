package services

import (
	"context"
	"fmt"
	"time"

	"garagepro-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler triggers the daily run for every tenant on a cron spec.
type Scheduler struct {
	cron    *cron.Cron
	service *ReminderService
	loc     *time.Location
	logger  zerolog.Logger
}

func NewScheduler(service *ReminderService, spec string, loc *time.Location, logger zerolog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		service: service,
		loc:     loc,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(spec, s.runDaily); err != nil {
		return nil, fmt.Errorf("invalid reminder cron %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("Reminder scheduler started")
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runDaily() {
	day := utils.Today(s.loc)
	s.logger.Info().Str("date", utils.FormatDay(day)).Msg("Starting daily reminder processing")
	if err := s.service.RunAllTenants(context.Background(), day); err != nil {
		s.logger.Error().Err(err).Msg("daily reminder processing finished with errors")
		return
	}
	s.logger.Info().Msg("Daily reminder processing completed")
}
