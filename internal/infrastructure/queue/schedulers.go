package queue

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/generation/job"
	"catalog-backend/internal/shared"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redis asynq.RedisClientOpt) *Scheduler {
	scheduler := asynq.NewScheduler(
		redis,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)
	return &Scheduler{scheduler: scheduler}
}

// ================================================
// JOB: Illustrate Catalog (cron from WORKER_ILLUSTRATE_CRON)
// ================================================
// Backfills superhero portraits and covers for rows created by manual CRUD
// or by cascades whose image calls failed. Existing images are skipped.
func (s *Scheduler) RegisterIllustrationJob(cronspec string) error {
	if cronspec == "" {
		log.Info().Msg("Illustration backfill disabled (WORKER_ILLUSTRATE_CRON is empty)")
		return nil
	}

	task, err := job.NewIllustrateCatalogTask("scheduler")
	if err != nil {
		return err
	}

	if _, err := s.scheduler.Register(cronspec, task, asynq.Queue(shared.QueueGeneration)); err != nil {
		return fmt.Errorf("register %s: %w", shared.TypeIllustrateCatalog, err)
	}

	log.Info().Str("cron", cronspec).Msg("✓ Registered IllustrateCatalog")
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
