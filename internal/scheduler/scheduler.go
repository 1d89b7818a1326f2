package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Locker keeps two instances from running the same job at once. A nil
// Locker runs every job locally.
type Locker interface {
	TryLock(ctx context.Context, name string, ttl time.Duration) (release func(), ok bool, err error)
}

type Job func(ctx context.Context) error

type Scheduler struct {
	cron   *cron.Cron
	locker Locker
	ctx    context.Context
}

func New(loc *time.Location, locker Locker) *Scheduler {
	logger := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		locker: locker,
		ctx:    context.Background(),
	}
}

// Add registers job under every spec. lockTTL bounds how long a crashed
// holder can block other instances.
func (s *Scheduler) Add(name string, specs []string, lockTTL time.Duration, job Job) error {
	for _, spec := range specs {
		if _, err := s.cron.AddFunc(spec, func() { s.run(name, lockTTL, job) }); err != nil {
			return fmt.Errorf("schedule %s %q: %w", name, spec, err)
		}
	}
	return nil
}

func (s *Scheduler) run(name string, lockTTL time.Duration, job Job) {
	ctx := s.ctx

	if s.locker != nil {
		release, ok, err := s.locker.TryLock(ctx, name, lockTTL)
		if err != nil {
			log.Error().Err(err).Str("job", name).Msg("job lock failed")
			return
		}
		if !ok {
			log.Debug().Str("job", name).Msg("job held elsewhere, skipping")
			return
		}
		defer release()
	}

	start := time.Now()
	if err := job(ctx); err != nil {
		log.Error().Err(err).Str("job", name).Msg("job failed")
		return
	}
	log.Debug().Str("job", name).Dur("took", time.Since(start)).Msg("job finished")
}

// Run starts the scheduler and blocks until ctx is done, then waits for
// running jobs.
func (s *Scheduler) Run(ctx context.Context) error {
	s.ctx = ctx
	s.cron.Start()
	log.Info().Int("entries", len(s.cron.Entries())).Msg("scheduler started")

	<-ctx.Done()

	<-s.cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
	return nil
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
