package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/weatherlab/weather-insights/internal/insight"
)

// BackoffConfig controls the retry behaviour for failed generation runs.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Scheduler periodically runs the insight pipeline.
//
// Retry policy: only generation failures (provider/transport) are retried,
// with exponential backoff. Extraction and validation failures indicate a
// response-shape problem that a naive retry will not fix; those are logged
// and left for the next scheduled run.
type Scheduler struct {
	scheduler *gocron.Scheduler
	insights  *insight.Service
	interval  time.Duration
	backoff   BackoffConfig
}

// New creates a new Scheduler.
func New(insights *insight.Service, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		insights:  insights,
		interval:  interval,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 5 * time.Second,
			MaxInterval:     1 * time.Minute,
		},
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running insight generation job")
		s.runOnce()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) runOnce() {
	wait := s.backoff.InitialInterval

	for attempt := 0; ; attempt++ {
		stored, err := s.insights.Generate(context.Background())
		if err == nil {
			log.Printf("scheduler: insight %s persisted", stored.ID)
			return
		}

		if errors.Is(err, insight.ErrEmptyWindow) {
			log.Println("scheduler: no readings yet; skipping run")
			return
		}

		var genErr *insight.GenerationError
		if !errors.As(err, &genErr) {
			log.Printf("scheduler: insight run failed, not retryable: %v", err)
			return
		}

		if attempt >= s.backoff.MaxRetries {
			log.Printf("scheduler: giving up after %d attempts: %v", attempt+1, err)
			return
		}

		log.Printf("scheduler: generation failed (attempt %d), retrying in %s: %v", attempt+1, wait, err)
		time.Sleep(wait)

		wait *= 2
		if wait > s.backoff.MaxInterval {
			wait = s.backoff.MaxInterval
		}
	}
}
