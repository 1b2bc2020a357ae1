package insight

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/weatherlab/weather-insights/internal/weather"
)

// WindowProvider supplies the bounded reading window to analyze.
type WindowProvider interface {
	RecentWindow(n int) []weather.Reading
}

// Store is the append-only persistence contract for validated insights.
type Store interface {
	Append(in Insight) (Insight, error)
	Latest() (Insight, bool)
}

// Service runs the insight pipeline: reading window, prompt, generation,
// extraction, validation, persistence. Each stage either passes a cleaner
// artifact forward or fails the whole run; nothing partial is ever stored.
//
// Runs are not mutually exclusive. Two concurrent runs may both append, and
// Latest then resolves to whichever append committed last.
type Service struct {
	windows    WindowProvider
	generator  Generator
	store      Store
	windowSize int
	timeout    time.Duration
}

// NewService creates a pipeline service. windowSize bounds the reading
// window; timeout bounds a single generator call.
func NewService(windows WindowProvider, generator Generator, store Store, windowSize int, timeout time.Duration) *Service {
	return &Service{
		windows:    windows,
		generator:  generator,
		store:      store,
		windowSize: windowSize,
		timeout:    timeout,
	}
}

// Generate runs the pipeline once and returns the newly persisted insight.
// The run fails with one of the typed pipeline errors; no internal retries.
func (s *Service) Generate(ctx context.Context) (Insight, error) {
	readings := s.windows.RecentWindow(s.windowSize)
	if len(readings) == 0 {
		return Insight{}, ErrEmptyWindow
	}

	prompt, err := BuildPrompt(readings)
	if err != nil {
		return Insight{}, err
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.Generate(genCtx, prompt)
	if err != nil {
		var genErr *GenerationError
		if errors.As(err, &genErr) {
			return Insight{}, err
		}
		return Insight{}, &GenerationError{Err: err}
	}
	if strings.TrimSpace(raw) == "" {
		return Insight{}, ErrEmptyResponse
	}

	candidate, err := ExtractCandidate(raw)
	if err != nil {
		return Insight{}, err
	}

	validated, err := ValidateCandidate(candidate)
	if err != nil {
		return Insight{}, err
	}

	return s.store.Append(validated)
}

// Latest returns the most recently persisted insight, or false when none
// has been generated yet.
func (s *Service) Latest() (Insight, bool) {
	return s.store.Latest()
}
