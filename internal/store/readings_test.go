package store

import (
	"testing"
	"time"

	"github.com/weatherlab/weather-insights/internal/weather"
)

func TestRecentOrderedDescending(t *testing.T) {
	s := NewReadingStore(10, 0)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	// Save out of order on purpose.
	for _, offset := range []int{2, 0, 1} {
		s.SaveReading(weather.Reading{
			Timestamp:   base.Add(time.Duration(offset) * time.Hour),
			Temperature: float64(20 + offset),
		})
	}

	recent := s.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(recent))
	}
	if !recent[0].Timestamp.Equal(base.Add(2 * time.Hour)) {
		t.Fatalf("expected newest first, got %v", recent[0].Timestamp)
	}
	if !recent[0].Timestamp.After(recent[1].Timestamp) {
		t.Fatalf("expected descending order, got %v then %v", recent[0].Timestamp, recent[1].Timestamp)
	}
}

func TestRecentEmptyStore(t *testing.T) {
	s := NewReadingStore(10, 0)
	if got := s.Recent(5); got != nil {
		t.Fatalf("expected nil for empty store, got %v", got)
	}
}

func TestRetentionByCount(t *testing.T) {
	s := NewReadingStore(3, 0)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s.SaveReading(weather.Reading{Timestamp: base.Add(time.Duration(i) * time.Minute)})
	}

	recent := s.Recent(10)
	if len(recent) != 3 {
		t.Fatalf("expected retention to cap at 3 readings, got %d", len(recent))
	}
	// The oldest two must be the ones evicted.
	if !recent[len(recent)-1].Timestamp.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("expected oldest retained to be +2m, got %v", recent[len(recent)-1].Timestamp)
	}
}

func TestRetentionByAge(t *testing.T) {
	s := NewReadingStore(0, time.Hour)

	now := time.Now().UTC()
	s.SaveReading(weather.Reading{Timestamp: now.Add(-2 * time.Hour)})
	s.SaveReading(weather.Reading{Timestamp: now})

	recent := s.Recent(10)
	if len(recent) != 1 {
		t.Fatalf("expected stale reading to be evicted, got %d readings", len(recent))
	}
	if !recent[0].Timestamp.Equal(now) {
		t.Fatalf("expected the fresh reading to survive, got %v", recent[0].Timestamp)
	}
}
