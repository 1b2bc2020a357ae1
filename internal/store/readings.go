package store

import (
	"sort"
	"sync"
	"time"

	"github.com/weatherlab/weather-insights/internal/weather"
)

// ReadingStore is a concurrency-safe in-memory log of sensor readings.
type ReadingStore struct {
	mu sync.RWMutex

	readings []weather.Reading

	// retention configuration
	maxHistory int           // max number of readings kept
	maxAge     time.Duration // optional max age for readings
}

// NewReadingStore creates a new ReadingStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewReadingStore(maxHistory int, maxAge time.Duration) *ReadingStore {
	return &ReadingStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveReading appends a new reading and enforces retention.
func (s *ReadingStore) SaveReading(r weather.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.readings = append(s.readings, r)

	// Readings may arrive out of order (multiple collectors); keep the log
	// sorted by timestamp ascending so retention trims the oldest first.
	sort.SliceStable(s.readings, func(i, j int) bool {
		return s.readings[i].Timestamp.Before(s.readings[j].Timestamp)
	})

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.readings) > s.maxHistory {
		over := len(s.readings) - s.maxHistory
		s.readings = s.readings[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.readings); i++ {
			if !s.readings[i].Timestamp.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			s.readings = s.readings[i:]
		}
	}
}

// Recent returns up to n readings ordered by timestamp descending.
func (s *ReadingStore) Recent(n int) []weather.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || len(s.readings) == 0 {
		return nil
	}
	if n > len(s.readings) {
		n = len(s.readings)
	}

	result := make([]weather.Reading, 0, n)
	for i := len(s.readings) - 1; i >= len(s.readings)-n; i-- {
		result = append(result, s.readings[i])
	}
	return result
}
