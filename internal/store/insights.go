package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/weatherlab/weather-insights/internal/insight"
)

// InsightStore is a concurrency-safe, append-only in-memory log of insight
// snapshots. Snapshots are never updated or deleted; "latest" is always the
// tail of the log, not a separate pointer.
type InsightStore struct {
	mu sync.RWMutex

	insights []insight.Insight
}

// NewInsightStore creates an empty InsightStore.
func NewInsightStore() *InsightStore {
	return &InsightStore{}
}

// Append persists a new immutable snapshot. The store assigns the identity
// and the generation timestamp; whatever the caller set on those fields is
// overwritten.
func (s *InsightStore) Append(in insight.Insight) (insight.Insight, error) {
	in.ID = uuid.NewString()
	in.GeneratedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.insights = append(s.insights, in)
	return in, nil
}

// Latest returns the most recently appended snapshot. The second return
// value is false when no insight has been generated yet; that is not an
// error condition.
func (s *InsightStore) Latest() (insight.Insight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.insights) == 0 {
		return insight.Insight{}, false
	}
	return s.insights[len(s.insights)-1], true
}
