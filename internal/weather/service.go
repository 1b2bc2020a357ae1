package weather

import (
	"fmt"
)

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	SaveReading(r Reading)
	Recent(n int) []Reading
}

// Service owns reading ingestion and window queries on top of the store.
type Service struct {
	store Store
}

// NewService creates a new Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Ingest normalizes and persists a single reading.
func (s *Service) Ingest(r Reading) error {
	if r.Timestamp.IsZero() {
		return fmt.Errorf("reading timestamp is required")
	}
	r.Timestamp = r.Timestamp.UTC()
	s.store.SaveReading(r)
	return nil
}

// RecentWindow returns up to n of the most recent readings ordered by
// timestamp descending. May return fewer than n, or none.
func (s *Service) RecentWindow(n int) []Reading {
	if n <= 0 {
		return nil
	}
	return s.store.Recent(n)
}
