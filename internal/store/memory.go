package store

import (
	"errors"
	"sync"
	"time"

	"github.com/urtzik/euskalmet-bridge/internal/forecast"
	"github.com/urtzik/euskalmet-bridge/internal/station"
)

var (
	// ErrNotFound is returned when no data is available for a given
	// station or location.
	ErrNotFound = errors.New("no data for requested key")
)

// readingHistory holds a time-ordered list of reading sets for a station.
type readingHistory struct {
	Sets []station.ReadingSet
}

// MemoryStore is a concurrency-safe in-memory store for the latest
// refresh results. A result is saved whole after a successful cycle and
// never merged with a previous cycle, so readers always observe one
// consistent snapshot.
type MemoryStore struct {
	mu sync.RWMutex

	// key: station id, value: reading history
	readings map[string]*readingHistory

	// key: location id, value: latest forecast bundle
	forecasts map[string]forecast.Bundle

	// retention configuration for reading history
	maxHistory int           // max number of reading sets per station
	maxAge     time.Duration // optional max age for reading sets
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		readings:   make(map[string]*readingHistory),
		forecasts:  make(map[string]forecast.Bundle),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveReadings appends a new reading set for a station and enforces
// retention.
func (s *MemoryStore) SaveReadings(set station.ReadingSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.readings[set.StationID]
	if !ok {
		history = &readingHistory{}
		s.readings[set.StationID] = history
	}

	history.Sets = append(history.Sets, set)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Sets) > s.maxHistory {
		over := len(history.Sets) - s.maxHistory
		history.Sets = history.Sets[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Sets); i++ {
			if !history.Sets[i].LastUpdate.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(history.Sets) {
			history.Sets = history.Sets[i:]
		}
	}
}

// LatestReadings returns the most recent reading set for a station.
func (s *MemoryStore) LatestReadings(stationID string) (station.ReadingSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.readings[stationID]
	if !ok || len(history.Sets) == 0 {
		return station.ReadingSet{}, ErrNotFound
	}
	return history.Sets[len(history.Sets)-1], nil
}

// ReadingsRange returns all reading sets for a station between from and
// to (inclusive).
func (s *MemoryStore) ReadingsRange(stationID string, from, to time.Time) ([]station.ReadingSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.readings[stationID]
	if !ok || len(history.Sets) == 0 {
		return nil, ErrNotFound
	}

	var result []station.ReadingSet
	for _, set := range history.Sets {
		if !set.LastUpdate.Before(from) && !set.LastUpdate.After(to) {
			result = append(result, set)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}

// SaveForecast replaces the stored bundle for a location.
func (s *MemoryStore) SaveForecast(bundle forecast.Bundle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forecasts[bundle.LocationID] = bundle
}

// LatestForecast returns the most recent bundle for a location.
func (s *MemoryStore) LatestForecast(locationID string) (forecast.Bundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bundle, ok := s.forecasts[locationID]
	if !ok {
		return forecast.Bundle{}, ErrNotFound
	}
	return bundle, nil
}
