package session

import (
	"context"
	"sync"
	"time"

	"entregas/internal/deliveries"
	"entregas/internal/metrics"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Fetcher supplies raw records from the delivery API.
type Fetcher interface {
	FetchRaw(ctx context.Context) ([]deliveries.RawRecord, error)
}

// Store owns the session-lifetime dataset: Empty until the first successful
// load, then Loaded until replaced by the next successful load. A failed
// reload never touches the previously loaded dataset.
type Store struct {
	fetcher Fetcher
	loc     *time.Location

	group singleflight.Group

	mu       sync.RWMutex
	ds       *deliveries.Dataset
	loadedAt time.Time
}

// NewStore creates an empty Store.
func NewStore(fetcher Fetcher, loc *time.Location) *Store {
	return &Store{fetcher: fetcher, loc: loc}
}

// Reload fetches the dataset and atomically replaces the current one,
// returning the new record count. Concurrent reload triggers collapse into a
// single fetch.
func (s *Store) Reload(ctx context.Context) (int, error) {
	v, err, shared := s.group.Do("reload", func() (any, error) {
		metrics.LoadAttempts.Inc()

		raws, err := s.fetcher.FetchRaw(ctx)
		if err != nil {
			metrics.LoadFailures.Inc()
			log.Error().Err(err).Msg("Dataset reload failed, keeping previous dataset")
			return nil, err
		}

		ds := deliveries.Build(raws, s.loc)

		s.mu.Lock()
		s.ds = &ds
		s.loadedAt = time.Now()
		s.mu.Unlock()

		metrics.RecordsLoaded.Set(float64(ds.Len()))
		log.Info().Int("records", ds.Len()).Msg("Dataset loaded")
		return ds.Len(), nil
	})
	if err != nil {
		return 0, err
	}
	if shared {
		log.Debug().Msg("Reload collapsed into concurrent fetch")
	}
	return v.(int), nil
}

// Dataset returns the currently loaded dataset, or false while Empty.
func (s *Store) Dataset() (*deliveries.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds, s.ds != nil
}

// LoadedAt returns when the current dataset was loaded; zero while Empty.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Location returns the configured local timezone.
func (s *Store) Location() *time.Location {
	return s.loc
}
