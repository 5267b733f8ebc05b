package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"arso-weather/datasource"
	"arso-weather/models"
)

// Session coordinates the two providers on behalf of a UI: per-keystroke
// location searches with a stale-response guard, selection of a location
// with atomic forecast replacement, and save/restore of the selection
// across restarts.
type Session struct {
	resolver datasource.LocationResolver
	source   datasource.ForecastSource
	cell     *Cell
	store    *Store // nil disables persistence

	searchSeq atomic.Uint64

	mutex      sync.RWMutex
	selectedID string
}

// New creates a session around a resolver and a forecast source.
// store may be nil when the selection should not survive restarts.
func New(resolver datasource.LocationResolver, source datasource.ForecastSource, store *Store) *Session {
	return &Session{
		resolver: resolver,
		source:   source,
		cell:     NewCell(),
		store:    store,
	}
}

// Cell exposes the forecast cell for subscribers
func (s *Session) Cell() *Cell {
	return s.cell
}

// Search resolves a query, dropping the response if a newer search was
// issued while it was in flight. Overlapping searches carry monotonically
// increasing sequence numbers; only the response matching the latest issued
// sequence is delivered, so a slow early response can never overwrite a
// fresher result. The second return value is false for a dropped response.
//
// A failed search surfaces as zero matches: the UI treats "no results" and
// "search failed" identically, and the distinction lives in the log.
func (s *Session) Search(ctx context.Context, query string) ([]models.LocationMatch, bool) {
	seq := s.searchSeq.Add(1)

	matches, err := s.resolver.Search(ctx, query)

	if s.searchSeq.Load() != seq {
		slog.Debug("dropping stale search response", "query", query, "seq", seq)
		return nil, false
	}

	if err != nil {
		slog.Warn("location search failed", "query", query, "error", err)
		return nil, true
	}

	return matches, true
}

// Select fetches the forecast for a location and makes it current. On
// failure the previously displayed forecast is retained untouched; the
// error carries the taxonomy of the provider for diagnostics.
func (s *Session) Select(ctx context.Context, locationID string) error {
	forecast, err := s.source.FetchForecast(ctx, locationID)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	s.selectedID = locationID
	s.mutex.Unlock()

	s.cell.Replace(forecast)

	if s.store != nil {
		if err := s.store.Save(locationID); err != nil {
			slog.Warn("failed to persist selected location", "location", locationID, "error", err)
		}
	}

	return nil
}

// SelectedID returns the currently selected location identifier
func (s *Session) SelectedID() (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.selectedID, s.selectedID != ""
}

// Refresh re-fetches the forecast for the current selection. A no-op when
// nothing is selected.
func (s *Session) Refresh(ctx context.Context) error {
	id, ok := s.SelectedID()
	if !ok {
		return nil
	}
	return s.Select(ctx, id)
}

// Restore re-applies a selection persisted by an earlier run, exactly as if
// the location had just been picked. Returns false when nothing was saved.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	if s.store == nil {
		return false, nil
	}

	id, ok, err := s.store.Load()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := s.Select(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}
