package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"arso-weather/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver returns canned matches, optionally blocking one query until
// released so tests can interleave overlapping searches
type fakeResolver struct {
	matches    map[string][]models.LocationMatch
	err        error
	blockQuery string
	entered    chan string // receives the query when the blocking call starts
	release    chan struct{}
}

func (f *fakeResolver) Search(ctx context.Context, query string) ([]models.LocationMatch, error) {
	if f.entered != nil && query == f.blockQuery {
		f.entered <- query
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.matches[query], nil
}

func (f *fakeResolver) Name() string { return "fake" }

// fakeSource maps location ids to forecasts
type fakeSource struct {
	forecasts map[string]models.Forecast
	calls     int
}

func (f *fakeSource) FetchForecast(ctx context.Context, locationID string) (models.Forecast, error) {
	f.calls++
	forecast, ok := f.forecasts[locationID]
	if !ok {
		return models.Forecast{}, errors.New("unknown location")
	}
	return forecast, nil
}

func (f *fakeSource) Name() string { return "fake" }

func namedForecast(name string) models.Forecast {
	return models.Forecast{
		LocationName: name,
		AsOf:         time.Date(2021, time.April, 11, 0, 0, 0, 0, time.UTC),
	}
}

func TestSearchDeliversLatest(t *testing.T) {
	resolver := &fakeResolver{matches: map[string][]models.LocationMatch{
		"ce": {{ID: "SI_CELJE", Title: "Celje"}},
	}}
	sess := New(resolver, &fakeSource{}, nil)

	matches, ok := sess.Search(context.Background(), "ce")
	require.True(t, ok)
	require.Len(t, matches, 1)
	assert.Equal(t, "SI_CELJE", matches[0].ID)
}

func TestSearchDropsStaleResponse(t *testing.T) {
	blocking := &fakeResolver{
		matches: map[string][]models.LocationMatch{
			"ce":  {{ID: "STALE", Title: "stale"}},
			"cel": {{ID: "FRESH", Title: "fresh"}},
		},
		blockQuery: "ce",
		entered:    make(chan string),
		release:    make(chan struct{}),
	}
	sess := New(blocking, &fakeSource{}, nil)

	type result struct {
		matches []models.LocationMatch
		ok      bool
	}
	firstDone := make(chan result)

	// First keystroke: the upstream call hangs
	go func() {
		matches, ok := sess.Search(context.Background(), "ce")
		firstDone <- result{matches, ok}
	}()
	<-blocking.entered

	// Second keystroke completes while the first is still in flight
	second := result{}
	second.matches, second.ok = sess.Search(context.Background(), "cel")

	// Now let the superseded call finish
	blocking.release <- struct{}{}
	first := <-firstDone

	require.True(t, second.ok)
	require.Len(t, second.matches, 1)
	assert.Equal(t, "FRESH", second.matches[0].ID)

	// The slow early response must not be delivered
	assert.False(t, first.ok)
	assert.Nil(t, first.matches)
}

func TestSearchFailureSurfacesAsEmpty(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("connection reset")}
	sess := New(resolver, &fakeSource{}, nil)

	matches, ok := sess.Search(context.Background(), "ce")
	assert.True(t, ok)
	assert.Empty(t, matches)
}

func TestSelectReplacesForecast(t *testing.T) {
	source := &fakeSource{forecasts: map[string]models.Forecast{
		"a": namedForecast("A"),
		"b": namedForecast("B"),
	}}
	sess := New(&fakeResolver{}, source, nil)

	require.NoError(t, sess.Select(context.Background(), "a"))
	current, ok := sess.Cell().Current()
	require.True(t, ok)
	assert.Equal(t, "A", current.LocationName)

	require.NoError(t, sess.Select(context.Background(), "b"))
	current, _ = sess.Cell().Current()
	assert.Equal(t, "B", current.LocationName)

	id, ok := sess.SelectedID()
	require.True(t, ok)
	assert.Equal(t, "b", id)
}

func TestSelectFailureRetainsPreviousForecast(t *testing.T) {
	source := &fakeSource{forecasts: map[string]models.Forecast{
		"a": namedForecast("A"),
	}}
	sess := New(&fakeResolver{}, source, nil)

	require.NoError(t, sess.Select(context.Background(), "a"))
	require.Error(t, sess.Select(context.Background(), "missing"))

	current, ok := sess.Cell().Current()
	require.True(t, ok)
	assert.Equal(t, "A", current.LocationName)

	id, _ := sess.SelectedID()
	assert.Equal(t, "a", id)
}

func TestRefreshRefetchesSelection(t *testing.T) {
	source := &fakeSource{forecasts: map[string]models.Forecast{
		"a": namedForecast("A"),
	}}
	sess := New(&fakeResolver{}, source, nil)

	// Nothing selected yet: a refresh is a no-op
	require.NoError(t, sess.Refresh(context.Background()))
	assert.Equal(t, 0, source.calls)

	require.NoError(t, sess.Select(context.Background(), "a"))
	require.NoError(t, sess.Refresh(context.Background()))
	assert.Equal(t, 2, source.calls)
}

func TestRestoreReappliesSavedSelection(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	source := &fakeSource{forecasts: map[string]models.Forecast{
		"a": namedForecast("A"),
	}}

	first := New(&fakeResolver{}, source, NewStore(statePath))
	require.NoError(t, first.Select(context.Background(), "a"))

	// A fresh session over the same state file picks up where we left off
	second := New(&fakeResolver{}, source, NewStore(statePath))
	restored, err := second.Restore(context.Background())
	require.NoError(t, err)
	require.True(t, restored)

	current, ok := second.Cell().Current()
	require.True(t, ok)
	assert.Equal(t, "A", current.LocationName)
}

func TestRestoreWithoutSavedState(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	sess := New(&fakeResolver{}, &fakeSource{}, NewStore(statePath))

	restored, err := sess.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, restored)
}
