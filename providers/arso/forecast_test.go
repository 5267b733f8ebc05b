package arso

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastPayload = `{
	"observation": {
		"features": [{
			"properties": {
				"country": "SI", "title": "Celje", "id": "SI_CELJE",
				"days": [{
					"date": "2021-04-11",
					"timeline": [{
						"valid": "2021-04-11T14:00:00+00:00",
						"t": "12",
						"clouds_icon_wwsyn_icon": "prevCloudy_day",
						"clouds_shortText": "pretežno oblačno",
						"ff_shortText": "šibek Z",
						"ff_val": "9",
						"rh_shortText": "nizka",
						"rh": "44"
					}]
				}]
			}
		}]
	},
	"forecast1h": {
		"features": [{
			"properties": {
				"country": "SI", "title": "Celje", "id": "SI_CELJE",
				"days": [{
					"date": "2021-04-11",
					"timeline": [
						{"valid": "2021-04-11T14:00:00+00:00", "t": "12", "ff_val": "9", "rh": "44", "clouds_icon_wwsyn_icon": "prevCloudy_day"},
						{"valid": "2021-04-11T15:00:00+00:00", "t": "13", "ff_val": "11", "rh": "41", "clouds_icon_wwsyn_icon": "overcast_day"}
					]
				}]
			}
		}]
	},
	"forecast24h": {
		"features": [{
			"properties": {
				"country": "SI", "title": "Celje", "id": "SI_CELJE",
				"days": [
					{"date": "2021-04-11", "timeline": [{"tnsyn": "4", "txsyn": "13", "clouds_shortText": "oblačno", "clouds_icon_wwsyn_icon": "overcast"}]},
					{"date": "2021-04-12", "timeline": [{"tnsyn": "3", "txsyn": "11", "clouds_shortText": "dež", "clouds_icon_wwsyn_icon": "rain"}]}
				]
			}
		}]
	}
}`

func newForecastServer(t *testing.T, payload string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/location/", r.URL.Path)
		assert.Equal(t, "sl", r.URL.Query().Get("lang"))
		assert.Equal(t, "SI_CELJE", r.URL.Query().Get("location"))
		w.WriteHeader(status)
		w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchForecast(t *testing.T) {
	srv := newForecastServer(t, forecastPayload, http.StatusOK)
	instant := time.Date(2021, time.April, 11, 14, 10, 0, 0, time.UTC)
	c := New(
		WithBaseURL(srv.URL+"/"),
		WithClock(func() time.Time { return instant }),
	)

	forecast, err := c.FetchForecast(context.Background(), "SI_CELJE")
	require.NoError(t, err)

	assert.Equal(t, "CELJE", forecast.LocationName)
	require.NotNil(t, forecast.Current.TemperatureC)
	assert.Equal(t, 12.0, *forecast.Current.TemperatureC)

	require.Len(t, forecast.Hourly, 2)
	assert.True(t, forecast.Hourly[0].IsCurrentHour)
	assert.False(t, forecast.Hourly[1].IsCurrentHour)

	require.Len(t, forecast.Daily, 1)
	assert.Equal(t, "dež", forecast.Daily[0].Condition)
	assert.Equal(t, DefaultImageBase+"rain.svg", forecast.Daily[0].IconURL)
}

func TestFetchForecastEmptyFeedIsMalformed(t *testing.T) {
	srv := newForecastServer(t, `{"observation": {"features": []}, "forecast1h": {"features": []}, "forecast24h": {"features": []}}`, http.StatusOK)
	c := New(WithBaseURL(srv.URL + "/"))

	_, err := c.FetchForecast(context.Background(), "SI_CELJE")
	assert.ErrorIs(t, err, ErrMalformedPayload)
	assert.NotErrorIs(t, err, ErrFetchFailed)
}

func TestFetchForecastTransportFailures(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		srv := newForecastServer(t, "boom", http.StatusInternalServerError)
		c := New(WithBaseURL(srv.URL + "/"))

		_, err := c.FetchForecast(context.Background(), "SI_CELJE")
		assert.ErrorIs(t, err, ErrFetchFailed)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := newForecastServer(t, forecastPayload, http.StatusOK)
		srv.Close()
		c := New(WithBaseURL(srv.URL + "/"))

		_, err := c.FetchForecast(context.Background(), "SI_CELJE")
		assert.ErrorIs(t, err, ErrFetchFailed)
	})
}
