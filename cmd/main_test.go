package main

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/geolocate/internal/geocoding"
	"github.com/UnknownOlympus/geolocate/internal/metrics"
	"github.com/UnknownOlympus/geolocate/internal/models"
	"github.com/UnknownOlympus/geolocate/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	t.Run("plain address", func(t *testing.T) {
		req, err := parseArgs([]string{"-address", "1600 Amphitheatre Parkway"}, io.Discard)

		require.NoError(t, err)
		require.NotNil(t, req.address)
		require.Nil(t, req.latlng)
		wire, err := req.address.Wire()
		require.NoError(t, err)
		assert.Equal(t, "1600 Amphitheatre Parkway", wire)
	})

	t.Run("ordered fields", func(t *testing.T) {
		req, err := parseArgs(
			[]string{"-field", "street=1600 Amphitheatre", "-field", "city=Mountain View", "-field", "USA"},
			io.Discard,
		)

		require.NoError(t, err)
		require.NotNil(t, req.address)
		wire, err := req.address.Wire()
		require.NoError(t, err)
		assert.Equal(t, "1600 Amphitheatre, Mountain View, USA", wire)
	})

	t.Run("coordinates", func(t *testing.T) {
		req, err := parseArgs([]string{"-latlng", "40.7142,-73.9614"}, io.Discard)

		require.NoError(t, err)
		require.NotNil(t, req.latlng)
		wire, err := req.latlng.Wire()
		require.NoError(t, err)
		assert.Equal(t, "40.7142, -73.9614", wire)
	})

	t.Run("coordinates in wire format", func(t *testing.T) {
		req, err := parseArgs([]string{"-latlng", "40.7142, -73.9614"}, io.Discard)

		require.NoError(t, err)
		require.NotNil(t, req.latlng)
		wire, err := req.latlng.Wire()
		require.NoError(t, err)
		assert.Equal(t, "40.7142, -73.9614", wire)
	})

	for name, value := range map[string]string{
		"single number":     "40.7142",
		"three numbers":     "1,2,3",
		"bad latitude":      "north,-73.9614",
		"bad longitude":     "40.7142,west",
		"empty longitude":   "40.7142,",
		"only a comma":      ",",
		"whitespace inside": "40.7142, -73.96 14",
	} {
		t.Run("malformed coordinates: "+name, func(t *testing.T) {
			req, err := parseArgs([]string{"-latlng", value}, io.Discard)

			require.ErrorIs(t, err, geocoding.ErrInvalidInput)
			assert.Nil(t, req.latlng)
		})
	}

	t.Run("no mode", func(t *testing.T) {
		_, err := parseArgs(nil, io.Discard)

		require.ErrorIs(t, err, errUsage)
	})

	t.Run("two modes", func(t *testing.T) {
		_, err := parseArgs([]string{"-address", "Kyiv", "-latlng", "50.45,30.52"}, io.Discard)

		require.ErrorIs(t, err, errUsage)
	})
}

func TestRun(t *testing.T) {
	ctx := t.Context()
	location := &models.Location{
		Coordinates: models.Coordinates{Latitude: 1, Longitude: 2},
		PostalCode:  "94043",
		Address:     "X",
	}

	t.Run("forward geocoding", func(t *testing.T) {
		geocoder := mocks.NewGeocoder(t)
		query := geocoding.AddressText("any")
		geocoder.On("FindGeocode", mock.Anything, query).Return(location, nil).Once()

		var out bytes.Buffer
		err := run(ctx, geocoder, request{address: &query}, &out)

		require.NoError(t, err)
		assert.JSONEq(t, `{"lat":1,"lng":2,"postalCode":"94043","address":"X"}`, out.String())
	})

	t.Run("reverse geocoding", func(t *testing.T) {
		geocoder := mocks.NewGeocoder(t)
		latlng := geocoding.LatLngPair(1, 2)
		geocoder.On("ReverseGeocode", mock.Anything, latlng).Return(location, nil).Once()

		var out bytes.Buffer
		err := run(ctx, geocoder, request{latlng: &latlng}, &out)

		require.NoError(t, err)
		assert.JSONEq(t, `{"lat":1,"lng":2,"postalCode":"94043","address":"X"}`, out.String())
	})

	t.Run("geocoder error", func(t *testing.T) {
		geocoder := mocks.NewGeocoder(t)
		query := geocoding.AddressText("nowhere")
		geocoder.On("FindGeocode", mock.Anything, query).Return(nil, geocoding.ErrNoResults).Once()

		var out bytes.Buffer
		err := run(ctx, geocoder, request{address: &query}, &out)

		require.ErrorIs(t, err, geocoding.ErrNoResults)
		assert.Empty(t, out.String())
	})

	t.Run("empty request", func(t *testing.T) {
		err := run(ctx, mocks.NewGeocoder(t), request{}, io.Discard)

		require.ErrorIs(t, err, errUsage)
	})
}

func TestLogMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)
	appMetrics.Observe("find", metrics.StatusSuccess, 0.5)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logMetrics(t.Context(), logger, reg)

	assert.Contains(t, buf.String(), "metric=geocoding_requests_total")
	assert.Contains(t, buf.String(), "status=success")
	assert.Contains(t, buf.String(), "metric=geocoding_request_duration_seconds")
	assert.Contains(t, buf.String(), "count=1")
}

func TestSetupLogger(t *testing.T) {
	for _, env := range []string{envLocal, envDev, envProd, "unknown"} {
		assert.NotNil(t, setupLogger(env), env)
	}
}
