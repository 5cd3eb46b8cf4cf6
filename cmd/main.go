package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/UnknownOlympus/geolocate/internal/config"
	"github.com/UnknownOlympus/geolocate/internal/geocoding"
	"github.com/UnknownOlympus/geolocate/internal/metrics"
	"github.com/UnknownOlympus/geolocate/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

var errUsage = errors.New("exactly one of -address, -field or -latlng is required")

// request is a parsed command line: either an address or a coordinate pair.
type request struct {
	address *geocoding.AddressQuery
	latlng  *geocoding.LatLng
}

// fieldFlags collects repeated -field key=value flags in order.
type fieldFlags []geocoding.AddressField

func (f *fieldFlags) String() string {
	values := make([]string, 0, len(*f))
	for _, field := range *f {
		values = append(values, field.Key+"="+field.Value)
	}
	return strings.Join(values, ",")
}

func (f *fieldFlags) Set(value string) error {
	key, val, found := strings.Cut(value, "=")
	if !found {
		key, val = "", value
	}
	*f = append(*f, geocoding.AddressField{Key: key, Value: val})
	return nil
}

// main is the entry point of the application.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	req, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("Invalid arguments: %v", err)
	}

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)

	client, err := geocoding.NewClient(geocoding.ClientConfig{
		APIKey:       cfg.APIKey,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scheme:       cfg.Scheme,
		Timeout:      cfg.Timeout,
		RetryTimeout: cfg.RetryTimeout,
		Logger:       logger,
		Metrics:      appMetrics,
	})
	if err != nil {
		log.Fatalf("Failed to create geocoding client: %v", err)
	}

	runErr := run(ctx, client, req, os.Stdout)

	if cfg.Env == envLocal {
		logMetrics(ctx, logger, reg)
	}

	if runErr != nil {
		logger.ErrorContext(ctx, "Geocoding failed", "error", runErr)
		stop()
		os.Exit(1)
	}
}

// parseArgs turns command line arguments into a request.
func parseArgs(args []string, output io.Writer) (request, error) {
	var (
		address string
		latlng  string
		fields  fieldFlags
	)

	flags := flag.NewFlagSet("geolocate", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&address, "address", "", "address to geocode")
	flags.Var(&fields, "field", "structured address part as key=value, repeat in order")
	flags.StringVar(&latlng, "latlng", "", "coordinates to reverse geocode, as lat,lng")

	if err := flags.Parse(args); err != nil {
		return request{}, err
	}

	modes := 0
	for _, set := range []bool{address != "", len(fields) > 0, latlng != ""} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return request{}, errUsage
	}

	switch {
	case address != "":
		query := geocoding.AddressText(address)
		return request{address: &query}, nil
	case len(fields) > 0:
		query := geocoding.AddressFields(fields...)
		return request{address: &query}, nil
	default:
		pair, err := parseLatLng(latlng)
		if err != nil {
			return request{}, err
		}
		return request{latlng: &pair}, nil
	}
}

// parseLatLng reads "lat,lng" or "lat, lng" into a coordinate pair.
func parseLatLng(value string) (geocoding.LatLng, error) {
	latText, lngText, found := strings.Cut(value, ",")
	if !found || strings.Contains(lngText, ",") {
		return geocoding.LatLng{}, fmt.Errorf(
			"%w: latlng %q must be two comma-separated numbers", geocoding.ErrInvalidInput, value,
		)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil {
		return geocoding.LatLng{}, fmt.Errorf("%w: invalid latitude: %w", geocoding.ErrInvalidInput, err)
	}

	lng, err := strconv.ParseFloat(strings.TrimSpace(lngText), 64)
	if err != nil {
		return geocoding.LatLng{}, fmt.Errorf("%w: invalid longitude: %w", geocoding.ErrInvalidInput, err)
	}

	return geocoding.LatLngPair(lat, lng), nil
}

// run resolves the request and writes the resulting location as JSON.
func run(ctx context.Context, geocoder geocoding.Geocoder, req request, out io.Writer) error {
	var err error
	var location *models.Location

	switch {
	case req.address != nil:
		location, err = geocoder.FindGeocode(ctx, *req.address)
	case req.latlng != nil:
		location, err = geocoder.ReverseGeocode(ctx, *req.latlng)
	default:
		return errUsage
	}
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err = encoder.Encode(location); err != nil {
		return fmt.Errorf("failed to write location: %w", err)
	}

	return nil
}

// logMetrics writes the collected request metrics to the debug log.
func logMetrics(ctx context.Context, log *slog.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		log.ErrorContext(ctx, "failed to gather metrics", "error", err)
		return
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			attrs := []any{"metric", family.GetName()}
			for _, label := range metric.GetLabel() {
				attrs = append(attrs, label.GetName(), label.GetValue())
			}
			if counter := metric.GetCounter(); counter != nil {
				attrs = append(attrs, "value", counter.GetValue())
			}
			if histogram := metric.GetHistogram(); histogram != nil {
				attrs = append(attrs, "count", histogram.GetSampleCount(), "sum", histogram.GetSampleSum())
			}
			log.DebugContext(ctx, "Request metrics", attrs...)
		}
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
// Logs go to stderr so stdout only carries the result.
func setupLogger(env string) *slog.Logger {
	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}

	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn, ReplaceAttr: dropTime}))
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError, ReplaceAttr: dropTime}))
	log.Error("Unknown env, logging errors only.", slog.String("env", env),
		slog.String("available_envs", "local, development, production"))

	return log
}
