package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/UnknownOlympus/geolocate/internal/metrics"
	"github.com/UnknownOlympus/geolocate/internal/models"
	"googlemaps.github.io/maps"
)

// Client defaults.
const (
	DefaultScheme       = "https"
	DefaultRetryTimeout = 60 * time.Second
	// DefaultQueriesPerSecond is Google's documented limit. The client does not throttle.
	DefaultQueriesPerSecond = 50
)

const (
	apiHostPath  = "maps.googleapis.com/maps/api/geocode/json"
	apiKeyPrefix = "AIza"

	operationFind    = "find"
	operationReverse = "reverse"

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for creating a Google geocoding client.
type ClientConfig struct {
	APIKey       string           // API key, required unless ClientID and ClientSecret are set
	ClientID     string           // Premium plan client ID
	ClientSecret string           // Premium plan URL signing secret (URL-safe base64)
	Scheme       string           // URL scheme, "https" when empty
	Timeout      time.Duration    // Per-request timeout, zero means none
	RetryTimeout time.Duration    // Kept for callers that inspect it; requests are never retried
	Logger       *slog.Logger     // Receives a summary of every resolved location
	Metrics      *metrics.Metrics // Optional request metrics
}

// Client talks to the Google Maps Geocoding API. It holds no mutable state after
// construction and is safe for concurrent use if its HTTPClient is.
type Client struct {
	client       HTTPClient
	baseURL      string
	apiKey       string
	signer       *urlSigner
	timeout      time.Duration
	retryTimeout time.Duration
	log          *slog.Logger
	metrics      *metrics.Metrics
}

// geocodingResponse is the envelope returned by both forward and reverse geocoding.
type geocodingResponse struct {
	Results      []json.RawMessage `json:"results"`
	Status       string            `json:"status"`
	ErrorMessage string            `json:"error_message"`
}

// resultGeometry tells an absent location apart from one at 0,0.
type resultGeometry struct {
	Geometry *struct {
		Location *struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

func (g resultGeometry) complete() bool {
	return g.Geometry != nil && g.Geometry.Location != nil &&
		g.Geometry.Location.Lat != nil && g.Geometry.Location.Lng != nil
}

// NewClient validates the credentials in cfg and creates a client backed by a
// default http.Client.
func NewClient(cfg ClientConfig) (*Client, error) {
	return NewClientWithHTTPClient(cfg, &http.Client{})
}

// NewClientWithHTTPClient creates a client with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewClientWithHTTPClient(cfg ClientConfig, httpClient HTTPClient) (*Client, error) {
	if cfg.APIKey == "" && (cfg.ClientID == "" || cfg.ClientSecret == "") {
		return nil, fmt.Errorf(
			"%w: must provide API key or enterprise credentials when creating client", ErrConfiguration,
		)
	}

	if cfg.APIKey != "" && !strings.HasPrefix(cfg.APIKey, apiKeyPrefix) {
		return nil, fmt.Errorf("%w: invalid API key provided", ErrConfiguration)
	}

	var signer *urlSigner
	if cfg.APIKey == "" {
		var err error
		if signer, err = newURLSigner(cfg.ClientID, cfg.ClientSecret); err != nil {
			return nil, err
		}
	}

	scheme := cfg.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}

	retryTimeout := cfg.RetryTimeout
	if retryTimeout == 0 {
		retryTimeout = DefaultRetryTimeout
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Client{
		client:       httpClient,
		baseURL:      scheme + "://" + apiHostPath,
		apiKey:       cfg.APIKey,
		signer:       signer,
		timeout:      cfg.Timeout,
		retryTimeout: retryTimeout,
		log:          log,
		metrics:      cfg.Metrics,
	}, nil
}

// BaseURL returns the endpoint every request is sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RetryTimeout returns the configured retry timeout. Nothing in the client uses it.
func (c *Client) RetryTimeout() time.Duration {
	return c.retryTimeout
}

// FindGeocode resolves an address to the first location Google matches.
func (c *Client) FindGeocode(ctx context.Context, address AddressQuery) (*models.Location, error) {
	wire, err := address.Wire()
	if err != nil {
		c.metrics.Observe(operationFind, metrics.StatusInvalidInput, -1)
		return nil, err
	}

	c.log.DebugContext(ctx, "Geocoding using Google Maps", "address", wire)

	return c.geocode(ctx, operationFind, url.Values{"address": {wire}})
}

// ReverseGeocode resolves coordinates to the first address Google matches.
func (c *Client) ReverseGeocode(ctx context.Context, latlng LatLng) (*models.Location, error) {
	wire, err := latlng.Wire()
	if err != nil {
		c.metrics.Observe(operationReverse, metrics.StatusInvalidInput, -1)
		return nil, err
	}

	c.log.DebugContext(ctx, "Reverse geocoding using Google Maps", "latlng", wire)

	return c.geocode(ctx, operationReverse, url.Values{"latlng": {wire}})
}

func (c *Client) geocode(ctx context.Context, operation string, params url.Values) (*models.Location, error) {
	startTime := time.Now()
	result, err := c.fetchFirst(ctx, params)
	duration := time.Since(startTime).Seconds()

	if err != nil {
		c.metrics.Observe(operation, errorStatus(err), duration)
		c.log.DebugContext(ctx, "Geocoding request failed", "operation", operation, "error", err)
		return nil, err
	}
	c.metrics.Observe(operation, metrics.StatusSuccess, duration)

	location := toLocation(result)
	c.log.InfoContext(ctx, "Geocoded location",
		"lat", location.Latitude,
		"lng", location.Longitude,
		"address", location.Address)

	return location, nil
}

// fetchFirst issues one GET request and returns the first result of the response.
func (c *Client) fetchFirst(ctx context.Context, params url.Values) (*maps.GeocodingResult, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reqURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse base URL: %w", ErrConfiguration, err)
	}

	if c.signer != nil {
		reqURL.RawQuery = c.signer.sign(reqURL.Path, params)
	} else {
		params.Set("key", c.apiKey)
		reqURL.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log.ErrorContext(ctx, "Google Maps API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: API returned status %d: %s", ErrResponse, resp.StatusCode, string(body))
	}

	var response geocodingResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: failed to decode geocoding response: %w", ErrResponse, err)
	}

	switch response.Status {
	case statusOK, statusZeroResults, "":
	default:
		return nil, fmt.Errorf("%w: %s - %s", ErrResponse, response.Status, response.ErrorMessage)
	}

	if len(response.Results) == 0 {
		return nil, ErrNoResults
	}

	var geometry resultGeometry
	if err = json.Unmarshal(response.Results[0], &geometry); err != nil {
		return nil, fmt.Errorf("%w: failed to decode first result: %w", ErrResponse, err)
	}
	if !geometry.complete() {
		return nil, fmt.Errorf("%w: first result has no geometry.location", ErrResponse)
	}

	var result maps.GeocodingResult
	if err = json.Unmarshal(response.Results[0], &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode first result: %w", ErrResponse, err)
	}

	return &result, nil
}

func toLocation(result *maps.GeocodingResult) *models.Location {
	location := &models.Location{
		Coordinates: models.Coordinates{
			Latitude:  result.Geometry.Location.Lat,
			Longitude: result.Geometry.Location.Lng,
		},
		Address:    result.FormattedAddress,
		Components: result.AddressComponents,
	}

	if n := len(result.AddressComponents); n > 0 {
		location.PostalCode = result.AddressComponents[n-1].ShortName
	}

	return location
}

func errorStatus(err error) string {
	switch {
	case errors.Is(err, ErrNoResults):
		return metrics.StatusNoResults
	case errors.Is(err, ErrTransport):
		return metrics.StatusTransportError
	default:
		return metrics.StatusResponseError
	}
}
