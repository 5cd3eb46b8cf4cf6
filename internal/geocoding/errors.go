package geocoding

import "errors"

// Errors returned by the Google geocoding client. Every error the client returns
// wraps exactly one of these, so callers can branch with errors.Is.
var (
	ErrConfiguration = errors.New("invalid geocoding client configuration")
	ErrInvalidInput  = errors.New("invalid geocoding input")
	ErrNoResults     = errors.New("get empty response from Google Maps API")
	ErrTransport     = errors.New("failed to execute geocoding request")
	ErrResponse      = errors.New("unexpected response from Google Maps API")
)
