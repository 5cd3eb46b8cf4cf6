package geocoding

import (
	"context"

	"github.com/UnknownOlympus/geolocate/internal/models"
)

// Geocoder converts addresses to locations and back.
// FindGeocode resolves an address query to the first matching location,
// ReverseGeocode resolves a coordinate pair to the first matching location.
type Geocoder interface {
	FindGeocode(ctx context.Context, address AddressQuery) (*models.Location, error)
	ReverseGeocode(ctx context.Context, latlng LatLng) (*models.Location, error)
}

var _ Geocoder = (*Client)(nil)
