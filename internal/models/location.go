package models

import "googlemaps.github.io/maps"

// Location is the simplified record built from the first geocoding match.
type Location struct {
	Coordinates

	// PostalCode is the short name of the last address component. Google usually
	// puts the postal code last, but nothing guarantees it, so treat it as a hint.
	PostalCode string                  `json:"postalCode"`
	Address    string                  `json:"address"`              // Formatted address of the match.
	Components []maps.AddressComponent `json:"components,omitempty"` // Full address breakdown.
}
