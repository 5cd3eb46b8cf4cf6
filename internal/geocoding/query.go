package geocoding

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// structuredQueryKeys fixes the order in which AddressMap values are joined.
var structuredQueryKeys = []string{"street", "city", "state", "zipCode", "postalCode"}

// AddressField is a single labelled part of a structured address.
type AddressField struct {
	Key   string
	Value string
}

// AddressQuery is the input of forward geocoding. Build it with AddressText,
// AddressFields or AddressMap.
type AddressQuery struct {
	text   string
	fields []AddressField
	isText bool
}

// AddressText uses s as the address verbatim.
func AddressText(s string) AddressQuery {
	return AddressQuery{text: s, isText: true}
}

// AddressFields joins the field values in the given order. Keys are only labels,
// two queries with the same values and different keys are identical.
func AddressFields(fields ...AddressField) AddressQuery {
	return AddressQuery{fields: fields}
}

// AddressMap joins the map values, known structured keys (street, city, state,
// zipCode, postalCode) first and everything else in lexical key order.
func AddressMap(parts map[string]string) AddressQuery {
	fields := make([]AddressField, 0, len(parts))
	for _, key := range structuredQueryKeys {
		if value, ok := parts[key]; ok {
			fields = append(fields, AddressField{Key: key, Value: value})
		}
	}

	rest := make([]string, 0, len(parts))
	for key := range parts {
		if !slices.Contains(structuredQueryKeys, key) {
			rest = append(rest, key)
		}
	}
	slices.Sort(rest)
	for _, key := range rest {
		fields = append(fields, AddressField{Key: key, Value: parts[key]})
	}

	return AddressFields(fields...)
}

// Wire returns the value of the "address" request parameter.
func (q AddressQuery) Wire() (string, error) {
	address := q.text
	if !q.isText {
		values := make([]string, 0, len(q.fields))
		for _, f := range q.fields {
			values = append(values, f.Value)
		}
		address = strings.Join(values, ", ")
	}

	if strings.TrimSpace(address) == "" {
		return "", fmt.Errorf("%w: address is empty", ErrInvalidInput)
	}

	return address, nil
}

type latLngKind int

const (
	latLngText latLngKind = iota
	latLngSlice
	latLngPair
	latLngMap
)

// LatLng is the input of reverse geocoding. Build it with LatLngText,
// LatLngSlice, LatLngPair or LatLngMap.
type LatLng struct {
	kind   latLngKind
	text   string
	values []float64
	named  map[string]float64
}

// LatLngText passes s through untouched, it must already read "lat, lng".
func LatLngText(s string) LatLng {
	return LatLng{kind: latLngText, text: s}
}

// LatLngSlice takes an ordered [lat, lng] sequence.
func LatLngSlice(values []float64) LatLng {
	return LatLng{kind: latLngSlice, values: values}
}

// LatLngPair takes a fixed latitude/longitude pair.
func LatLngPair(lat, lng float64) LatLng {
	return LatLng{kind: latLngPair, values: []float64{lat, lng}}
}

// LatLngMap takes a mapping keyed by lat/latitude and lng/longitude.
func LatLngMap(named map[string]float64) LatLng {
	return LatLng{kind: latLngMap, named: named}
}

// Wire returns the value of the "latlng" request parameter.
func (l LatLng) Wire() (string, error) {
	const pairLength = 2

	switch l.kind {
	case latLngText:
		if strings.TrimSpace(l.text) == "" {
			return "", fmt.Errorf("%w: latlng is empty", ErrInvalidInput)
		}
		return l.text, nil
	case latLngSlice, latLngPair:
		if len(l.values) != pairLength {
			return "", fmt.Errorf(
				"%w: latlng must hold exactly latitude and longitude, got %d values", ErrInvalidInput, len(l.values),
			)
		}
		return formatLatLng(l.values[0], l.values[1]), nil
	case latLngMap:
		return l.wireFromMap()
	default:
		return "", fmt.Errorf("%w: unknown latlng shape", ErrInvalidInput)
	}
}

func (l LatLng) wireFromMap() (string, error) {
	for key := range l.named {
		switch key {
		case "lat", "latitude", "lng", "longitude":
		default:
			return "", fmt.Errorf(
				"%w: unexpected key %q, use 'latitude' or 'lat' and 'longitude' or 'lng'", ErrInvalidInput, key,
			)
		}
	}

	lat, ok := l.named["lat"]
	if !ok {
		if lat, ok = l.named["latitude"]; !ok {
			return "", fmt.Errorf("%w: latitude is missing", ErrInvalidInput)
		}
	}

	lng, ok := l.named["lng"]
	if !ok {
		if lng, ok = l.named["longitude"]; !ok {
			return "", fmt.Errorf("%w: longitude is missing", ErrInvalidInput)
		}
	}

	return formatLatLng(lat, lng), nil
}

func formatLatLng(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + ", " + strconv.FormatFloat(lng, 'f', -1, 64)
}
