package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Location is a delivery point. The gateway stores it as the single
// string "lat|lon", so both directions of that encoding live here.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Encode renders the location in the gateway's "lat|lon" wire form.
func (l Location) Encode() string {
	return strconv.FormatFloat(l.Latitude, 'f', -1, 64) +
		"|" +
		strconv.FormatFloat(l.Longitude, 'f', -1, 64)
}

// ParseLocation decodes a stored "lat|lon" string. An empty input yields
// the zero location (0,0): users registered before sharing an address have
// no stored value, and the confirmation screen still renders a pin for them.
func ParseLocation(encoded string) (Location, error) {
	if encoded == "" {
		return Location{}, nil
	}
	parts := strings.SplitN(encoded, "|", 2)
	if len(parts) != 2 {
		return Location{}, fmt.Errorf("malformed location %q", encoded)
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Location{}, fmt.Errorf("malformed latitude in %q: %w", encoded, err)
	}
	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Location{}, fmt.Errorf("malformed longitude in %q: %w", encoded, err)
	}
	return Location{Latitude: lat, Longitude: lon}, nil
}
