// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// Coordinate represents a geographical location with a latitude and
// longitude in decimal degrees. This struct is embedded in the Vendor
// struct and mapped to the latitude/longitude columns of the vendors
// table by the adapters layer.
type Coordinate struct {
	Lat, Lon float64 // latitude and longitude of the geo-location
}

// ErrNonFiniteCoordinate indicates that a latitude or longitude is NaN
// or an infinity. Such values produce a NaN distance which may not be
// compared with a radius meaningfully.
var ErrNonFiniteCoordinate = errors.New("coordinate is not finite")

// CoordinateRangeError indicates that a finite latitude or longitude
// is outside of its valid range. The Field is either "latitude" or
// "longitude" and Value is the offending value.
type CoordinateRangeError struct {
	Field string
	Value float64
}

// Error implements the error interface. The returned message is
// suitable to be reported to the end-users as is.
func (e *CoordinateRangeError) Error() string {
	if e.Field == "latitude" {
		return fmt.Sprintf("latitude must be between -90 and 90, got %v", e.Value)
	}
	return fmt.Sprintf("longitude must be between -180 and 180, got %v", e.Value)
}

// IsFinite reports whether both components of c are finite numbers.
func (c Coordinate) IsFinite() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) &&
		!math.IsNaN(c.Lon) && !math.IsInf(c.Lon, 0)
}

// Validate returns nil if c is a finite coordinate with a latitude in
// [-90, 90] and a longitude in [-180, 180] range. Non-finite values
// cause ErrNonFiniteCoordinate and out-of-range values cause an
// instance of *CoordinateRangeError.
func (c Coordinate) Validate() error {
	if !c.IsFinite() {
		return ErrNonFiniteCoordinate
	}
	if c.Lat < -90 || c.Lat > 90 {
		return &CoordinateRangeError{Field: "latitude", Value: c.Lat}
	}
	if c.Lon < -180 || c.Lon > 180 {
		return &CoordinateRangeError{Field: "longitude", Value: c.Lon}
	}
	return nil
}

// LogValue implements slog.LogValuer, grouping lat and lon fields.
func (c Coordinate) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("lat", c.Lat),
		slog.Float64("lon", c.Lon),
	)
}
