// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package geo contains the geospatial computations of the use cases
// layer. Earth is approximated by a sphere with its mean radius, so
// computed distances are great-circle distances (not WGS-84 geodesics).
package geo

import (
	"math"

	"github.com/momeni/ambulante/pkg/core/model"
)

// EarthRadiusMeters is the mean Earth radius which is used by Distance
// and BoundsAround functions.
const EarthRadiusMeters = 6371000.0

// Distance computes the great-circle distance between the origin and
// target coordinates in meters using the haversine formula.
// No range validation is performed, so callers should validate their
// inputs. Distance is symmetric and returns zero for identical inputs.
// NaN and infinite inputs propagate into a NaN result.
func Distance(origin, target model.Coordinate) float64 {
	dLat := radians(target.Lat - origin.Lat)
	dLon := radians(target.Lon - origin.Lon)
	sinLat, sinLon := math.Sin(dLat/2), math.Sin(dLon/2)
	a := sinLat*sinLat + math.Cos(radians(origin.Lat))*
		math.Cos(radians(target.Lat))*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
