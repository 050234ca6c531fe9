// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package geo

import (
	"math"

	"github.com/momeni/ambulante/pkg/core/model"
)

// boundsMargin widens computed boxes (in degrees) so rounding errors
// never exclude a point which Distance considers inside the radius.
const boundsMargin = 1e-7

// Bounds is a latitude/longitude aligned box. It never crosses the
// antimeridian, so MinLon <= MaxLon holds for all valid instances.
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Contains reports whether c falls inside b, including its edges.
func (b Bounds) Contains(c model.Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}

// BoundsAround computes a box containing every coordinate which has a
// Distance of at most radiusMeters from the origin. The box is derived
// from the same spherical model as Distance, so it is a conservative
// pre-filter: all points which pass the radius filter are inside it.
//
// The second return value is false when no such box is representable
// without crossing a pole or the antimeridian, or if the inputs are not
// finite. In that case, callers must not pre-filter by a box.
func BoundsAround(origin model.Coordinate, radiusMeters float64) (Bounds, bool) {
	if !origin.IsFinite() || math.IsNaN(radiusMeters) ||
		math.IsInf(radiusMeters, 0) || radiusMeters < 0 {
		return Bounds{}, false
	}
	angular := radiusMeters / EarthRadiusMeters
	dLat := degrees(angular) + boundsMargin
	b := Bounds{
		MinLat: origin.Lat - dLat,
		MaxLat: origin.Lat + dLat,
	}
	if b.MinLat <= -90 || b.MaxLat >= 90 {
		return Bounds{}, false
	}
	// Widest longitude span is reached at the latitude where the
	// small circle touches the meridians, i.e., asin(sin(d)/cos(lat)).
	ratio := math.Sin(angular) / math.Cos(radians(origin.Lat))
	if ratio >= 1 {
		return Bounds{}, false
	}
	dLon := degrees(math.Asin(ratio)) + boundsMargin
	b.MinLon = origin.Lon - dLon
	b.MaxLon = origin.Lon + dLon
	if b.MinLon < -180 || b.MaxLon > 180 {
		return Bounds{}, false
	}
	return b, true
}
