// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vendorsuc

import (
	"cmp"
	"math"
	"slices"

	"github.com/momeni/ambulante/pkg/core/geo"
	"github.com/momeni/ambulante/pkg/core/model"
)

// Rank computes the distance of each candidate from the origin, keeps
// those which are at most radiusMeters away, and sorts them by their
// distance stably. Candidates with a non-finite coordinate (or a
// non-finite distance) are returned in the excluded slice, in their
// input order. The candidates slice is not modified.
func Rank(
	origin model.Coordinate,
	radiusMeters float64,
	candidates []model.Vendor,
) (ranked []model.RankedVendor, excluded []model.Vendor) {
	ranked = make([]model.RankedVendor, 0, len(candidates))
	for _, v := range candidates {
		if !v.Coordinate.IsFinite() {
			excluded = append(excluded, v)
			continue
		}
		d := geo.Distance(origin, v.Coordinate)
		if math.IsNaN(d) || math.IsInf(d, 0) {
			excluded = append(excluded, v)
			continue
		}
		if d > radiusMeters {
			continue
		}
		ranked = append(ranked, model.RankedVendor{
			Vendor:         v,
			DistanceMeters: d,
			DistanceKm:     RoundKm(d),
		})
	}
	slices.SortStableFunc(ranked, func(a, b model.RankedVendor) int {
		return cmp.Compare(a.DistanceMeters, b.DistanceMeters)
	})
	return ranked, excluded
}

// RoundKm converts meters to kilometers, rounded to one decimal place.
// Halfway values are rounded away from zero, e.g., 1250m is 1.3km.
func RoundKm(meters float64) float64 {
	return math.Round(meters/1000*10) / 10
}
