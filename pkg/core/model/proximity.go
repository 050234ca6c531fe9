// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// ProximityQuery carries the parameters of a nearby vendors search.
// All fields are pointers, so an absent parameter (nil) can be told
// apart from a parameter which was supplied with the zero value.
// A nil RadiusKm asks for the configured default radius.
type ProximityQuery struct {
	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64
}

// RankedVendor is a candidate Vendor annotated with its distance from
// the query origin. DistanceMeters is the exact computed distance and
// DistanceKm is its presentation form, rounded to one decimal place.
// The Vendor is a shallow copy of the repository provided candidate.
type RankedVendor struct {
	Vendor
	DistanceMeters float64
	DistanceKm     float64
}

// NearbyVendors is the result of a proximity search. Vendors are sorted
// by their DistanceMeters ascendingly and Count is equal to their
// number. An empty result has a zero Count and an empty (non-nil)
// Vendors slice.
type NearbyVendors struct {
	Count   int
	Vendors []RankedVendor
}
