// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "time"

// VisibleSettings contains settings which are visible by end-users.
// These settings are read from the configuration file and cannot be
// changed at runtime. They are reported so frontends may know about the
// acceptable search radius range before sending a query.
type VisibleSettings struct {
	// Vendors contains the nearby vendors search related settings.
	Vendors VendorsSettings `json:"vendors"`

	// Logger reports if server-side REST API logging is enabled.
	Logger bool `json:"logger"`
}

// VendorsSettings represents the effective settings of the vendors use
// case, as reported by the vendorsuc.UseCase.Settings method.
type VendorsSettings struct {
	DefaultRadiusKm float64 `json:"default_radius_km"`
	MinRadiusKm     float64 `json:"min_radius_km"`
	MaxRadiusKm     float64 `json:"max_radius_km"`

	// RejectZeroCoordinates reports if a literal zero latitude or
	// longitude is treated as a missing coordinate (legacy behavior).
	RejectZeroCoordinates bool `json:"reject_zero_coordinates"`

	// Prefilter names the candidates pre-filtering strategy which is
	// one of "none", "bbox", or "rtree".
	Prefilter string `json:"prefilter"`

	FetchTimeout time.Duration `json:"fetch_timeout"`
}
