// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settingsrs

import "github.com/momeni/ambulante/pkg/core/model"

// SettingsResp is the JSON form of model.VisibleSettings. Durations
// are reported in their time.Duration string format, e.g., 5s.
type SettingsResp struct {
	Vendors VendorsSettingsResp `json:"vendors"`
	Logger  bool                `json:"logger"`
}

type VendorsSettingsResp struct {
	DefaultRadiusKm       float64 `json:"default_radius_km"`
	MinRadiusKm           float64 `json:"min_radius_km"`
	MaxRadiusKm           float64 `json:"max_radius_km"`
	RejectZeroCoordinates bool    `json:"reject_zero_coordinates"`
	Prefilter             string  `json:"prefilter"`
	FetchTimeout          string  `json:"fetch_timeout"`
}

func SerVisibleSettings(vs model.VisibleSettings) *SettingsResp {
	v := vs.Vendors
	return &SettingsResp{
		Vendors: VendorsSettingsResp{
			DefaultRadiusKm:       v.DefaultRadiusKm,
			MinRadiusKm:           v.MinRadiusKm,
			MaxRadiusKm:           v.MaxRadiusKm,
			RejectZeroCoordinates: v.RejectZeroCoordinates,
			Prefilter:             v.Prefilter,
			FetchTimeout:          v.FetchTimeout.String(),
		},
		Logger: vs.Logger,
	}
}
