// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"time"

	"github.com/momeni/ambulante/pkg/adapter/config/settings"
	"github.com/momeni/ambulante/pkg/adapter/db/postgres/vendorsrp"
	"github.com/momeni/ambulante/pkg/adapter/spatial/rtreeidx"
	"github.com/momeni/ambulante/pkg/core/repo"
	"github.com/momeni/ambulante/pkg/core/usecase/vendorsuc"
)

// Default values of the vendors use case settings.
const (
	DefaultRadiusKm         = 5.0
	DefaultMinRadiusKm      = 1.0
	DefaultMaxRadiusKm      = 50.0
	DefaultFetchTimeout     = 5 * time.Second
	DefaultIndexTTL         = 30 * time.Second
	DefaultFeaturedProducts = 5
)

// Vendors contains the configuration settings for the vendors use
// case. Fields are defined as pointers, so it is possible to detect if
// they are or are not initialized. Missing items are filled by their
// default values using the ValidateAndNormalize method.
type Vendors struct {
	// DefaultRadiusKm is used when a query has no radiusKm parameter.
	// It must fall in the [MinRadiusKm, MaxRadiusKm] range.
	DefaultRadiusKm *float64 `yaml:"default-radius-km"`
	MinRadiusKm     *float64 `yaml:"min-radius-km"`
	MaxRadiusKm     *float64 `yaml:"max-radius-km"`

	// FetchTimeout limits each bulk read of the candidate vendors.
	FetchTimeout *settings.Duration `yaml:"fetch-timeout"`

	// RejectZeroCoordinates restores the legacy behavior of treating
	// a zero latitude or longitude as a missing parameter.
	RejectZeroCoordinates *bool `yaml:"reject-zero-coordinates"`

	// Prefilter is one of none, bbox, or rtree.
	Prefilter string `yaml:"prefilter"`

	// IndexTTL is the maximum age of the rtree index before it is
	// rebuilt. It is ignored by other prefilters.
	IndexTTL *settings.Duration `yaml:"index-ttl"`

	// FeaturedProducts is the maximum number of products which are
	// listed for each vendor.
	FeaturedProducts *int `yaml:"featured-products"`
}

func defaultOf[T any](p **T, v T) {
	settings.OverwriteNil(p, &v)
}

// ValidateAndNormalize fills the missing settings with their default
// values and verifies that the default radius is within its bounds.
func (v *Vendors) ValidateAndNormalize() error {
	defaultOf(&v.DefaultRadiusKm, DefaultRadiusKm)
	defaultOf(&v.MinRadiusKm, DefaultMinRadiusKm)
	defaultOf(&v.MaxRadiusKm, DefaultMaxRadiusKm)
	defaultOf(&v.FetchTimeout, settings.Duration(DefaultFetchTimeout))
	defaultOf(&v.IndexTTL, settings.Duration(DefaultIndexTTL))
	defaultOf(&v.FeaturedProducts, DefaultFeaturedProducts)
	settings.Nil2Zero(&v.RejectZeroCoordinates)
	if v.Prefilter == "" {
		v.Prefilter = vendorsuc.PrefilterNone
	}
	switch v.Prefilter {
	case vendorsuc.PrefilterNone, vendorsuc.PrefilterBBox,
		vendorsuc.PrefilterRTree:
	default:
		return fmt.Errorf("unsupported prefilter: %q", v.Prefilter)
	}
	if n := *v.FeaturedProducts; n < 0 {
		return fmt.Errorf("featured products (%d) is negative", n)
	}
	if err := settings.VerifyRange(
		&v.DefaultRadiusKm, v.MinRadiusKm, v.MaxRadiusKm,
	); err != nil {
		return fmt.Errorf(
			"VerifyRange(default radius=%v, minb=%v, maxb=%v): %w",
			err.Value, *v.MinRadiusKm, *v.MaxRadiusKm, err,
		)
	}
	return nil
}

// NewUseCase instantiates a new vendors use case based on the settings
// in the `v` struct. The vendors repository is created with the
// featured products limit and the rtree index is created if it is
// selected as the prefilter.
func (v Vendors) NewUseCase(p repo.Pool) (*vendorsuc.UseCase, error) {
	r := vendorsrp.New(*v.FeaturedProducts)
	opts := []vendorsuc.Option{
		vendorsuc.WithDefaultRadius(*v.DefaultRadiusKm),
		vendorsuc.WithRadiusBounds(*v.MinRadiusKm, *v.MaxRadiusKm),
		vendorsuc.WithFetchTimeout(time.Duration(*v.FetchTimeout)),
	}
	if *v.RejectZeroCoordinates {
		opts = append(opts, vendorsuc.WithZeroCoordinateRejection())
	}
	switch v.Prefilter {
	case vendorsuc.PrefilterBBox:
		opts = append(opts, vendorsuc.WithBoundingBoxPrefilter())
	case vendorsuc.PrefilterRTree:
		ttl := time.Duration(*v.IndexTTL)
		opts = append(opts, vendorsuc.WithIndex(rtreeidx.New(), ttl))
	}
	return vendorsuc.New(p, r, opts...)
}

// NewVendorsUseCase instantiates a new vendors use case based on the
// settings in the c struct.
func (c *Config) NewVendorsUseCase(p repo.Pool) (*vendorsuc.UseCase, error) {
	return c.Usecases.Vendors.NewUseCase(p)
}
