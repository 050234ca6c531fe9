// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vendorsuc

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/momeni/ambulante/pkg/core/repo"
)

// Option is a functional option for the vendors use case.
type Option func(uc *UseCase) error

// WithDefaultRadius option configures the search radius (in km) which
// is used when a query does not specify its radius. It must fall in
// the acceptable radius range (see WithRadiusBounds).
func WithDefaultRadius(km float64) Option {
	return func(uc *UseCase) error {
		if !isPositive(km) {
			return fmt.Errorf("default radius (%v) is not positive", km)
		}
		if uc.defaultRadiusKm != 0 {
			return errors.New("default radius is already configured")
		}
		uc.defaultRadiusKm = km
		return nil
	}
}

// WithRadiusBounds option configures the inclusive [minKm, maxKm] range
// of the acceptable search radius values.
func WithRadiusBounds(minKm, maxKm float64) Option {
	return func(uc *UseCase) error {
		if !isPositive(minKm) || !isPositive(maxKm) {
			return fmt.Errorf(
				"radius bounds [%v, %v] are not positive", minKm, maxKm,
			)
		}
		if minKm > maxKm {
			return fmt.Errorf(
				"min radius (%v) is greater than max radius (%v)",
				minKm, maxKm,
			)
		}
		if uc.maxRadiusKm != 0 {
			return errors.New("radius bounds are already configured")
		}
		uc.minRadiusKm, uc.maxRadiusKm = minKm, maxKm
		return nil
	}
}

// WithFetchTimeout option limits the duration of fetching candidate
// vendors from the vendors repository (or rebuilding the index).
func WithFetchTimeout(timeout time.Duration) Option {
	return func(uc *UseCase) error {
		if d := int64(timeout); d <= 0 {
			return fmt.Errorf("timeout (%d) is not positive", d)
		}
		if uc.fetchTimeout != 0 {
			return errors.New("fetch timeout is already configured")
		}
		uc.fetchTimeout = timeout
		return nil
	}
}

// WithZeroCoordinateRejection option makes FindNearby to treat a zero
// latitude or longitude as a missing value. Without this option, the
// (0, 0) coordinate in the Gulf of Guinea may be searched like other
// valid coordinates.
func WithZeroCoordinateRejection() Option {
	return func(uc *UseCase) error {
		uc.rejectZero = true
		return nil
	}
}

// WithBoundingBoxPrefilter option asks the vendors repository to return
// only those vendors which are inside a box around the search circle.
// It may not be combined with the WithIndex option.
func WithBoundingBoxPrefilter() Option {
	return func(uc *UseCase) error {
		if uc.index != nil {
			return errors.New("index prefilter is already configured")
		}
		uc.bbox = true
		return nil
	}
}

// WithIndex option makes FindNearby to search the idx index instead of
// querying the vendors repository for each search. The idx is filled
// with all active vendors and is rebuilt whenever it gets older than
// ttl. It may not be combined with the WithBoundingBoxPrefilter option.
func WithIndex(idx repo.VendorsIndex, ttl time.Duration) Option {
	return func(uc *UseCase) error {
		if idx == nil {
			return errors.New("index is nil")
		}
		if d := int64(ttl); d <= 0 {
			return fmt.Errorf("index ttl (%d) is not positive", d)
		}
		if uc.bbox {
			return errors.New("bounding box prefilter is already configured")
		}
		if uc.index != nil {
			return errors.New("index is already configured")
		}
		uc.index, uc.indexTTL = idx, ttl
		return nil
	}
}

func isPositive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}
