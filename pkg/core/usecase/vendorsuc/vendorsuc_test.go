// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vendorsuc_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/ambulante/internal/test/fakerp"
	"github.com/momeni/ambulante/pkg/adapter/spatial/rtreeidx"
	"github.com/momeni/ambulante/pkg/core/cerr"
	"github.com/momeni/ambulante/pkg/core/model"
	"github.com/momeni/ambulante/pkg/core/usecase/vendorsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var salvador = model.Coordinate{Lat: -12.9714, Lon: -38.5104}

func vendorAt(name string, lat, lon float64) model.Vendor {
	return model.Vendor{
		ID:           uuid.New(),
		BusinessName: name,
		Rating:       4.5,
		Coordinate:   model.Coordinate{Lat: lat, Lon: lon},
		Owner:        model.Profile{ID: uuid.New(), Name: name + " owner"},
		ReviewCount:  3,
	}
}

func query(lat, lon float64, radiusKm ...float64) model.ProximityQuery {
	q := model.ProximityQuery{Latitude: &lat, Longitude: &lon}
	if len(radiusKm) > 0 {
		q.RadiusKm = &radiusKm[0]
	}
	return q
}

func newUseCase(
	t *testing.T, v *fakerp.Vendors, opts ...vendorsuc.Option,
) *vendorsuc.UseCase {
	t.Helper()
	uc, err := vendorsuc.New(&fakerp.Pool{}, v, opts...)
	require.NoError(t, err)
	return uc
}

func names(nv *model.NearbyVendors) []string {
	nn := make([]string, len(nv.Vendors))
	for i, v := range nv.Vendors {
		nn[i] = v.BusinessName
	}
	return nn
}

func requireBadRequest(t *testing.T, err error, msg string) {
	t.Helper()
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusBadRequest, ce.HTTPStatusCode)
	if msg != "" {
		assert.Equal(t, msg, ce.PublicMessage())
	}
}

func TestSalvadorScenario(t *testing.T) {
	v := fakerp.NewVendors(
		vendorAt("far", -13.0, -38.5),
		vendorAt("here", salvador.Lat, salvador.Lon),
	)
	uc := newUseCase(t, v)
	ctx := context.Background()

	nv, err := uc.FindNearby(ctx, query(salvador.Lat, salvador.Lon, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"here"}, names(nv))
	assert.Equal(t, 0.0, nv.Vendors[0].DistanceKm)

	nv, err = uc.FindNearby(ctx, query(salvador.Lat, salvador.Lon, 3))
	require.NoError(t, err)
	assert.Equal(t, 1, nv.Count)

	nv, err = uc.FindNearby(ctx, query(salvador.Lat, salvador.Lon, 5))
	require.NoError(t, err)
	assert.Equal(t, 2, nv.Count)
	assert.Equal(t, []string{"here", "far"}, names(nv))
	assert.InDelta(t, 3374, nv.Vendors[1].DistanceMeters, 20)
	assert.Equal(t, 3.4, nv.Vendors[1].DistanceKm)
}

func TestDefaultRadius(t *testing.T) {
	v := fakerp.NewVendors(
		vendorAt("4.4km", -13.01, -38.52),
		vendorAt("1km", -12.98, -38.51),
	)
	nv, err := newUseCase(t, v).FindNearby(
		context.Background(), query(salvador.Lat, salvador.Lon),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"1km", "4.4km"}, names(nv))
	assert.Equal(t, []float64{1.0, 4.4}, []float64{
		nv.Vendors[0].DistanceKm, nv.Vendors[1].DistanceKm,
	})
}

func TestEmptyResult(t *testing.T) {
	v := fakerp.NewVendors(vendorAt("tehran", 35.6892, 51.3890))
	nv, err := newUseCase(t, v).FindNearby(
		context.Background(), query(salvador.Lat, salvador.Lon, 50),
	)
	require.NoError(t, err)
	assert.Equal(t, 0, nv.Count)
	assert.NotNil(t, nv.Vendors)
	assert.Empty(t, nv.Vendors)
}

func TestRadiusBoundaries(t *testing.T) {
	cases := []struct {
		radius float64
		valid  bool
	}{
		{0.999, false},
		{1, true},
		{25, true},
		{50, true},
		{50.001, false},
		{0, false},
		{-5, false},
		{math.NaN(), false},
		{math.Inf(1), false},
	}
	for _, c := range cases {
		v := fakerp.NewVendors()
		uc := newUseCase(t, v)
		_, err := uc.FindNearby(
			context.Background(), query(salvador.Lat, salvador.Lon, c.radius),
		)
		if c.valid {
			assert.NoError(t, err, "radius %v", c.radius)
			assert.Equal(t, 1, v.Calls())
			continue
		}
		requireBadRequest(t, err, "radius must be between 1km and 50km")
		assert.Equal(t, 0, v.Calls(), "no fetch for radius %v", c.radius)
	}
}

func TestMissingCoordinates(t *testing.T) {
	lat, lon := salvador.Lat, salvador.Lon
	v := fakerp.NewVendors()
	uc := newUseCase(t, v)
	for _, q := range []model.ProximityQuery{
		{},
		{Latitude: &lat},
		{Longitude: &lon},
	} {
		_, err := uc.FindNearby(context.Background(), q)
		requireBadRequest(t, err, "latitude and longitude are required")
		assert.ErrorIs(t, err, vendorsuc.ErrMissingCoordinate)
	}
	assert.Equal(t, 0, v.Calls())
}

func TestInvalidCoordinates(t *testing.T) {
	v := fakerp.NewVendors()
	uc := newUseCase(t, v)
	ctx := context.Background()

	_, err := uc.FindNearby(ctx, query(91, 0))
	requireBadRequest(t, err, "latitude must be between -90 and 90, got 91")
	_, err = uc.FindNearby(ctx, query(0, -180.5))
	requireBadRequest(t, err, "longitude must be between -180 and 180, got -180.5")
	_, err = uc.FindNearby(ctx, query(math.NaN(), 0))
	requireBadRequest(t, err, "")
	assert.ErrorIs(t, err, model.ErrNonFiniteCoordinate)
	assert.Equal(t, 0, v.Calls())
}

func TestZeroCoordinates(t *testing.T) {
	gulf := vendorAt("gulf of guinea", 0.001, 0.001)
	t.Run("accepted by default", func(t *testing.T) {
		v := fakerp.NewVendors(gulf)
		nv, err := newUseCase(t, v).FindNearby(
			context.Background(), query(0, 0),
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"gulf of guinea"}, names(nv))
		assert.False(t, newUseCase(t, v).Settings().RejectZeroCoordinates)
	})
	t.Run("rejected as missing in legacy mode", func(t *testing.T) {
		v := fakerp.NewVendors(gulf)
		uc := newUseCase(t, v, vendorsuc.WithZeroCoordinateRejection())
		for _, q := range []model.ProximityQuery{
			query(0, 0), query(0, 10), query(10, 0),
		} {
			_, err := uc.FindNearby(context.Background(), q)
			requireBadRequest(t, err, "latitude and longitude are required")
		}
		assert.Equal(t, 0, v.Calls())
		assert.True(t, uc.Settings().RejectZeroCoordinates)
	})
}

func TestDataSourceFailure(t *testing.T) {
	v := fakerp.NewVendors(vendorAt("here", salvador.Lat, salvador.Lon))
	v.SetErr(errors.New("connection refused"))
	nv, err := newUseCase(t, v).FindNearby(
		context.Background(), query(salvador.Lat, salvador.Lon),
	)
	assert.Nil(t, nv)
	require.ErrorIs(t, err, cerr.ErrDataSource)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusInternalServerError, ce.HTTPStatusCode)
	assert.Equal(t, "failed to search nearby vendors", ce.PublicMessage())
}

func TestPoolFailure(t *testing.T) {
	uc, err := vendorsuc.New(
		&fakerp.Pool{Err: errors.New("too many clients")},
		fakerp.NewVendors(),
	)
	require.NoError(t, err)
	_, err = uc.FindNearby(context.Background(), query(1, 1))
	assert.ErrorIs(t, err, cerr.ErrDataSource)
}

func TestFetchTimeout(t *testing.T) {
	v := fakerp.NewVendors(vendorAt("here", salvador.Lat, salvador.Lon))
	v.SetDelay(time.Second)
	uc := newUseCase(t, v, vendorsuc.WithFetchTimeout(20*time.Millisecond))
	start := time.Now()
	nv, err := uc.FindNearby(
		context.Background(), query(salvador.Lat, salvador.Lon),
	)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Nil(t, nv)
	assert.ErrorIs(t, err, cerr.ErrDataSource)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNonFiniteCandidatesAreExcluded(t *testing.T) {
	v := fakerp.NewVendors(
		vendorAt("broken", math.NaN(), -38.51),
		vendorAt("here", salvador.Lat, salvador.Lon),
		vendorAt("infinite", -12.97, math.Inf(-1)),
	)
	nv, err := newUseCase(t, v).FindNearby(
		context.Background(), query(salvador.Lat, salvador.Lon),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"here"}, names(nv))
}

func TestPrefiltersAreEquivalent(t *testing.T) {
	vv := []model.Vendor{
		vendorAt("a", -12.9714, -38.5104),
		vendorAt("b", -12.98, -38.51),
		vendorAt("c", -12.95, -38.49),
		vendorAt("d", -13.01, -38.52),
		vendorAt("e", -13.0, -38.5),
		vendorAt("f", -12.5, -38.0),
		vendorAt("g", -12.9714, -38.5104), // tie with a
		vendorAt("h", math.NaN(), 0),
		vendorAt("i", 35.6892, 51.3890),
	}
	modes := map[string][]vendorsuc.Option{
		vendorsuc.PrefilterNone: nil,
		vendorsuc.PrefilterBBox: {vendorsuc.WithBoundingBoxPrefilter()},
		vendorsuc.PrefilterRTree: {
			vendorsuc.WithIndex(rtreeidx.New(), time.Minute),
		},
	}
	queries := []model.ProximityQuery{
		query(salvador.Lat, salvador.Lon, 1),
		query(salvador.Lat, salvador.Lon, 3.3),
		query(salvador.Lat, salvador.Lon, 50),
		query(-12.9, -38.4, 10),
		query(89.99, 0, 50),      // box crosses the north pole
		query(10, 179.99, 50),    // box crosses the antimeridian
		query(35.7, 51.4, 20),
	}
	results := make(map[string][][]string)
	for mode, opts := range modes {
		uc := newUseCase(t, fakerp.NewVendors(vv...), opts...)
		assert.Equal(t, mode, uc.Settings().Prefilter)
		for _, q := range queries {
			nv, err := uc.FindNearby(context.Background(), q)
			require.NoError(t, err)
			results[mode] = append(results[mode], names(nv))
		}
	}
	assert.Equal(t, results[vendorsuc.PrefilterNone], results[vendorsuc.PrefilterBBox])
	assert.Equal(t, results[vendorsuc.PrefilterNone], results[vendorsuc.PrefilterRTree])
	assert.Equal(t, []string{"a", "g", "b"}, results[vendorsuc.PrefilterNone][0])
}

func TestIndexIsRebuiltAfterTTL(t *testing.T) {
	v := fakerp.NewVendors(vendorAt("old", salvador.Lat, salvador.Lon))
	uc := newUseCase(t, v, vendorsuc.WithIndex(rtreeidx.New(), 50*time.Millisecond))
	ctx := context.Background()
	q := query(salvador.Lat, salvador.Lon)

	nv, err := uc.FindNearby(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, names(nv))
	v.SetVendors(vendorAt("new", salvador.Lat, salvador.Lon))

	nv, err = uc.FindNearby(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, names(nv), "index is still fresh")
	assert.Equal(t, 1, v.Calls())

	time.Sleep(100 * time.Millisecond)
	nv, err = uc.FindNearby(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, names(nv))
	assert.Equal(t, 2, v.Calls())
}

func TestIndexRebuildFailure(t *testing.T) {
	v := fakerp.NewVendors()
	v.SetErr(errors.New("connection reset"))
	uc := newUseCase(t, v, vendorsuc.WithIndex(rtreeidx.New(), time.Minute))
	_, err := uc.FindNearby(context.Background(), query(1, 1))
	assert.ErrorIs(t, err, cerr.ErrDataSource)
}

func TestInvalidOptions(t *testing.T) {
	cases := map[string][]vendorsuc.Option{
		"non-positive default":  {vendorsuc.WithDefaultRadius(0)},
		"default out of bounds": {vendorsuc.WithDefaultRadius(60)},
		"inverted bounds":       {vendorsuc.WithRadiusBounds(10, 2)},
		"repeated bounds": {
			vendorsuc.WithRadiusBounds(1, 10),
			vendorsuc.WithRadiusBounds(1, 20),
		},
		"non-positive timeout": {vendorsuc.WithFetchTimeout(0)},
		"nil index":            {vendorsuc.WithIndex(nil, time.Second)},
		"bbox and index": {
			vendorsuc.WithBoundingBoxPrefilter(),
			vendorsuc.WithIndex(rtreeidx.New(), time.Second),
		},
	}
	for name, opts := range cases {
		_, err := vendorsuc.New(&fakerp.Pool{}, fakerp.NewVendors(), opts...)
		assert.Error(t, err, name)
	}
}

func TestSettings(t *testing.T) {
	uc := newUseCase(t, fakerp.NewVendors(),
		vendorsuc.WithRadiusBounds(2, 20),
		vendorsuc.WithDefaultRadius(10),
		vendorsuc.WithFetchTimeout(time.Second),
	)
	assert.Equal(t, model.VendorsSettings{
		DefaultRadiusKm: 10,
		MinRadiusKm:     2,
		MaxRadiusKm:     20,
		Prefilter:       vendorsuc.PrefilterNone,
		FetchTimeout:    time.Second,
	}, uc.Settings())
	_, err := uc.FindNearby(context.Background(), query(1, 1, 1))
	requireBadRequest(t, err, "radius must be between 2km and 20km")
}
