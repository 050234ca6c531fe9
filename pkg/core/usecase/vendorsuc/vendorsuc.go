// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vendorsuc contains the vendors UseCase which supports the
// proximity search of vendors. Given a customer coordinate and a search
// radius, it fetches the active vendors, computes their great-circle
// distances from the customer, and returns those within the radius
// sorted from the nearest to the farthest vendor.
package vendorsuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/momeni/ambulante/pkg/core/cerr"
	"github.com/momeni/ambulante/pkg/core/geo"
	"github.com/momeni/ambulante/pkg/core/log"
	"github.com/momeni/ambulante/pkg/core/model"
	"github.com/momeni/ambulante/pkg/core/repo"
)

// Prefilter names which are reported by the Settings method.
const (
	PrefilterNone  = "none"
	PrefilterBBox  = "bbox"
	PrefilterRTree = "rtree"
)

// ErrMissingCoordinate is returned (wrapped in a *cerr.Error) when
// a query misses its latitude or longitude.
var ErrMissingCoordinate = errors.New("latitude and longitude are required")

// UseCase represents the vendors use case. It holds a database
// connection pool, the vendors repository, and the proximity search
// settings. The only mutable state is the optional vendors index, so
// all methods may be called concurrently.
type UseCase struct {
	pool      repo.Pool
	vendorsrp repo.Vendors

	defaultRadiusKm float64
	minRadiusKm     float64
	maxRadiusKm     float64
	fetchTimeout    time.Duration
	rejectZero      bool
	bbox            bool

	index     repo.VendorsIndex
	indexTTL  time.Duration
	rebuildMu sync.Mutex // serializes the index rebuilds
}

// New instantiates a vendors use case. The p pool and v repository are
// required, while other settings are passed as functional options and
// take their default values when omitted. Radius values default to
// 5km in the [1km, 50km] range and the fetch timeout defaults to 5s.
func New(p repo.Pool, v repo.Vendors, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, vendorsrp: v}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.maxRadiusKm == 0 {
		uc.minRadiusKm, uc.maxRadiusKm = 1, 50
	}
	if uc.defaultRadiusKm == 0 {
		uc.defaultRadiusKm = 5
	}
	if uc.fetchTimeout == 0 {
		uc.fetchTimeout = 5 * time.Second
	}
	if r := uc.defaultRadiusKm; r < uc.minRadiusKm || r > uc.maxRadiusKm {
		return nil, fmt.Errorf(
			"default radius (%v) is out of [%v, %v] range",
			r, uc.minRadiusKm, uc.maxRadiusKm,
		)
	}
	return uc, nil
}

// Settings returns the effective settings of the vendors use case.
func (vendors *UseCase) Settings() model.VendorsSettings {
	s := model.VendorsSettings{
		DefaultRadiusKm:       vendors.defaultRadiusKm,
		MinRadiusKm:           vendors.minRadiusKm,
		MaxRadiusKm:           vendors.maxRadiusKm,
		RejectZeroCoordinates: vendors.rejectZero,
		Prefilter:             PrefilterNone,
		FetchTimeout:          vendors.fetchTimeout,
	}
	switch {
	case vendors.index != nil:
		s.Prefilter = PrefilterRTree
	case vendors.bbox:
		s.Prefilter = PrefilterBBox
	}
	return s
}

// FindNearby use case finds the active vendors which are within the
// radius of the q query coordinate. Returned vendors are sorted by
// their distance ascendingly, while vendors with equal distances keep
// their retrieval order.
//
// An invalid query causes a bad request *cerr.Error and no vendors
// will be fetched. A failure or timeout of the vendors fetching step
// causes a *cerr.Error which wraps cerr.ErrDataSource and no partial
// result is returned. An empty result is not an error.
func (vendors *UseCase) FindNearby(
	ctx context.Context, q model.ProximityQuery,
) (*model.NearbyVendors, error) {
	origin, radiusKm, err := vendors.validate(q)
	if err != nil {
		return nil, cerr.BadRequest(err)
	}
	radiusMeters := radiusKm * 1000
	candidates, err := vendors.fetch(ctx, origin, radiusMeters)
	if err != nil {
		log.Error(
			ctx, "fetching candidate vendors failed",
			log.Coordinate("origin", origin),
			log.Err("err", err),
		)
		return nil, cerr.DataSource(err)
	}
	ranked, excluded := Rank(origin, radiusMeters, candidates)
	for _, v := range excluded {
		log.Warn(
			ctx, "excluding vendor with a non-finite coordinate",
			log.UUID("id", v.ID),
			log.Coordinate("coordinate", v.Coordinate),
		)
	}
	return &model.NearbyVendors{Count: len(ranked), Vendors: ranked}, nil
}

func (vendors *UseCase) validate(
	q model.ProximityQuery,
) (origin model.Coordinate, radiusKm float64, err error) {
	if q.Latitude == nil || q.Longitude == nil {
		return origin, 0, ErrMissingCoordinate
	}
	origin = model.Coordinate{Lat: *q.Latitude, Lon: *q.Longitude}
	if vendors.rejectZero && (origin.Lat == 0 || origin.Lon == 0) {
		return origin, 0, ErrMissingCoordinate
	}
	if err = origin.Validate(); err != nil {
		return origin, 0, err
	}
	radiusKm = vendors.defaultRadiusKm
	if q.RadiusKm != nil {
		radiusKm = *q.RadiusKm
	}
	// NaN fails both comparisons, so it is checked explicitly
	if math.IsNaN(radiusKm) ||
		radiusKm < vendors.minRadiusKm || radiusKm > vendors.maxRadiusKm {
		return origin, 0, fmt.Errorf(
			"radius must be between %vkm and %vkm",
			vendors.minRadiusKm, vendors.maxRadiusKm,
		)
	}
	return origin, radiusKm, nil
}

func (vendors *UseCase) fetch(
	ctx context.Context, origin model.Coordinate, radiusMeters float64,
) ([]model.Vendor, error) {
	ctx, cancel := context.WithTimeout(ctx, vendors.fetchTimeout)
	defer cancel()
	if vendors.index != nil {
		return vendors.searchIndex(ctx, origin, radiusMeters)
	}
	if vendors.bbox {
		if b, ok := geo.BoundsAround(origin, radiusMeters); ok {
			return vendors.listWithin(ctx, b)
		}
	}
	return vendors.listAll(ctx)
}

func (vendors *UseCase) listAll(
	ctx context.Context,
) (vv []model.Vendor, err error) {
	err = vendors.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vendors.vendorsrp.Conn(c)
		vv, err = q.ListActive(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing active vendors: %w", err)
	}
	return vv, nil
}

func (vendors *UseCase) listWithin(
	ctx context.Context, b geo.Bounds,
) (vv []model.Vendor, err error) {
	err = vendors.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vendors.vendorsrp.Conn(c)
		vv, err = q.ListActiveWithin(ctx, b)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing active vendors within %+v: %w", b, err)
	}
	return vv, nil
}

func (vendors *UseCase) searchIndex(
	ctx context.Context, origin model.Coordinate, radiusMeters float64,
) ([]model.Vendor, error) {
	if err := vendors.refreshIndex(ctx); err != nil {
		return nil, err
	}
	b, ok := geo.BoundsAround(origin, radiusMeters)
	if !ok {
		return vendors.index.All(), nil
	}
	return vendors.index.Search(b), nil
}

func (vendors *UseCase) indexIsFresh() bool {
	builtAt, ok := vendors.index.BuiltAt()
	return ok && time.Since(builtAt) < vendors.indexTTL
}

// refreshIndex rebuilds the index if it is missing or expired.
// Concurrent callers wait for one rebuild instead of repeating it.
func (vendors *UseCase) refreshIndex(ctx context.Context) error {
	if vendors.indexIsFresh() {
		return nil
	}
	vendors.rebuildMu.Lock()
	defer vendors.rebuildMu.Unlock()
	if vendors.indexIsFresh() {
		return nil
	}
	vv, err := vendors.listAll(ctx)
	if err != nil {
		return fmt.Errorf("rebuilding vendors index: %w", err)
	}
	vendors.index.Rebuild(vv)
	log.Debug(ctx, "rebuilt vendors index", slog.Int("count", len(vv)))
	return nil
}
