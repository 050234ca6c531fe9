// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package rtreeidx implements the repo.VendorsIndex interface using an
// in-memory R-tree of the vendors coordinates. Each Rebuild creates an
// immutable snapshot and swaps it atomically, so Search calls never
// take a lock and observe either the old or the new snapshot.
package rtreeidx

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/dhconnelly/rtreego"
	"github.com/momeni/ambulante/pkg/core/geo"
	"github.com/momeni/ambulante/pkg/core/model"
	"github.com/momeni/ambulante/pkg/core/repo"
)

// Branching factors of the R-tree nodes.
const (
	minChildren = 25
	maxChildren = 50
)

// pointTolerance is the half side length of each vendor rectangle in
// degrees. Rectangles need a positive size, while Search filters the
// tree results by the exact geo.Bounds afterwards.
const pointTolerance = 1e-9

// Index is a concurrency-safe R-tree index of vendors.
// Its zero value is an empty index which was never built.
type Index struct {
	current atomic.Pointer[snapshot]
}

var _ repo.VendorsIndex = (*Index)(nil)

type snapshot struct {
	tree    *rtreego.Rtree
	vendors []model.Vendor
	builtAt time.Time
}

// entry is the R-tree item for the vendors[pos] vendor of a snapshot.
type entry struct {
	rect rtreego.Rect
	pos  int
}

func (e *entry) Bounds() rtreego.Rect {
	return e.rect
}

// New creates an empty Index.
func New() *Index {
	return &Index{}
}

// Rebuild indexes a copy of vendors and replaces the current snapshot.
// Vendors with non-finite coordinates are kept (so All returns them),
// but are not inserted in the R-tree and no Search may return them.
func (idx *Index) Rebuild(vendors []model.Vendor) {
	s := &snapshot{
		vendors: slices.Clone(vendors),
		builtAt: time.Now(),
	}
	items := make([]rtreego.Spatial, 0, len(s.vendors))
	for i, v := range s.vendors {
		if !v.Coordinate.IsFinite() {
			continue
		}
		p := rtreego.Point{v.Coordinate.Lat, v.Coordinate.Lon}
		items = append(items, &entry{rect: p.ToRect(pointTolerance), pos: i})
	}
	s.tree = rtreego.NewTree(2, minChildren, maxChildren, items...)
	idx.current.Store(s)
}

// Search returns vendors which are contained in b, keeping the order
// of the last Rebuild call. An empty index returns no vendors.
func (idx *Index) Search(b geo.Bounds) []model.Vendor {
	s := idx.current.Load()
	if s == nil {
		return nil
	}
	rect, err := rtreego.NewRectFromPoints(
		rtreego.Point{b.MinLat, b.MinLon},
		rtreego.Point{b.MaxLat, b.MaxLon},
	)
	if err != nil { // degenerate box
		return s.scan(b)
	}
	found := s.tree.SearchIntersect(rect)
	positions := make([]int, 0, len(found))
	for _, item := range found {
		e := item.(*entry)
		if b.Contains(s.vendors[e.pos].Coordinate) {
			positions = append(positions, e.pos)
		}
	}
	slices.Sort(positions)
	result := make([]model.Vendor, len(positions))
	for i, pos := range positions {
		result[i] = s.vendors[pos]
	}
	return result
}

func (s *snapshot) scan(b geo.Bounds) []model.Vendor {
	var result []model.Vendor
	for _, v := range s.vendors {
		if b.Contains(v.Coordinate) {
			result = append(result, v)
		}
	}
	return result
}

// All returns all indexed vendors. Callers must not modify them.
func (idx *Index) All() []model.Vendor {
	if s := idx.current.Load(); s != nil {
		return s.vendors
	}
	return nil
}

// BuiltAt returns the time of the last Rebuild call.
func (idx *Index) BuiltAt() (time.Time, bool) {
	if s := idx.current.Load(); s != nil {
		return s.builtAt, true
	}
	return time.Time{}, false
}
