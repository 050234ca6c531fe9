// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"time"

	"github.com/momeni/ambulante/pkg/core/geo"
	"github.com/momeni/ambulante/pkg/core/model"
)

// Vendors repository provides the candidate vendors of a proximity
// search. It may be used with a connection or a transaction.
type Vendors interface {
	Conn(Conn) VendorsConnQueryer
	Tx(Tx) VendorsTxQueryer
}

type VendorsConnQueryer interface {
	VendorsQueryer
}

type VendorsTxQueryer interface {
	VendorsQueryer
}

// VendorsQueryer lists the read-only vendors queries. Returned vendors
// are all active, carry their owner profile, at most N featured
// products (where N is a repository setting), and their reviews count.
// Neither method sorts the vendors by distance.
type VendorsQueryer interface {
	// ListActive returns all active vendors in one bulk read.
	ListActive(ctx context.Context) ([]model.Vendor, error)

	// ListActiveWithin is like ListActive, but only returns those
	// vendors which their coordinate is contained in the b box.
	ListActiveWithin(ctx context.Context, b geo.Bounds) ([]model.Vendor, error)
}

// VendorsIndex is an in-memory spatial index of the active vendors.
// Its implementations must be safe for concurrent use. Search may be
// called concurrently with Rebuild and observes either the old or the
// new set of vendors, but never a mix of them.
type VendorsIndex interface {
	// Rebuild replaces the indexed vendors with the given slice.
	Rebuild(vendors []model.Vendor)

	// Search returns the indexed vendors which are contained in b, in
	// the same relative order which was passed to Rebuild.
	Search(b geo.Bounds) []model.Vendor

	// All returns all indexed vendors in their Rebuild order.
	All() []model.Vendor

	// BuiltAt returns the last Rebuild time and false if Rebuild was
	// never called.
	BuiltAt() (time.Time, bool)
}
