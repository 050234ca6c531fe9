// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vendorsrp provides a reification of the repo.Vendors
// interface, reading the active vendors alongside their owner users,
// featured products, and reviews count from a PostgreSQL database.
package vendorsrp

import (
	"context"

	"github.com/momeni/ambulante/pkg/adapter/db/postgres"
	"github.com/momeni/ambulante/pkg/core/geo"
	"github.com/momeni/ambulante/pkg/core/model"
	"github.com/momeni/ambulante/pkg/core/repo"
)

// Repo represents the vendors repository. The featured field limits
// the number of products which are loaded for each vendor.
type Repo struct {
	featured int
}

var _ repo.Vendors = (*Repo)(nil)

// New instantiates a vendors Repo which loads at most featuredProducts
// products per vendor. A non-positive value skips the products query.
func New(featuredProducts int) *Repo {
	return &Repo{featured: featuredProducts}
}

type connQueryer struct {
	*postgres.Conn
	featured int
}

// Conn unwraps the given repo.Conn instance, expecting to find an
// instance of *postgres.Conn as created by this adapter layer.
// Otherwise, it will panic.
func (vendors *Repo) Conn(c repo.Conn) repo.VendorsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc, featured: vendors.featured}
}

func (cq connQueryer) ListActive(ctx context.Context) ([]model.Vendor, error) {
	return ListActive(ctx, cq.Conn, cq.featured)
}

func (cq connQueryer) ListActiveWithin(
	ctx context.Context, b geo.Bounds,
) ([]model.Vendor, error) {
	return ListActiveWithin(ctx, cq.Conn, cq.featured, b)
}

type txQueryer struct {
	*postgres.Tx
	featured int
}

// Tx is like Conn, but unwraps a *postgres.Tx instance.
func (vendors *Repo) Tx(tx repo.Tx) repo.VendorsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt, featured: vendors.featured}
}

func (tq txQueryer) ListActive(ctx context.Context) ([]model.Vendor, error) {
	return ListActive(ctx, tq.Tx, tq.featured)
}

func (tq txQueryer) ListActiveWithin(
	ctx context.Context, b geo.Bounds,
) ([]model.Vendor, error) {
	return ListActiveWithin(ctx, tq.Tx, tq.featured, b)
}
