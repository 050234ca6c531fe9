// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fakerp provides in-memory implementations of the repository
// interfaces, so use cases and resources can be tested without running
// a database container.
package fakerp

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/momeni/ambulante/pkg/core/geo"
	"github.com/momeni/ambulante/pkg/core/model"
	"github.com/momeni/ambulante/pkg/core/repo"
)

// ErrRawSQL is returned by Exec and Query methods of fake connections.
var ErrRawSQL = errors.New("raw SQL is not supported by fake connections")

// Pool is a fake repo.Pool. If Err is non-nil, Conn returns it without
// calling its handler.
type Pool struct {
	Err    error
	closed bool
}

func (p *Pool) Conn(ctx context.Context, handler repo.ConnHandler) error {
	if p.Err != nil {
		return p.Err
	}
	return handler(ctx, conn{})
}

func (p *Pool) Close() error {
	p.closed = true
	return nil
}

// IsClosed reports if Close was called.
func (p *Pool) IsClosed() bool {
	return p.closed
}

type conn struct{}

func (conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

func (conn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrRawSQL
}

func (conn) Tx(ctx context.Context, handler repo.TxHandler) error {
	return handler(ctx, tx{})
}

func (conn) IsConn() {}

type tx struct{}

func (tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

func (tx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrRawSQL
}

func (tx) IsTx() {}

// Vendors is a fake repo.Vendors which serves a fixed slice of active
// vendors in its given order. Its fields may be changed between calls
// using the Set* methods, which are safe for concurrent use.
type Vendors struct {
	mu      sync.Mutex
	vendors []model.Vendor
	err     error
	delay   time.Duration
	calls   int
}

// NewVendors creates a fake vendors repository serving vv.
func NewVendors(vv ...model.Vendor) *Vendors {
	return &Vendors{vendors: vv}
}

func (v *Vendors) Conn(repo.Conn) repo.VendorsConnQueryer {
	return v
}

func (v *Vendors) Tx(repo.Tx) repo.VendorsTxQueryer {
	return v
}

// SetVendors replaces the served vendors.
func (v *Vendors) SetVendors(vv ...model.Vendor) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vendors = vv
}

// SetErr makes all following queries fail with err.
func (v *Vendors) SetErr(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.err = err
}

// SetDelay makes all following queries to wait for d, or until their
// context is done, before returning.
func (v *Vendors) SetDelay(d time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.delay = d
}

// Calls returns the number of ListActive and ListActiveWithin calls.
func (v *Vendors) Calls() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.calls
}

func (v *Vendors) ListActive(ctx context.Context) ([]model.Vendor, error) {
	return v.list(ctx, func(model.Coordinate) bool { return true })
}

func (v *Vendors) ListActiveWithin(
	ctx context.Context, b geo.Bounds,
) ([]model.Vendor, error) {
	return v.list(ctx, b.Contains)
}

func (v *Vendors) list(
	ctx context.Context, keep func(model.Coordinate) bool,
) ([]model.Vendor, error) {
	v.mu.Lock()
	v.calls++
	vv, err, delay := v.vendors, v.err, v.delay
	v.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	result := make([]model.Vendor, 0, len(vv))
	for _, vendor := range vv {
		if keep(vendor.Coordinate) {
			result = append(result, vendor)
		}
	}
	return result, nil
}
