// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vendorsrp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/ambulante/pkg/adapter/db/postgres"
	"github.com/momeni/ambulante/pkg/core/geo"
	"github.com/momeni/ambulante/pkg/core/model"
	"gorm.io/gorm"
)

// featuredProductsQuery selects at most @limit oldest products of each
// one of the @ids vendors.
const featuredProductsQuery = `SELECT id, vendor_id, name, price, image, created_at
FROM (
	SELECT p.*, row_number() OVER (
		PARTITION BY p.vendor_id ORDER BY p.created_at, p.id
	) AS rn
	FROM products p
	WHERE p.vendor_id IN @ids
) ranked
WHERE rn <= @limit
ORDER BY vendor_id, rn`

type reviewCount struct {
	VendorID uuid.UUID
	Count    int
}

// ListActive returns the active vendors, with their owner users, at
// most featured products per vendor, and their reviews count.
// Vendors are ordered by their creation time (and then their IDs).
func ListActive[Q postgres.Queryer](
	ctx context.Context, q Q, featured int,
) ([]model.Vendor, error) {
	return list(q.GORM(ctx), featured)
}

// ListActiveWithin is like ListActive, but only returns the vendors
// which are located in the b box.
func ListActiveWithin[Q postgres.Queryer](
	ctx context.Context, q Q, featured int, b geo.Bounds,
) ([]model.Vendor, error) {
	gdb := q.GORM(ctx).Where(
		"vendors.latitude BETWEEN ? AND ? AND vendors.longitude BETWEEN ? AND ?",
		b.MinLat, b.MaxLat, b.MinLon, b.MaxLon,
	)
	return list(gdb, featured)
}

func list(gdb *gorm.DB, featured int) ([]model.Vendor, error) {
	var gv []GVendor
	err := gdb.Session(&gorm.Session{}).Model(&GVendor{}).
		Joins("User").
		Where("vendors.is_active = ?", true).
		Order("vendors.created_at, vendors.id").
		Find(&gv).Error
	if err != nil {
		return nil, fmt.Errorf("querying vendors: %w", err)
	}
	vendors := make([]model.Vendor, len(gv))
	if len(gv) == 0 {
		return vendors, nil
	}
	ids := make([]uuid.UUID, len(gv))
	positions := make(map[uuid.UUID]int, len(gv))
	for i := range gv {
		vendors[i] = gv[i].Model()
		ids[i] = gv[i].ID
		positions[gv[i].ID] = i
	}
	db := gdb.Session(&gorm.Session{NewDB: true})
	if featured > 0 {
		var gp []GProduct
		err = db.Raw(featuredProductsQuery, map[string]any{
			"ids": ids, "limit": featured,
		}).Scan(&gp).Error
		if err != nil {
			return nil, fmt.Errorf("querying featured products: %w", err)
		}
		for i := range gp {
			v := &vendors[positions[gp[i].VendorID]]
			v.Products = append(v.Products, gp[i].Model())
		}
	}
	var counts []reviewCount
	err = db.Model(&GReview{}).
		Select("vendor_id, count(*) AS count").
		Where("vendor_id IN ?", ids).
		Group("vendor_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("counting reviews: %w", err)
	}
	for _, c := range counts {
		vendors[positions[c.VendorID]].ReviewCount = c.Count
	}
	return vendors, nil
}
