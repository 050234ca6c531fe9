// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// Models of this package are not annotated with ORM tags. The adapters
// layer keeps its own tagged structs (see the GVendor struct
// in the pkg/adapter/db/postgres/vendorsrp package) and converts them
// into these models.
package model

import "github.com/google/uuid"

// Vendor is a candidate vendor as provided by the vendors repository.
// It is a read-only projection of an active vendor, its owner profile,
// a bounded list of featured products, and its reviews count.
// The use cases layer treats Vendor instances as immutable inputs and
// never modifies them (or their nested slices).
type Vendor struct {
	ID           uuid.UUID
	BusinessName string
	Description  string
	Rating       float64
	Coordinate   Coordinate // current location of the vendor
	Owner        Profile    // public profile of the owner user
	Products     []Product  // featured products, at most N items
	ReviewCount  int
}

// Profile contains the public fields of the user who owns a vendor.
type Profile struct {
	ID     uuid.UUID
	Name   string
	Email  string
	Avatar *string // nil if the user has not uploaded an avatar
	Phone  *string // nil if the user has not published a phone number
}

// Product is a featured product of a vendor.
type Product struct {
	ID    uuid.UUID
	Name  string
	Price float64
	Image *string
}
