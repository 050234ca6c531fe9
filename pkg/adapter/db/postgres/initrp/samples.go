// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package initrp

import (
	"time"

	"github.com/google/uuid"
	"github.com/momeni/ambulante/pkg/adapter/db/postgres/vendorsrp"
)

// epoch is the creation time of the first sample row. Other rows are
// created one minute apart, so their featured order is predictable.
var epoch = time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)

type samples struct {
	users    []vendorsrp.GUser
	vendors  []vendorsrp.GVendor
	products []vendorsrp.GProduct
	reviews  []vendorsrp.GReview
	clock    time.Time
}

// id derives a stable UUID from name, so sample rows keep their IDs
// across the InitDevSchema runs.
func id(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("ambweb:"+name))
}

func ptr(s string) *string {
	return &s
}

func (s *samples) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *samples) user(name, email string, phone *string) uuid.UUID {
	u := vendorsrp.GUser{
		ID:        id("user:" + email),
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: s.tick(),
	}
	s.users = append(s.users, u)
	return u.ID
}

func (s *samples) vendor(
	owner uuid.UUID, name, desc string,
	rating, lat, lon float64, active bool,
) uuid.UUID {
	v := vendorsrp.GVendor{
		ID:           id("vendor:" + name),
		UserID:       owner,
		BusinessName: name,
		Description:  desc,
		Rating:       rating,
		Latitude:     lat,
		Longitude:    lon,
		IsActive:     active,
		CreatedAt:    s.tick(),
	}
	s.vendors = append(s.vendors, v)
	return v.ID
}

func (s *samples) product(vendor uuid.UUID, name string, price float64) {
	s.products = append(s.products, vendorsrp.GProduct{
		ID:        id("product:" + vendor.String() + ":" + name),
		VendorID:  vendor,
		Name:      name,
		Price:     price,
		CreatedAt: s.tick(),
	})
}

func (s *samples) review(vendor, author uuid.UUID, rating int, comment string) {
	s.reviews = append(s.reviews, vendorsrp.GReview{
		ID:        id("review:" + vendor.String() + ":" + author.String()),
		VendorID:  vendor,
		UserID:    author,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.tick(),
	})
}

func newSamples() *samples {
	s := &samples{clock: epoch}
	dinha := s.user("Dinha", "dinha@example.com", ptr("+55 71 90000-0001"))
	porto := s.user("Joana", "joana@example.com", nil)
	ribeira := s.user("Carlos", "carlos@example.com", ptr("+55 71 90000-0003"))
	closed := s.user("Rita", "rita@example.com", nil)
	customer := s.user("Marina", "marina@example.com", nil)

	acaraje := s.vendor(
		dinha, "Acarajé da Dinha", "Acarajé and abará, made to order",
		4.8, -12.98, -38.51, true,
	)
	tapioca := s.vendor(
		porto, "Tapioca do Porto", "Sweet and savory tapiocas",
		4.5, -12.95, -38.49, true,
	)
	sorvete := s.vendor(
		ribeira, "Sorveteria da Ribeira", "Artisanal fruit ice creams",
		4.9, -13.01, -38.52, true,
	)
	s.vendor(
		closed, "Coco Gelado", "Cold coconut water",
		4.1, -12.9716, -38.5102, false,
	)

	s.product(acaraje, "Acarajé", 12)
	s.product(acaraje, "Abará", 10)
	s.product(acaraje, "Cocada", 5)
	s.product(acaraje, "Vatapá", 8)
	s.product(tapioca, "Tapioca de coco", 9.5)
	s.product(tapioca, "Tapioca de queijo", 11)
	s.product(sorvete, "Sorvete de cajá", 7)

	s.review(acaraje, customer, 5, "Best acarajé in town")
	s.review(acaraje, porto, 5, "")
	s.review(tapioca, customer, 4, "Quick and tasty")
	return s
}
