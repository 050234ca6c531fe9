// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vendorsrp

import (
	"time"

	"github.com/google/uuid"
	"github.com/momeni/ambulante/pkg/core/model"
)

// Models lists the GORM models of this package in their creation
// order, so they may be passed to the gorm.DB.AutoMigrate method.
func Models() []any {
	return []any{&GUser{}, &GVendor{}, &GProduct{}, &GReview{}}
}

// GUser is a marketplace user. Only those users who own a vendor are
// relevant for the proximity search.
type GUser struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"not null;uniqueIndex"`
	Avatar    *string
	Phone     *string
	CreatedAt time.Time
}

func (gu *GUser) TableName() string {
	return "users"
}

// GVendor is a vendor profile which is owned by one user. Its latitude
// and longitude columns hold the current location of the vendor.
type GVendor struct {
	ID           uuid.UUID `gorm:"primaryKey;type:uuid"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	User         GUser     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	BusinessName string    `gorm:"not null"`
	Description  string    `gorm:"not null;default:''"`
	Rating       float64   `gorm:"not null;default:0"`
	Latitude     float64   `gorm:"type:double precision;not null;index:idx_vendors_location,priority:1"`
	Longitude    float64   `gorm:"type:double precision;not null;index:idx_vendors_location,priority:2"`
	IsActive     bool      `gorm:"not null;index"`
	CreatedAt    time.Time
}

func (gv *GVendor) TableName() string {
	return "vendors"
}

func (gv *GVendor) Model() model.Vendor {
	return model.Vendor{
		ID:           gv.ID,
		BusinessName: gv.BusinessName,
		Description:  gv.Description,
		Rating:       gv.Rating,
		Coordinate: model.Coordinate{
			Lat: gv.Latitude,
			Lon: gv.Longitude,
		},
		Owner: model.Profile{
			ID:     gv.User.ID,
			Name:   gv.User.Name,
			Email:  gv.User.Email,
			Avatar: gv.User.Avatar,
			Phone:  gv.User.Phone,
		},
	}
}

// GProduct is a product of a vendor. Products are featured by their
// creation order, so the oldest products are listed first.
type GProduct struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	VendorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Vendor    GVendor   `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
	Name      string    `gorm:"not null"`
	Price     float64   `gorm:"not null"`
	Image     *string
	CreatedAt time.Time
}

func (gp *GProduct) TableName() string {
	return "products"
}

func (gp *GProduct) Model() model.Product {
	return model.Product{
		ID:    gp.ID,
		Name:  gp.Name,
		Price: gp.Price,
		Image: gp.Image,
	}
}

// GReview is a customer review of a vendor. Only their count is used
// by the proximity search.
type GReview struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	VendorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Vendor    GVendor   `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	User      GUser     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"not null;default:''"`
	CreatedAt time.Time
}

func (gr *GReview) TableName() string {
	return "reviews"
}
