// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vendorsrs

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/ambulante/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/ambulante/pkg/core/model"
)

// rawNearbyReq keeps the query parameters as strings, so absent and
// empty parameters can be told apart from zero values.
type rawNearbyReq struct {
	Latitude  *string `form:"latitude" binding:"omitempty,max=64"`
	Longitude *string `form:"longitude" binding:"omitempty,max=64"`
	RadiusKm  *string `form:"radiusKm" binding:"omitempty,max=64"`
}

func (rs *resource) DserNearbyReq(
	c *gin.Context,
) (*model.ProximityQuery, bool) {
	req := &rawNearbyReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil, false
	}
	q := &model.ProximityQuery{}
	for _, p := range []struct {
		name string
		raw  *string
		dst  **float64
	}{
		{"latitude", req.Latitude, &q.Latitude},
		{"longitude", req.Longitude, &q.Longitude},
		{"radiusKm", req.RadiusKm, &q.RadiusKm},
	} {
		v, ok := parseOptionalFloat(p.raw)
		if !ok {
			serdser.BadRequest(c, p.name+" must be a number")
			return nil, false
		}
		*p.dst = v
	}
	return q, true
}

// parseOptionalFloat parses s as a float64. A nil or blank s is
// reported as a nil result and a true ok flag.
func parseOptionalFloat(s *string) (v *float64, ok bool) {
	if s == nil {
		return nil, true
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, false
	}
	return &f, true
}

// NearbyVendorsResp is the JSON response of a nearby vendors search.
type NearbyVendorsResp struct {
	Count   int          `json:"count"`
	Vendors []VendorResp `json:"vendors"`
}

type VendorResp struct {
	ID           uuid.UUID     `json:"id"`
	BusinessName string        `json:"businessName"`
	Description  string        `json:"description"`
	Rating       float64       `json:"rating"`
	Latitude     float64       `json:"latitude"`
	Longitude    float64       `json:"longitude"`
	User         UserResp      `json:"user"`
	Products     []ProductResp `json:"products"`
	Count        CountResp     `json:"_count"`
	Distance     float64       `json:"distance"` // in km
}

type UserResp struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar *string   `json:"avatar"`
	Phone  *string   `json:"phone"`
}

type ProductResp struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
	Image *string   `json:"image"`
}

type CountResp struct {
	Reviews int `json:"reviews"`
}

// SerNearbyVendors converts nv to its JSON response form. The vendors
// and products fields are always serialized as arrays (never null).
func SerNearbyVendors(nv *model.NearbyVendors) *NearbyVendorsResp {
	resp := &NearbyVendorsResp{
		Count:   nv.Count,
		Vendors: make([]VendorResp, len(nv.Vendors)),
	}
	for i, rv := range nv.Vendors {
		v := VendorResp{
			ID:           rv.ID,
			BusinessName: rv.BusinessName,
			Description:  rv.Description,
			Rating:       rv.Rating,
			Latitude:     rv.Coordinate.Lat,
			Longitude:    rv.Coordinate.Lon,
			User: UserResp{
				ID:     rv.Owner.ID,
				Name:   rv.Owner.Name,
				Email:  rv.Owner.Email,
				Avatar: rv.Owner.Avatar,
				Phone:  rv.Owner.Phone,
			},
			Products: make([]ProductResp, len(rv.Products)),
			Count:    CountResp{Reviews: rv.ReviewCount},
			Distance: rv.DistanceKm,
		}
		for j, p := range rv.Products {
			v.Products[j] = ProductResp{
				ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image,
			}
		}
		resp.Vendors[i] = v
	}
	return resp
}
