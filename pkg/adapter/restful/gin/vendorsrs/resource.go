// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vendorsrs realizes the vendors resource, allowing the nearby
// vendors search REST API to be accepted and delegated to the vendors
// use case.
package vendorsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/ambulante/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/ambulante/pkg/core/usecase/vendorsuc"
)

type resource struct {
	vendors *vendorsuc.UseCase
}

// Register instantiates a resource adapting the vendors use case
// instance with the relevant REST APIs including:
//  1. GET request to vendors/nearby (relative to the r group)
//     in order to search the vendors around a coordinate.
func Register(r gin.IRoutes, vendors *vendorsuc.UseCase) {
	rs := &resource{vendors: vendors}
	r.GET("vendors/nearby", rs.FindNearby)
}

func (rs *resource) FindNearby(c *gin.Context) {
	q, ok := rs.DserNearbyReq(c)
	if !ok {
		return
	}
	nv, err := rs.vendors.FindNearby(c, *q)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerNearbyVendors(nv))
}
