// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settingsrs realizes the settings resource, so frontends can
// fetch the effective search settings (such as the acceptable radius
// range) before sending a nearby vendors query.
package settingsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/ambulante/pkg/core/model"
	"github.com/momeni/ambulante/pkg/core/usecase/vendorsuc"
)

type resource struct {
	vendors *vendorsuc.UseCase
	logger  bool
}

// Register instantiates a resource reporting the vendors use case
// settings with the relevant REST APIs including:
//  1. GET request to settings (relative to the r group)
//     in order to fetch the current visible settings.
//
// The logger flag reports if the REST API logging middleware is used.
func Register(r gin.IRoutes, vendors *vendorsuc.UseCase, logger bool) {
	rs := &resource{vendors: vendors, logger: logger}
	r.GET("settings", rs.FetchSettings)
}

func (rs *resource) FetchSettings(c *gin.Context) {
	vs := model.VisibleSettings{
		Vendors: rs.vendors.Settings(),
		Logger:  rs.logger,
	}
	c.JSON(http.StatusOK, SerVisibleSettings(vs))
}
