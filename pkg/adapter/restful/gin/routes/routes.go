// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/ambulante/pkg/adapter/config"
	"github.com/momeni/ambulante/pkg/adapter/restful/gin/settingsrs"
	"github.com/momeni/ambulante/pkg/adapter/restful/gin/vendorsrs"
	"github.com/momeni/ambulante/pkg/core/repo"
	"github.com/momeni/ambulante/pkg/core/usecase/vendorsuc"
)

// Register instantiates the vendors repository and use case based on
// the c configuration settings. The p connections pool is passed to
// the use case, so it may acquire/release connections on demand and
// pass them to the repository in order to run its queries. Thereafter,
// resources are registered on the e engine by the Mount function.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) error {
	vendors, err := c.NewVendorsUseCase(p)
	if err != nil {
		return fmt.Errorf("creating vendors use case: %w", err)
	}
	Mount(e, vendors, *c.Gin.Logger)
	return nil
}

// Mount registers the resources of the vendors use case on e.
// The versioned /api/ambweb/v1 group holds all resources, while the
// nearby vendors search is also served on its legacy path, that is,
// /api/users/vendors/nearby for the existing clients.
func Mount(e *gin.Engine, vendors *vendorsuc.UseCase, logger bool) {
	r := e.Group("/api/ambweb/v1")
	settingsrs.Register(r, vendors, logger)
	vendorsrs.Register(r, vendors)
	vendorsrs.Register(e.Group("/api/users"), vendors)
}
