// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"log/slog"

	"github.com/momeni/ambulante/pkg/adapter/restful/gin"
)

// DefaultAddress is the listening address of the web server when the
// gin.address setting is missing.
const DefaultAddress = ":8080"

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized. Missing items are filled by their
// default values (i.e., false) using ValidateAndNormalize.
type Gin struct {
	Logger   *bool  // Whether to register the request logging middleware
	Recovery *bool  // Whether to register the panic recovery middleware
	Address  string // Listening address, like :8080
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings. Middlewares log using the default slog logger.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger(slog.Default()))
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery(slog.Default()))
	}
	return gin.New(middlewares...)
}
