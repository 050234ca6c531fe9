// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres adapts the GORM framework (with its pgx based
// PostgreSQL driver) to the repo.Pool, repo.Conn, and repo.Tx
// interfaces. Repository packages, such as vendorsrp, unwrap these
// interfaces as *Conn and *Tx in order to run their GORM queries.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/momeni/ambulante/pkg/core/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SlowQueryThreshold is the minimum duration of a query which causes
// it to be logged as a slow query.
const SlowQueryThreshold = 200 * time.Millisecond

type Pool struct {
	*gorm.DB
}

var _ repo.Pool = (*Pool)(nil)

// NewPool connects to the url database and checks the connection by
// acquiring and releasing one connection. GORM messages (including
// slow queries and failed statements) are logged by the default slog
// logger at the warning level.
func NewPool(ctx context.Context, url string) (*Pool, error) {
	gdb, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: newLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	pool := &Pool{DB: gdb}
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

func newLogger() logger.Interface {
	w := slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn)
	return logger.New(w, logger.Config{
		SlowThreshold:             SlowQueryThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
		// Set to false in order to log with replaced vars
		ParameterizedQueries: true,
	})
}

type ConnHandler = repo.ConnHandler

func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn acquires one connection from the pool, passes it to f, and
// releases it when f returns.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		return f(ctx, &Conn{DB: c})
	})
}

// Close closes all connections of the pool.
func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
