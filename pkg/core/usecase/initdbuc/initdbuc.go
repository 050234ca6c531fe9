// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package initdbuc provides the database initialization use case.
// It (re)creates an empty schema as the admin role and then fills it
// with tables (and possibly sample vendors) as the normal role.
package initdbuc

import (
	"context"
	"fmt"

	"github.com/momeni/ambulante/pkg/core/log"
	"github.com/momeni/ambulante/pkg/core/repo"
)

// SchemaName is the database schema which holds all tables.
const SchemaName = "ambweb"

// Settings represents the expectations of the initialization use case
// from the configuration settings. It is implemented by the adapters
// layer which knows the database connection information.
type Settings interface {
	// ConnectionPool creates a database connection pool, connecting
	// as the r role. Passwords are read from the passwords file.
	ConnectionPool(ctx context.Context, r repo.Role) (repo.Pool, error)

	// NewSchemaRepo instantiates a fresh Schema repository.
	NewSchemaRepo() repo.Schema

	// SchemaInitializer creates a repo.SchemaInitializer which creates
	// tables in the given transaction.
	SchemaInitializer(tx repo.Tx) (repo.SchemaInitializer, error)

	// RenewPasswords generates new passwords for roles, records them
	// in a temporary passwords file, and calls change in order to
	// update them in the database. The returned finalizer must be
	// called after the change transaction commits, so the temporary
	// file replaces the main passwords file.
	RenewPasswords(
		ctx context.Context,
		change func(
			ctx context.Context,
			roles []repo.Role,
			passwords []string,
		) error,
		roles ...repo.Role,
	) (finalizer func() error, err error)
}

// UseCase represents the database initialization use case.
type UseCase struct {
	settings   Settings
	schemaRepo repo.Schema
}

// New creates a UseCase which connects to the database as described
// by the s settings.
func New(s Settings) *UseCase {
	return &UseCase{
		settings:   s,
		schemaRepo: s.NewSchemaRepo(),
	}
}

// InitProd recreates the ambweb schema and creates its empty tables.
// The schema, normal role creation, privileges, and passwords renewal
// are performed by the admin role in one transaction. Then, tables are
// created by the normal role in a second transaction, so they are owned
// by the normal role.
func (uc *UseCase) InitProd(ctx context.Context) error {
	return uc.initDB(
		ctx,
		func(ctx context.Context, si repo.SchemaInitializer) error {
			return si.InitProdSchema(ctx)
		},
	)
}

// InitDev is like InitProd, but also fills the tables with sample
// users, vendors, products, and reviews.
func (uc *UseCase) InitDev(ctx context.Context) error {
	return uc.initDB(
		ctx,
		func(ctx context.Context, si repo.SchemaInitializer) error {
			return si.InitDevSchema(ctx)
		},
	)
}

func (uc *UseCase) initDB(
	ctx context.Context,
	dbi func(ctx context.Context, si repo.SchemaInitializer) error,
) error {
	if err := uc.dropAndCreateAgain(ctx); err != nil {
		return fmt.Errorf("dropping/recreating schema: %w", err)
	}
	p, err := uc.settings.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for normal role: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			si, err := uc.settings.SchemaInitializer(tx)
			if err != nil {
				return fmt.Errorf("creating SchemaInitializer: %w", err)
			}
			if err := dbi(ctx, si); err != nil {
				return fmt.Errorf("initializing schema: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("normal connection: %w", err)
	}
	log.Info(ctx, "database is initialized")
	return nil
}

func (uc *UseCase) dropAndCreateAgain(ctx context.Context) error {
	p, err := uc.settings.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for admin: %w", err)
	}
	defer p.Close()
	var finalizer func() error
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := uc.schemaRepo.Tx(tx)
			if err := q.DropIfExists(ctx, SchemaName); err != nil {
				return fmt.Errorf("dropping %q: %w", SchemaName, err)
			}
			if err := q.CreateSchema(ctx, SchemaName); err != nil {
				return fmt.Errorf("creating %q: %w", SchemaName, err)
			}
			if err := q.CreateRoleIfNotExists(
				ctx, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("creating normal role: %w", err)
			}
			if err := q.GrantPrivileges(
				ctx, SchemaName, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("granting normal role privs: %w", err)
			}
			if err := q.SetSearchPath(
				ctx, SchemaName, repo.NormalRole,
			); err != nil {
				return fmt.Errorf(
					"setting search_path of normal role to %q: %w",
					SchemaName, err,
				)
			}
			finalizer, err = uc.settings.RenewPasswords(
				ctx, q.ChangePasswords, repo.AdminRole, repo.NormalRole,
			)
			if err != nil {
				return fmt.Errorf("RenewPasswords: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("admin connection: %w", err)
	}
	if err := finalizer(); err != nil {
		return fmt.Errorf("finalizing passwords renewal: %w", err)
	}
	return nil
}
