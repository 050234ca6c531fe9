// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemarp provides a reification of the repo.Schema interface
// making it possible to create or drop the ambweb schema and manage
// the database user roles.
package schemarp

import (
	"context"

	"github.com/momeni/ambulante/pkg/adapter/db/postgres"
	"github.com/momeni/ambulante/pkg/core/repo"
	"github.com/momeni/ambulante/pkg/core/scram"
)

// Repo represents a schema management repository. Its hasher is used
// for computing the SCRAM hashes of the role passwords.
type Repo struct {
	hasher scram.Hasher
}

var _ repo.Schema = (*Repo)(nil)

// New instantiates a schema management Repo struct.
func New(hasher scram.Hasher) *Repo {
	return &Repo{hasher: hasher}
}

type txQueryer struct {
	*postgres.Tx
	hasher scram.Hasher
}

// Tx unwraps the given repo.Tx instance, expecting to find an
// instance of *postgres.Tx as created by this adapter layer.
// Otherwise, it will panic. Unwrapped transaction will be wrapped and
// returned as an instance of repo.SchemaTxQueryer interface.
func (schema *Repo) Tx(tx repo.Tx) repo.SchemaTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt, hasher: schema.hasher}
}

func (tq txQueryer) DropIfExists(ctx context.Context, schema string) error {
	return DropIfExists(ctx, tq.Tx, schema)
}

func (tq txQueryer) CreateSchema(ctx context.Context, schema string) error {
	return CreateSchema(ctx, tq.Tx, schema)
}

func (tq txQueryer) CreateRoleIfNotExists(
	ctx context.Context, role repo.Role,
) error {
	return CreateRoleIfNotExists(ctx, tq.Tx, role)
}

func (tq txQueryer) GrantPrivileges(
	ctx context.Context, schema string, role repo.Role,
) error {
	return GrantPrivileges(ctx, tq.Tx, schema, role)
}

func (tq txQueryer) SetSearchPath(
	ctx context.Context, schema string, role repo.Role,
) error {
	return SetSearchPath(ctx, tq.Tx, schema, role)
}

func (tq txQueryer) ChangePasswords(
	ctx context.Context, roles []repo.Role, passwords []string,
) error {
	return ChangePasswords(ctx, tq.Tx, tq.hasher, roles, passwords)
}
