// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// SchemaInitializer creates the tables of an existing (and empty)
// schema. Each instance wraps a transaction, so all tables and rows
// are persisted only if that transaction commits.
type SchemaInitializer interface {
	// InitDevSchema creates tables and fills them with sample vendors
	// which are suitable for the development environments.
	InitDevSchema(ctx context.Context) error

	// InitProdSchema creates tables without inserting any rows.
	InitProdSchema(ctx context.Context) error
}

// Schema repository manages the database schema and roles, so the
// normal role can create and query tables in the ambweb schema.
type Schema interface {
	Tx(Tx) SchemaTxQueryer
}

// SchemaTxQueryer lists schema management operations which are run in
// an ongoing transaction. Schema and role names are not escaped, so
// callers are responsible to pass trusted strings.
type SchemaTxQueryer interface {
	// DropIfExists drops the `schema` schema with cascading if it
	// exists. A missing schema is not an error.
	DropIfExists(ctx context.Context, schema string) error

	// CreateSchema creates the `schema` schema which must not exist.
	CreateSchema(ctx context.Context, schema string) error

	// CreateRoleIfNotExists creates the `role` role with the login
	// option if it does not exist. No password is set for it, so
	// ChangePasswords should be called afterwards.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges grants ALL privileges on the `schema` schema
	// to the `role` role.
	GrantPrivileges(ctx context.Context, schema string, role Role) error

	// SetSearchPath alters the `role` role and sets its default
	// search_path to the `schema` schema alone.
	SetSearchPath(ctx context.Context, schema string, role Role) error

	// ChangePasswords updates the passwords of roles in pairs, so
	// roles and passwords slices must have the same length.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error
}
