// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Role is a string specifying a database connection role. Each role
// has a set of granted privileges which indicates which operations
// may be performed after using it for connecting to a database.
// Passwords of roles are read from the passwords file which is kept
// in the pass-dir directory of the database configuration settings.
type Role string

const (
	// AdminRole is a super user role which must be created manually.
	// It is only used by the database initialization commands, so it
	// can (re)create the ambweb schema and the NormalRole.
	AdminRole Role = "admin"

	// NormalRole is an unprivileged role which owns the tables of the
	// ambweb schema and is used by the web server for all queries.
	NormalRole Role = "ambweb"
)
