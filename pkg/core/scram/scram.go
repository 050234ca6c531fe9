// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the Salted Challenge Response Authentication
// Mechanism (SCRAM) expectations of the use cases layer. Only hashing
// is required, so database role passwords may be renewed without
// sending their plaintext versions in ALTER ROLE statements. The
// implementation lives in the pkg/adapter/hash/scram package.
package scram

// Hasher computes the stored and server keys of a password for some
// specific hash function (such as SHA-256) and serializes them.
type Hasher interface {
	// Hash returns the hashed form of pass in the PostgreSQL format:
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	//
	// The pass must be non-empty and is normalized by SASLprep (see
	// RFC 4013). The salt must be base64 encoded and an empty salt
	// asks for a random one. The iters must be at least 4096.
	Hash(pass, salt string, iters int) (string, error)
}
