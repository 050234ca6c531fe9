// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package initrp provides the repo.SchemaInitializer implementation
// which creates the users, vendors, products, and reviews tables in an
// existing schema, and optionally fills them with sample rows.
package initrp

import (
	"context"
	"fmt"

	"github.com/momeni/ambulante/pkg/adapter/db/postgres"
	"github.com/momeni/ambulante/pkg/adapter/db/postgres/vendorsrp"
	"github.com/momeni/ambulante/pkg/core/repo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Initializer wraps a single transaction of the destination database.
// The caller is responsible to commit that transaction in order to
// persist the created tables.
type Initializer struct {
	tx *postgres.Tx
}

var _ repo.SchemaInitializer = (*Initializer)(nil)

// New creates a new Initializer instance, wrapping the given `tx`
// database transaction. It panics if tx was not created by the
// postgres adapter package.
func New(tx repo.Tx) *Initializer {
	return &Initializer{tx: tx.(*postgres.Tx)}
}

// InitProdSchema creates the tables and their indices without
// inserting any rows.
func (i *Initializer) InitProdSchema(ctx context.Context) error {
	err := i.tx.GORM(ctx).AutoMigrate(vendorsrp.Models()...)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// InitDevSchema creates the tables (like InitProdSchema) and fills
// them with a few sample vendors around the Salvador city center.
func (i *Initializer) InitDevSchema(ctx context.Context) error {
	if err := i.InitProdSchema(ctx); err != nil {
		return err
	}
	s := newSamples()
	gdb := i.tx.GORM(ctx).Omit(clause.Associations).Session(
		&gorm.Session{},
	)
	for _, step := range []struct {
		name string
		rows any
	}{
		{"users", &s.users},
		{"vendors", &s.vendors},
		{"products", &s.products},
		{"reviews", &s.reviews},
	} {
		if err := gdb.Create(step.rows).Error; err != nil {
			return fmt.Errorf("inserting sample %s: %w", step.name, err)
		}
	}
	return nil
}
