// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package initdbuc_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/momeni/ambulante/internal/test/fakerp"
	"github.com/momeni/ambulante/pkg/core/repo"
	"github.com/momeni/ambulante/pkg/core/usecase/initdbuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder implements all fake interfaces of this test and records
// their calls in order.
type recorder struct {
	calls   []string
	failing string
	pools   []*fakerp.Pool
}

func (r *recorder) record(call string) error {
	r.calls = append(r.calls, call)
	if call == r.failing {
		return errors.New("failed " + call)
	}
	return nil
}

func (r *recorder) ConnectionPool(
	_ context.Context, role repo.Role,
) (repo.Pool, error) {
	if err := r.record("pool " + string(role)); err != nil {
		return nil, err
	}
	p := &fakerp.Pool{}
	r.pools = append(r.pools, p)
	return p, nil
}

func (r *recorder) NewSchemaRepo() repo.Schema {
	return schemaRepo{r}
}

func (r *recorder) SchemaInitializer(repo.Tx) (repo.SchemaInitializer, error) {
	return initializer{r}, nil
}

func (r *recorder) RenewPasswords(
	ctx context.Context,
	change func(context.Context, []repo.Role, []string) error,
	roles ...repo.Role,
) (func() error, error) {
	passwords := make([]string, len(roles))
	for i := range roles {
		passwords[i] = fmt.Sprintf("pass%d", i)
	}
	if err := change(ctx, roles, passwords); err != nil {
		return nil, err
	}
	return func() error { return r.record("finalize") }, nil
}

type schemaRepo struct{ r *recorder }

func (s schemaRepo) Tx(repo.Tx) repo.SchemaTxQueryer {
	return s
}

func (s schemaRepo) DropIfExists(_ context.Context, schema string) error {
	return s.r.record("drop " + schema)
}

func (s schemaRepo) CreateSchema(_ context.Context, schema string) error {
	return s.r.record("create " + schema)
}

func (s schemaRepo) CreateRoleIfNotExists(_ context.Context, role repo.Role) error {
	return s.r.record("role " + string(role))
}

func (s schemaRepo) GrantPrivileges(
	_ context.Context, schema string, role repo.Role,
) error {
	return s.r.record("grant " + schema + " " + string(role))
}

func (s schemaRepo) SetSearchPath(
	_ context.Context, schema string, role repo.Role,
) error {
	return s.r.record("search_path " + schema + " " + string(role))
}

func (s schemaRepo) ChangePasswords(
	_ context.Context, roles []repo.Role, passwords []string,
) error {
	return s.r.record(fmt.Sprintf("passwords %v %v", roles, passwords))
}

type initializer struct{ r *recorder }

func (i initializer) InitDevSchema(context.Context) error {
	return i.r.record("dev tables")
}

func (i initializer) InitProdSchema(context.Context) error {
	return i.r.record("prod tables")
}

func expectedCalls(tables string) []string {
	return []string{
		"pool admin",
		"drop ambweb",
		"create ambweb",
		"role ambweb",
		"grant ambweb ambweb",
		"search_path ambweb ambweb",
		"passwords [admin ambweb] [pass0 pass1]",
		"finalize",
		"pool ambweb",
		tables,
	}
}

func TestInitDev(t *testing.T) {
	r := &recorder{}
	require.NoError(t, initdbuc.New(r).InitDev(context.Background()))
	assert.Equal(t, expectedCalls("dev tables"), r.calls)
	for _, p := range r.pools {
		assert.True(t, p.IsClosed())
	}
}

func TestInitProd(t *testing.T) {
	r := &recorder{}
	require.NoError(t, initdbuc.New(r).InitProd(context.Background()))
	assert.Equal(t, expectedCalls("prod tables"), r.calls)
}

func TestInitStopsAtFirstFailure(t *testing.T) {
	r := &recorder{failing: "grant ambweb ambweb"}
	err := initdbuc.New(r).InitDev(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "granting normal role privs")
	assert.Equal(t, expectedCalls("")[:5], r.calls)
}

func TestInitTablesFailure(t *testing.T) {
	r := &recorder{failing: "prod tables"}
	err := initdbuc.New(r).InitProd(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initializing schema")
}
