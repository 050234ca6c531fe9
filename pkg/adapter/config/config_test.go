// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config_test

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/momeni/ambulante/internal/test/fakerp"
	"github.com/momeni/ambulante/pkg/adapter/config"
	"github.com/momeni/ambulante/pkg/core/model"
	"github.com/momeni/ambulante/pkg/core/repo"
	"github.com/momeni/ambulante/pkg/core/usecase/vendorsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimal = `
database:
  host: 127.0.0.1
  port: 5432
  name: ambulante
  pass-dir: /tmp
`

func TestLoadSampleConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	c, err := config.Load(filepath.Join("..", "..", "..", "configs", "sample-config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "ambulante", c.Database.Name)
	assert.Equal(t, 5432, c.Database.Port)
	assert.Equal(t, "scram-sha-256", c.Database.AuthMethod)
	assert.True(t, *c.Gin.Logger)
	assert.True(t, *c.Gin.Recovery)
	assert.Equal(t, ":8080", c.Gin.Address)

	uc, err := c.NewVendorsUseCase(&fakerp.Pool{})
	require.NoError(t, err)
	assert.Equal(t, model.VendorsSettings{
		DefaultRadiusKm: 5,
		MinRadiusKm:     1,
		MaxRadiusKm:     50,
		Prefilter:       vendorsuc.PrefilterNone,
		FetchTimeout:    5 * time.Second,
	}, uc.Settings())
}

func TestParseFillsDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	c, err := config.Parse([]byte(minimal))
	require.NoError(t, err)
	v := c.Usecases.Vendors
	assert.Equal(t, config.DefaultRadiusKm, *v.DefaultRadiusKm)
	assert.Equal(t, config.DefaultMinRadiusKm, *v.MinRadiusKm)
	assert.Equal(t, config.DefaultMaxRadiusKm, *v.MaxRadiusKm)
	assert.Equal(t, config.DefaultFetchTimeout, time.Duration(*v.FetchTimeout))
	assert.Equal(t, config.DefaultIndexTTL, time.Duration(*v.IndexTTL))
	assert.Equal(t, config.DefaultFeaturedProducts, *v.FeaturedProducts)
	assert.False(t, *v.RejectZeroCoordinates)
	assert.Equal(t, vendorsuc.PrefilterNone, v.Prefilter)
	assert.False(t, *c.Gin.Logger)
	assert.False(t, *c.Gin.Recovery)
	assert.Equal(t, config.DefaultAddress, c.Gin.Address)
	assert.Equal(t, "scram-sha-256", c.Database.AuthMethod)
}

func TestParseSelectsThePrefilter(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	for _, tc := range []struct {
		yaml string
		want model.VendorsSettings
	}{
		{
			yaml: `
usecases:
  vendors:
    prefilter: bbox
    reject-zero-coordinates: true
`,
			want: model.VendorsSettings{
				DefaultRadiusKm:       5,
				MinRadiusKm:           1,
				MaxRadiusKm:           50,
				RejectZeroCoordinates: true,
				Prefilter:             vendorsuc.PrefilterBBox,
				FetchTimeout:          5 * time.Second,
			},
		},
		{
			yaml: `
usecases:
  vendors:
    prefilter: rtree
    default-radius-km: 2.5
    min-radius-km: 0.5
    max-radius-km: 10
    fetch-timeout: 1500ms
`,
			want: model.VendorsSettings{
				DefaultRadiusKm: 2.5,
				MinRadiusKm:     0.5,
				MaxRadiusKm:     10,
				Prefilter:       vendorsuc.PrefilterRTree,
				FetchTimeout:    1500 * time.Millisecond,
			},
		},
	} {
		c, err := config.Parse([]byte(minimal + tc.yaml))
		require.NoError(t, err, tc.yaml)
		uc, err := c.NewVendorsUseCase(&fakerp.Pool{})
		require.NoError(t, err, tc.yaml)
		assert.Equal(t, tc.want, uc.Settings(), tc.yaml)
	}
}

func TestParseRejectsInvalidSettings(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	for name, yml := range map[string]string{
		"prefilter": minimal + `
usecases:
  vendors:
    prefilter: quadtree
`,
		"default radius out of range": minimal + `
usecases:
  vendors:
    default-radius-km: 60
`,
		"inverted radius range": minimal + `
usecases:
  vendors:
    min-radius-km: 20
    max-radius-km: 10
    default-radius-km: 15
`,
		"negative featured products": minimal + `
usecases:
  vendors:
    featured-products: -1
`,
		"fetch timeout format": minimal + `
usecases:
  vendors:
    fetch-timeout: soon
`,
		"auth method": `
database:
  host: 127.0.0.1
  port: 5432
  name: ambulante
  auth-method: md5
`,
		"missing host": `
database:
  port: 5432
  name: ambulante
`,
		"two documents": "a: 1\n---\nb: 2\n",
	} {
		_, err := config.Parse([]byte(yml))
		assert.Error(t, err, name)
	}
}

func TestDatabaseURLOverridesConnectionInfo(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://ambweb:secret@db:5432/ambulante")
	c, err := config.Parse([]byte("gin:\n  logger: true\n"))
	require.NoError(t, err, "DATABASE_URL replaces host, port, and name")
	assert.True(t, *c.Gin.Logger)
}

func TestConnectionURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".pgpass")
	err := os.WriteFile(path, []byte(
		"# comment\n\n"+
			"db:5432:ambulante:admin:adminpass\n"+
			"db:5432:ambulante:ambweb:normal:pass\n",
	), 0o600)
	require.NoError(t, err)
	d := config.Database{Host: "db", Port: 5432, Name: "ambulante"}
	u, err := d.ConnectionURL(repo.NormalRole, path)
	require.NoError(t, err)
	assert.Equal(t, "postgresql://ambweb:normal%3Apass@db:5432/ambulante", u)
	u, err = d.ConnectionURL(repo.AdminRole, path)
	require.NoError(t, err)
	assert.Equal(t, "postgresql://admin:adminpass@db:5432/ambulante", u)

	_, err = d.ConnectionURL(repo.Role("nobody"), path)
	assert.Error(t, err)
	_, err = d.ConnectionURL(repo.AdminRole, filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRenewPasswords(t *testing.T) {
	dir := t.TempDir()
	d := config.Database{
		Host: "db", Port: 5432, Name: "ambulante", PassDir: dir,
	}
	var changed []string
	fin, err := d.RenewPasswords(
		context.Background(),
		func(_ context.Context, roles []repo.Role, pass []string) error {
			require.Equal(t, []repo.Role{repo.AdminRole, repo.NormalRole}, roles)
			changed = pass
			return nil
		},
		repo.AdminRole, repo.NormalRole,
	)
	require.NoError(t, err)
	require.Len(t, changed, 2)
	assert.NotEqual(t, changed[0], changed[1])

	_, err = os.Stat(filepath.Join(dir, ".pgpass"))
	assert.True(t, os.IsNotExist(err), "finalizer is not called yet")
	require.NoError(t, fin())

	path := filepath.Join(dir, ".pgpass")
	u, err := d.ConnectionURL(repo.NormalRole, path)
	require.NoError(t, err)
	pu, err := url.Parse(u)
	require.NoError(t, err)
	pass, _ := pu.User.Password()
	assert.Equal(t, changed[1], pass)
}
