// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vendorsrp_test

import (
	"context"
	"testing"
	"time"

	"github.com/momeni/ambulante/internal/test/dbcontainer"
	"github.com/momeni/ambulante/pkg/adapter/db/postgres/initrp"
	"github.com/momeni/ambulante/pkg/adapter/db/postgres/vendorsrp"
	"github.com/momeni/ambulante/pkg/core/geo"
	"github.com/momeni/ambulante/pkg/core/model"
	"github.com/momeni/ambulante/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(vv []model.Vendor) []string {
	nn := make([]string, len(vv))
	for i, v := range vv {
		nn[i] = v.BusinessName
	}
	return nn
}

func TestVendorsRepo(t *testing.T) {
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	err := pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return initrp.New(tx).InitDevSchema(ctx)
		})
	})
	require.NoError(t, err, "creating the sample vendors")

	rp := vendorsrp.New(2)
	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		t.Run("list active vendors", func(t *testing.T) {
			vv, err := rp.Conn(c).ListActive(ctx)
			require.NoError(t, err)
			require.Equal(t, []string{
				"Acarajé da Dinha",
				"Tapioca do Porto",
				"Sorveteria da Ribeira",
			}, names(vv))

			a := vv[0]
			assert.Equal(t, "Dinha", a.Owner.Name)
			assert.Equal(t, "dinha@example.com", a.Owner.Email)
			require.NotNil(t, a.Owner.Phone)
			assert.Nil(t, a.Owner.Avatar)
			assert.Equal(t, model.Coordinate{Lat: -12.98, Lon: -38.51}, a.Coordinate)
			assert.InDelta(t, 4.8, a.Rating, 1e-9)
			if assert.Len(t, a.Products, 2, "featured products limit") {
				assert.Equal(t, "Acarajé", a.Products[0].Name)
				assert.Equal(t, "Abará", a.Products[1].Name)
			}
			assert.Equal(t, 2, a.ReviewCount)

			assert.Len(t, vv[1].Products, 2)
			assert.Equal(t, 1, vv[1].ReviewCount)
			assert.Len(t, vv[2].Products, 1)
			assert.Zero(t, vv[2].ReviewCount)
		})
		t.Run("list active vendors within bounds", func(t *testing.T) {
			center := model.Coordinate{Lat: -12.98, Lon: -38.51}
			b, ok := geo.BoundsAround(center, 1500)
			require.True(t, ok)
			vv, err := rp.Conn(c).ListActiveWithin(ctx, b)
			require.NoError(t, err)
			assert.Equal(t, []string{"Acarajé da Dinha"}, names(vv))

			far := geo.Bounds{MinLat: 10, MaxLat: 11, MinLon: 10, MaxLon: 11}
			vv, err = rp.Conn(c).ListActiveWithin(ctx, far)
			require.NoError(t, err)
			assert.Empty(t, vv)
		})
		t.Run("list in a transaction without products", func(t *testing.T) {
			err := c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
				vv, err := vendorsrp.New(0).Tx(tx).ListActive(ctx)
				if err != nil {
					return err
				}
				assert.Len(t, vv, 3)
				for _, v := range vv {
					assert.Empty(t, v.Products, v.BusinessName)
				}
				return nil
			})
			require.NoError(t, err)
		})
		return nil
	})
	require.NoError(t, err)
}
