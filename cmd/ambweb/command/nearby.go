// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/momeni/ambulante/pkg/adapter/config"
	"github.com/momeni/ambulante/pkg/adapter/restful/gin/vendorsrs"
	"github.com/momeni/ambulante/pkg/core/model"
	"github.com/momeni/ambulante/pkg/core/repo"
	"github.com/spf13/cobra"
)

var nearbyFlags struct {
	latitude, longitude, radiusKm float64
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "Find the nearby vendors of a location",
	Long: `Find the active vendors around the given latitude and longitude
and print them in the same JSON format which is used by the REST API.
The radius-km flag may be omitted in order to use the default radius.`,
	RunE: nearby,
	Args: cobra.NoArgs,
}

func nearby(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	uc, err := c.NewVendorsUseCase(p)
	if err != nil {
		return fmt.Errorf("creating vendors use case: %w", err)
	}
	f := nearbyFlags
	q := model.ProximityQuery{Latitude: &f.latitude, Longitude: &f.longitude}
	if cmd.Flags().Changed("radius-km") {
		q.RadiusKm = &f.radiusKm
	}
	nv, err := uc.FindNearby(ctx, q)
	if err != nil {
		return fmt.Errorf("finding nearby vendors: %w", err)
	}
	b, err := json.MarshalIndent(vendorsrs.SerNearbyVendors(nv), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling nearby vendors: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

func init() {
	fs := nearbyCmd.Flags()
	fs.Float64Var(&nearbyFlags.latitude, "latitude", 0, "customer latitude")
	fs.Float64Var(&nearbyFlags.longitude, "longitude", 0, "customer longitude")
	fs.Float64Var(&nearbyFlags.radiusKm, "radius-km", 0, "search radius in km")
	nearbyCmd.MarkFlagRequired("latitude")
	nearbyCmd.MarkFlagRequired("longitude")
	rootCmd.AddCommand(nearbyCmd)
}
