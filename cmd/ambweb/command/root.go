// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the ambweb
// nearby vendors service. Commands are organized using the cobra
// library. The root command starts the web server itself, the "nearby"
// sub-command runs one proximity search and prints its JSON result,
// and the "db" sub-command can be used for the database initialization
// actions.
//
//	./ambweb [-c /path/of/config.yaml]           # start web server
//	./ambweb nearby --latitude -12.97 --longitude -38.51 [--radius-km 5]
//	./ambweb db init-dev [-c /path/of/config.yaml]
//	./ambweb db init-prod [-c /path/of/config.yaml]
//
// A .env file in the working directory, if present, is loaded before
// the config file, so it may set the CONFIG_FILE and DATABASE_URL
// environment variables.
package command

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/momeni/ambulante/pkg/adapter/config"
	"github.com/momeni/ambulante/pkg/adapter/restful/gin"
	"github.com/momeni/ambulante/pkg/adapter/restful/gin/routes"
	"github.com/momeni/ambulante/pkg/core/log"
	"github.com/momeni/ambulante/pkg/core/repo"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "ambweb",
	Short: "Nearby mobile vendors search service",
	Long: `Nearby mobile vendors search service which finds the active
vendors around a customer location, computing their great-circle
distances with the haversine formula and returning those within the
search radius from the nearest to the farthest one.
The REST API is served on /api/ambweb/v1/vendors/nearby (and the legacy
/api/users/vendors/nearby path), while /api/ambweb/v1/settings reports
the acceptable search radius range.`,
	RunE:         startWebServer,
	SilenceUsage: true,
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	log.Info(
		ctx, "configuration is loaded",
		slog.String("path", cfgPath),
		slog.String("address", c.Gin.Address),
		slog.String("prefilter", c.Usecases.Vendors.Prefilter),
	)
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if err = e.Run(c.Gin.Address); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code is
// zero for success and one for failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadDotEnv, fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// loadDotEnv loads the .env file, if it exists. Variables which are
// already set in the environment are not overridden.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "ignoring the .env file: %v\n", err)
	}
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
