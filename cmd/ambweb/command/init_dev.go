// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database with sample vendors",
	Long: `Initialize database with tables and a few sample vendors around
the Salvador city center which are suitable for the development
environment. The database connection information is read from the
config file and no changes will be made to the config file.
` + credsRenewalMessage + `
` + schemaMessage,
	RunE: initDev,
	Args: cobra.NoArgs,
}

func initDev(cmd *cobra.Command, _ []string) error {
	uc, err := newInitDBUseCase()
	if err != nil {
		return err
	}
	if err = uc.InitDev(cmd.Context()); err != nil {
		return fmt.Errorf("initializing DB with dev data: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initDevCmd)
}
