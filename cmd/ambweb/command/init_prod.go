// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database with empty tables",
	Long: `Initialize database with empty tables which are suitable for
the production environment. The database connection information is read
from the config file and no changes will be made to the config file.
` + credsRenewalMessage + `
` + schemaMessage,
	RunE: initProd,
	Args: cobra.NoArgs,
}

func initProd(cmd *cobra.Command, _ []string) error {
	uc, err := newInitDBUseCase()
	if err != nil {
		return err
	}
	if err = uc.InitProd(cmd.Context()); err != nil {
		return fmt.Errorf("initializing DB with prod data: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initProdCmd)
}
