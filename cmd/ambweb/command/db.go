// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/momeni/ambulante/pkg/adapter/config"
	"github.com/momeni/ambulante/pkg/core/usecase/initdbuc"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used respectively.`,
}

const credsRenewalMessage = `
The admin role connects using its password from the .pgpass file in the
pass-dir directory. Passwords of the admin and ambweb roles are renewed
and written to the .pgpass.new file first. When they are changed in the
database successfully, .pgpass.new replaces the .pgpass file.`

const schemaMessage = `
The ambweb schema is dropped (with all of its tables) and recreated, so
all existing vendors will be lost.`

func newInitDBUseCase() (*initdbuc.UseCase, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	return initdbuc.New(c), nil
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
