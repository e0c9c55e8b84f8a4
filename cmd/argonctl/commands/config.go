// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"github.com/ChainSafe/argon-client/config"
	"github.com/spf13/cobra"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or export the client configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(a.config.String())
		},
	}

	export := &cobra.Command{
		Use:   "export <path>",
		Short: "Write the resolved configuration to a TOML file",
		Long: `Write the configuration resolved from the defaults, the configuration
file, the environment and the flags to a TOML file.
Usage:
	argonctl config export argon.toml
	argonctl config export argon.toml --endpoint wss://rpc.testnet.argonprotocol.org`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := config.Export(a.config, args[0])
			if err != nil {
				return err
			}
			logger.Infof("exported configuration to %s", args[0])
			return nil
		},
	}

	cmd.AddCommand(show, export)
	return cmd
}
