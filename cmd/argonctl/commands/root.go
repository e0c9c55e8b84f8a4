// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package commands implements the argonctl command line interface.
package commands

import (
	"fmt"

	"github.com/ChainSafe/argon-client/config"
	"github.com/ChainSafe/argon-client/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "cmd"))

const (
	flagConfig       = "config"
	flagMetadataFile = "metadata-file"
	flagAt           = "at"
)

// app holds the state shared by the commands of one root command.
type app struct {
	viper  *viper.Viper
	config config.Client
}

// NewRootCommand creates the root command and its subcommands.
func NewRootCommand() *cobra.Command {
	a := &app{viper: viper.New()}

	cmd := &cobra.Command{
		Use:   "argonctl",
		Short: "Command-line client of the Argon chain",
		Long: `argonctl reads the state of an Argon node and submits transactions to it.
Usage:
	argonctl validate
	argonctl balance 5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY
	argonctl transfer --signer //Alice 5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty 1000000
	argonctl --endpoint wss://rpc.testnet.argonprotocol.org events`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	err := addRootFlags(cmd, a.viper)
	if err != nil {
		// flags are statically defined so binding them cannot fail
		panic(err)
	}

	cmd.AddCommand(
		newMetadataCommand(a),
		newSignaturesCommand(a),
		newValidateCommand(a),
		newStorageCommand(a),
		newConstantsCommand(a),
		newEventsCommand(a),
		newFollowCommand(a),
		newBalanceCommand(a),
		newTransferCommand(a),
		newKeysCommand(a),
		newConfigCommand(a),
	)
	return cmd
}

// addRootFlags adds the persistent flags overriding the configuration
// and binds them to v.
func addRootFlags(cmd *cobra.Command, v *viper.Viper) error {
	defaults := config.Default()

	cmd.PersistentFlags().String(flagConfig, "", "TOML configuration file")
	cmd.PersistentFlags().String(flagMetadataFile, "",
		"SCALE encoded runtime metadata file, used instead of the node metadata when set")

	if err := addStringFlagBindViper(cmd, v,
		config.KeyEndpoint,
		defaults.Endpoint,
		"ws, wss, http or https URL of the node",
		config.KeyEndpoint); err != nil {
		return fmt.Errorf("failed to add --%s flag: %w", config.KeyEndpoint, err)
	}
	if err := addDurationFlagBindViper(cmd, v,
		config.KeyRequestTimeout,
		defaults.RequestTimeout,
		"Timeout of each RPC request",
		config.KeyRequestTimeout); err != nil {
		return fmt.Errorf("failed to add --%s flag: %w", config.KeyRequestTimeout, err)
	}
	if err := addStringFlagBindViper(cmd, v,
		config.KeyLogLevel,
		defaults.LogLevel,
		"Log level. Supports levels critical, error, warn, info, debug and trace",
		config.KeyLogLevel); err != nil {
		return fmt.Errorf("failed to add --%s flag: %w", config.KeyLogLevel, err)
	}
	if err := addBoolFlagBindViper(cmd, v,
		config.KeyLogCaller,
		defaults.LogCaller,
		"Add the file and line of the caller to log lines",
		config.KeyLogCaller); err != nil {
		return fmt.Errorf("failed to add --%s flag: %w", config.KeyLogCaller, err)
	}
	if err := addStringFlagBindViper(cmd, v,
		config.KeyDataDir,
		defaults.DataDir,
		"Directory of the metadata cache, kept in memory when empty",
		config.KeyDataDir); err != nil {
		return fmt.Errorf("failed to add --%s flag: %w", config.KeyDataDir, err)
	}
	if err := addUint16FlagBindViper(cmd, v,
		config.KeySS58Prefix,
		defaults.SS58Prefix,
		"SS58 prefix of printed addresses",
		config.KeySS58Prefix); err != nil {
		return fmt.Errorf("failed to add --%s flag: %w", config.KeySS58Prefix, err)
	}
	if err := addStringFlagBindViper(cmd, v,
		config.KeySigner,
		defaults.Signer,
		"Secret URI of the signing key, such as //Alice or a mnemonic",
		config.KeySigner); err != nil {
		return fmt.Errorf("failed to add --%s flag: %w", config.KeySigner, err)
	}
	if err := addUint64FlagBindViper(cmd, v,
		config.KeyMortalityPeriod,
		defaults.MortalityPeriod,
		"Number of blocks a signed transaction stays valid",
		config.KeyMortalityPeriod); err != nil {
		return fmt.Errorf("failed to add --%s flag: %w", config.KeyMortalityPeriod, err)
	}
	if err := addInt64FlagBindViper(cmd, v,
		config.KeyStorageCacheSize,
		defaults.StorageCacheSize,
		"Maximum size in bytes of cached storage values, 0 to disable",
		config.KeyStorageCacheSize); err != nil {
		return fmt.Errorf("failed to add --%s flag: %w", config.KeyStorageCacheSize, err)
	}
	if err := addBoolFlagBindViper(cmd, v,
		"metrics",
		defaults.Metrics.Enabled,
		"Serve Prometheus metrics of the RPC requests",
		config.KeyMetricsEnabled); err != nil {
		return fmt.Errorf("failed to add --%s flag: %w", "metrics", err)
	}
	if err := addStringFlagBindViper(cmd, v,
		"metrics-address",
		defaults.Metrics.Address,
		"Listen address of the metrics server",
		config.KeyMetricsAddress); err != nil {
		return fmt.Errorf("failed to add --%s flag: %w", "metrics-address", err)
	}
	return nil
}

// loadConfig loads the configuration and applies its log level.
func (a *app) loadConfig(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return fmt.Errorf("failed to get --%s: %w", flagConfig, err)
	}

	a.config, err = config.Load(a.viper, path)
	if err != nil {
		return err
	}

	level, err := log.ParseLevel(a.config.LogLevel)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	log.Patch(log.SetLevel(level), log.SetCaller(a.config.LogCaller))

	logger.Debugf("configuration loaded:\n%s", a.config)
	return nil
}
