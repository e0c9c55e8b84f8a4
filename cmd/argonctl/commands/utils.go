// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ChainSafe/argon-client/internal/metrics"
	"github.com/ChainSafe/argon-client/lib/client"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/lib/rpc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	terminal "golang.org/x/term"
)

var errNotTerminal = errors.New("standard input is not a terminal")

// addStringFlagBindViper adds a string flag to the given command and binds it to the given viper name
func addStringFlagBindViper(cmd *cobra.Command, v *viper.Viper,
	name,
	defaultValue,
	usage,
	viperBindName string,
) error {
	cmd.PersistentFlags().String(name, defaultValue, usage)
	return v.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// addBoolFlagBindViper adds a bool flag to the given command and binds it to the given viper name
func addBoolFlagBindViper(
	cmd *cobra.Command,
	v *viper.Viper,
	name string,
	defaultValue bool,
	usage string,
	viperBindName string,
) error {
	cmd.PersistentFlags().Bool(name, defaultValue, usage)
	return v.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// addUint16FlagBindViper adds a uint16 flag to the given command and binds it to the given viper name
func addUint16FlagBindViper(
	cmd *cobra.Command,
	v *viper.Viper,
	name string,
	defaultValue uint16,
	usage string,
	viperBindName string,
) error {
	cmd.PersistentFlags().Uint16(name, defaultValue, usage)
	return v.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// addUint64FlagBindViper adds a uint64 flag to the given command and binds it to the given viper name
func addUint64FlagBindViper(
	cmd *cobra.Command,
	v *viper.Viper,
	name string,
	defaultValue uint64,
	usage string,
	viperBindName string,
) error {
	cmd.PersistentFlags().Uint64(name, defaultValue, usage)
	return v.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// addInt64FlagBindViper adds an int64 flag to the given command and binds it to the given viper name
func addInt64FlagBindViper(
	cmd *cobra.Command,
	v *viper.Viper,
	name string,
	defaultValue int64,
	usage string,
	viperBindName string,
) error {
	cmd.PersistentFlags().Int64(name, defaultValue, usage)
	return v.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// addDurationFlagBindViper adds a duration flag to the given command and binds it to the given viper name
func addDurationFlagBindViper(
	cmd *cobra.Command,
	v *viper.Viper,
	name string,
	defaultValue time.Duration,
	usage string,
	viperBindName string,
) error {
	cmd.PersistentFlags().Duration(name, defaultValue, usage)
	return v.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// connect creates a client for the configured node. When metrics are
// enabled, the RPC requests of the client are observed and served
// until release is called.
func (a *app) connect(ctx context.Context) (c *client.Client, release func(), err error) {
	var options []client.Option
	var metricsServer *metrics.Server
	if a.config.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		collector := metrics.NewRPCCollector(registry)
		options = append(options, client.WithRPCOptions(rpc.WithObserver(collector)))

		metricsServer = metrics.NewServer(a.config.Metrics.Address, registry)
		err = metricsServer.Start()
		if err != nil {
			return nil, nil, err
		}
	}

	c, err = client.New(ctx, a.config, options...)
	if err != nil {
		stopMetrics(metricsServer)
		return nil, nil, err
	}

	release = func() {
		err := c.Close()
		if err != nil {
			logger.Warnf("closing client: %s", err)
		}
		stopMetrics(metricsServer)
	}
	return c, release, nil
}

func stopMetrics(server *metrics.Server) {
	if server == nil {
		return
	}
	err := server.Stop()
	if err != nil {
		logger.Warnf("stopping metrics server: %s", err)
	}
}

// loadMetadata returns the metadata of the --metadata-file flag if it
// is set, or the metadata of the configured node otherwise.
func (a *app) loadMetadata(cmd *cobra.Command) (*metadata.Metadata, error) {
	path, err := cmd.Flags().GetString(flagMetadataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to get --%s: %w", flagMetadataFile, err)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading metadata file: %w", err)
		}
		return metadata.Decode(raw)
	}

	c, release, err := a.connect(cmd.Context())
	if err != nil {
		return nil, err
	}
	defer release()
	return c.Metadata(), nil
}

// blockHashFlag returns the block hash of the --at flag, or nil
// for the best block.
func blockHashFlag(cmd *cobra.Command) (*common.Hash, error) {
	at, err := cmd.Flags().GetString(flagAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get --%s: %w", flagAt, err)
	}
	if at == "" {
		return nil, nil //nolint:nilnil
	}

	hash, err := common.HexToHash(at)
	if err != nil {
		return nil, fmt.Errorf("parsing block hash: %w", err)
	}
	return &hash, nil
}

func addBlockHashFlag(cmd *cobra.Command) {
	cmd.Flags().String(flagAt, "", "Hex encoded hash of the block to read at, the best block if empty")
}

// getPassword prompts user to enter password
func getPassword(cmd *cobra.Command, msg string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !terminal.IsTerminal(fd) {
		return nil, errNotTerminal
	}

	cmd.PrintErrln(msg)
	cmd.PrintErr("> ")
	password, err := terminal.ReadPassword(fd)
	cmd.PrintErrln()
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	return password, nil
}
