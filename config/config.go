// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package config holds the client configuration. Values are read,
// in increasing precedence, from the defaults, a TOML file, ARGON_
// prefixed environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/naoina/toml"
	"github.com/qdm12/gotree"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables overriding the configuration.
const EnvPrefix = "ARGON"

// Configuration keys, also used as flag names.
const (
	KeyEndpoint         = "endpoint"
	KeyRequestTimeout   = "request-timeout"
	KeyLogLevel         = "log-level"
	KeyLogCaller        = "log-caller"
	KeyDataDir          = "data-dir"
	KeySS58Prefix       = "ss58-prefix"
	KeySigner           = "signer"
	KeyMortalityPeriod  = "mortality-period"
	KeyStorageCacheSize = "storage-cache-size"
	KeyMetricsEnabled   = "metrics.enabled"
	KeyMetricsAddress   = "metrics.address"
)

var ErrInvalid = errors.New("invalid configuration")

// Client is the configuration of the Argon client.
type Client struct {
	// Endpoint is the ws, wss, http or https URL of the node.
	Endpoint       string        `mapstructure:"endpoint" toml:"endpoint" validate:"required,url"`
	RequestTimeout time.Duration `mapstructure:"request-timeout" toml:"request-timeout" validate:"gt=0"`
	LogLevel       string        `mapstructure:"log-level" toml:"log-level" validate:"oneof=trace debug info warn error critical"` //nolint:lll
	// LogCaller adds the file and line of the caller to log lines.
	LogCaller bool `mapstructure:"log-caller" toml:"log-caller"`
	// DataDir is the directory of the on-disk metadata cache.
	// The cache is kept in memory when empty.
	DataDir    string `mapstructure:"data-dir" toml:"data-dir"`
	SS58Prefix uint16 `mapstructure:"ss58-prefix" toml:"ss58-prefix" validate:"lte=16383"`
	// Signer is the secret URI of the signing key, such as //Alice.
	Signer          string `mapstructure:"signer" toml:"signer"`
	MortalityPeriod uint64 `mapstructure:"mortality-period" toml:"mortality-period" validate:"gte=4,lte=65536"`
	// StorageCacheSize is the maximum size in bytes of cached storage values.
	StorageCacheSize int64   `mapstructure:"storage-cache-size" toml:"storage-cache-size" validate:"gte=0"`
	Metrics          Metrics `mapstructure:"metrics" toml:"metrics"`
}

// Metrics is the configuration of the Prometheus metrics server.
type Metrics struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Address string `mapstructure:"address" toml:"address" validate:"required_if=Enabled true,omitempty,hostname_port"`
}

// Default returns the default configuration, pointing at a local node.
func Default() Client {
	return Client{
		Endpoint:         "ws://127.0.0.1:9944",
		RequestTimeout:   30 * time.Second,
		LogLevel:         "info",
		SS58Prefix:       18,
		MortalityPeriod:  64,
		StorageCacheSize: 32 << 20,
		Metrics: Metrics{
			Address: "localhost:9615",
		},
	}
}

// Validate validates the configuration struct tags.
func (c Client) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, len(validationErrors))
	for i, fieldError := range validationErrors {
		messages[i] = fmt.Sprintf("%s fails %q (value %v)",
			fieldError.Namespace(), fieldError.Tag(), fieldError.Value())
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(messages, "; "))
}

// SetDefaults registers the default configuration values in v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault(KeyEndpoint, defaults.Endpoint)
	v.SetDefault(KeyRequestTimeout, defaults.RequestTimeout)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyLogCaller, defaults.LogCaller)
	v.SetDefault(KeyDataDir, defaults.DataDir)
	v.SetDefault(KeySS58Prefix, defaults.SS58Prefix)
	v.SetDefault(KeySigner, defaults.Signer)
	v.SetDefault(KeyMortalityPeriod, defaults.MortalityPeriod)
	v.SetDefault(KeyStorageCacheSize, defaults.StorageCacheSize)
	v.SetDefault(KeyMetricsEnabled, defaults.Metrics.Enabled)
	v.SetDefault(KeyMetricsAddress, defaults.Metrics.Address)
}

// Load reads the configuration from v, after reading the TOML file at
// path if it is not empty, and validates it. Flags must be bound to v
// by the caller.
func Load(v *viper.Viper, path string) (config Client, err error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		err = v.ReadInConfig()
		if err != nil {
			return config, fmt.Errorf("reading configuration file: %w", err)
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return config, fmt.Errorf("decoding configuration: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return config, err
	}
	return config, nil
}

// Export writes the configuration as TOML to the file at path.
func Export(config Client, path string) error {
	raw, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}

	const perms = 0600
	err = os.WriteFile(path, raw, perms)
	if err != nil {
		return fmt.Errorf("writing configuration file: %w", err)
	}
	return nil
}

func (c Client) String() string {
	return c.toLinesNode().String()
}

func (c Client) toLinesNode() (node *gotree.Node) {
	node = gotree.New("Client settings:")
	node.Appendf("Endpoint: %s", c.Endpoint)
	node.Appendf("Request timeout: %s", c.RequestTimeout)
	node.Appendf("Log level: %s", c.LogLevel)
	if c.LogCaller {
		node.Appendf("Log caller: yes")
	}
	dataDir := c.DataDir
	if dataDir == "" {
		dataDir = "[in memory]"
	}
	node.Appendf("Metadata cache: %s", dataDir)
	node.Appendf("SS58 prefix: %d", c.SS58Prefix)
	signer := "[not set]"
	if c.Signer != "" {
		signer = "[set]"
	}
	node.Appendf("Signer: %s", signer)
	node.Appendf("Mortality period: %d blocks", c.MortalityPeriod)
	node.Appendf("Storage cache size: %d bytes", c.StorageCacheSize)

	metricsNode := node.Appendf("Metrics:")
	if !c.Metrics.Enabled {
		metricsNode.Appendf("Enabled: no")
		return node
	}
	metricsNode.Appendf("Enabled: yes")
	metricsNode.Appendf("Listening address: %s", c.Metrics.Address)
	return node
}
