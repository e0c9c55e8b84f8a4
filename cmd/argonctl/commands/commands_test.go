// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/lib/metadata/metadatatest"
	"github.com/ChainSafe/argon-client/pkg/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aliceHex = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"

func executeCommand(t *testing.T, args ...string) (output string, err error) {
	t.Helper()

	cmd := NewRootCommand()
	buffer := bytes.NewBuffer(nil)
	cmd.SetOut(buffer)
	cmd.SetErr(buffer)
	cmd.SetArgs(args)

	err = cmd.ExecuteContext(context.Background())
	return buffer.String(), err
}

func writeMetadataFile(t *testing.T) (path string) {
	t.Helper()

	path = filepath.Join(t.TempDir(), "argon.scale")
	err := os.WriteFile(path, metadatatest.ArgonBytes(metadata.V15), 0600)
	require.NoError(t, err)
	return path
}

func Test_validateCommand(t *testing.T) {
	path := writeMetadataFile(t)

	output, err := executeCommand(t, "validate", "--metadata-file", path)

	require.NoError(t, err)
	assert.Contains(t, output, "Incompatible: 0")
}

func Test_signaturesCommand(t *testing.T) {
	path := writeMetadataFile(t)

	output, err := executeCommand(t, "signatures", "System", "--metadata-file", path)

	require.NoError(t, err)
	assert.Contains(t, output, "System (index 0):")
	assert.Contains(t, output, "remark(remark:Vec<u8>)")
	assert.Contains(t, output, "hash "+metadata.SignatureHash("remark(remark:Vec<u8>)").String())
}

func Test_signaturesCommand_unknown(t *testing.T) {
	path := writeMetadataFile(t)

	_, err := executeCommand(t, "signatures", "Unknown", "--metadata-file", path)

	assert.ErrorIs(t, err, metadata.ErrNotFound)
}

func Test_constantsCommand(t *testing.T) {
	path := writeMetadataFile(t)

	output, err := executeCommand(t, "constants", "System", "SS58Prefix", "--metadata-file", path)

	require.NoError(t, err)
	assert.Contains(t, output, "SS58Prefix: 18")
	assert.NotContains(t, output, "BlockHashCount")
}

func Test_metadataCommand_output(t *testing.T) {
	path := writeMetadataFile(t)
	outputPath := filepath.Join(t.TempDir(), "exported.scale")

	_, err := executeCommand(t, "metadata", "--metadata-file", path, "--output", outputPath)
	require.NoError(t, err)

	raw, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	md, err := metadata.Decode(raw)
	require.NoError(t, err)

	expected := metadatatest.Argon(metadata.V15)
	assert.Equal(t, expected.Version, md.Version)
	assert.Len(t, md.Pallets, len(expected.Pallets))
}

func Test_keysInspectCommand(t *testing.T) {
	output, err := executeCommand(t, "keys", "inspect", "//Alice")

	require.NoError(t, err)
	assert.Contains(t, output, "Public key: "+aliceHex)
	assert.Contains(t, output, "Address: ")
}

func Test_configExportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "argon.toml")

	_, err := executeCommand(t, "config", "export", path,
		"--endpoint", "wss://rpc.testnet.argonprotocol.org")
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "wss://rpc.testnet.argonprotocol.org")

	output, err := executeCommand(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Endpoint: wss://rpc.testnet.argonprotocol.org")
}

func Test_validateBindings(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)
	bindings := []chain.Binding{
		chain.NewConstantAddress[uint16]("System", "SS58Prefix", "SS58Prefix:u16"),
		chain.NewConstantAddress[uint32]("System", "SS58Prefix", "SS58Prefix:u32"),
		chain.NewConstantAddress[uint32]("Unknown", "Constant", "Constant:u32"),
	}

	report := validateBindings(md, bindings)

	assert.Equal(t, 3, report.total)
	assert.Equal(t, 1, report.compatible)
	assert.Len(t, report.absent, 1)
	require.Len(t, report.incompatible, 1)
	assert.ErrorIs(t, report.incompatible[0], chain.ErrIncompatible)
}

func Test_parseAmount(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		s          string
		amount     scale.Uint128
		errWrapped error
	}{
		"zero": {
			s: "0",
		},
		"small": {
			s:      "1000",
			amount: scale.Uint128FromUint64(1000),
		},
		"max uint128": {
			s:      "340282366920938463463374607431768211455",
			amount: scale.Uint128{Upper: ^uint64(0), Lower: ^uint64(0)},
		},
		"overflow": {
			s:          "340282366920938463463374607431768211456",
			errWrapped: errInvalidAmount,
		},
		"negative": {
			s:          "-1",
			errWrapped: errInvalidAmount,
		},
		"not a number": {
			s:          "1e3",
			errWrapped: errInvalidAmount,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			amount, err := parseAmount(testCase.s)

			assert.ErrorIs(t, err, testCase.errWrapped)
			assert.Equal(t, testCase.amount, amount)
		})
	}
}
