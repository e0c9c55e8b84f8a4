// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/crypto/sr25519"
	"github.com/ChainSafe/argon-client/lib/keyring"
	"github.com/spf13/cobra"
)

const flagPassword = "password"

func newKeysCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate and inspect sr25519 account keys",
	}
	cmd.AddCommand(newKeysGenerateCommand(a), newKeysInspectCommand(a))
	return cmd
}

func newKeysGenerateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new sr25519 keypair and its mnemonic",
		Long: `Generate a new sr25519 keypair and print its mnemonic and address.
With --password, the keypair is derived from the mnemonic and a password
read from the terminal.
Usage:
	argonctl keys generate
	argonctl keys generate --password`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			withPassword, err := cmd.Flags().GetBool(flagPassword)
			if err != nil {
				return fmt.Errorf("failed to get --%s: %w", flagPassword, err)
			}

			keypair, mnemonic, err := sr25519.GenerateKeypair()
			if err != nil {
				return fmt.Errorf("generating keypair: %w", err)
			}

			if withPassword {
				password, err := getPassword(cmd, "Enter the password of the keypair:")
				if err != nil {
					return err
				}
				keypair, err = sr25519.NewKeypairFromMnemonic(mnemonic, string(password))
				if err != nil {
					return fmt.Errorf("deriving keypair: %w", err)
				}
			}

			address, err := keypair.PublicKey().Address(a.config.SS58Prefix)
			if err != nil {
				return err
			}

			cmd.Printf("Mnemonic: %s\n", mnemonic)
			cmd.Printf("Public key: %s\n", keypair.PublicKey().Hex())
			cmd.Printf("Address: %s\n", address)
			return nil
		},
	}
	cmd.Flags().Bool(flagPassword, false, "Derive the keypair with a password read from the terminal")
	return cmd
}

func newKeysInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <uri>",
		Short: "Print the address of a secret URI",
		Long: `Print the public key and address of a secret URI, such as a mnemonic
with an optional derivation path, or a development account.
Usage:
	argonctl keys inspect //Alice
	argonctl keys inspect "<mnemonic>//hard/soft"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := keyring.NewSignerFromURI(args[0], a.config.SS58Prefix)
			if err != nil {
				return err
			}

			address, err := keyring.Address(signer, a.config.SS58Prefix)
			if err != nil {
				return err
			}

			accountID := signer.AccountID()
			cmd.Printf("Public key: %s\n", common.BytesToHex(accountID[:]))
			cmd.Printf("Address: %s\n", address)
			return nil
		},
	}
}
