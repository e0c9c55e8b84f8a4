// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ChainSafe/argon-client/config"
	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/client"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/keyring"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/pkg/argon"
	"github.com/ChainSafe/argon-client/pkg/scale"
	"github.com/qdm12/gotree"
	"github.com/spf13/cobra"
)

const (
	flagKeepAlive = "keep-alive"
	flagTip       = "tip"
)

var (
	errNoSigner      = errors.New("no signer configured")
	errInvalidAmount = errors.New("invalid amount")
)

func newBalanceCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance <address>",
		Short: "Print the argon and ulixee balances of an account",
		Long: `Print the argon and ulixee balances of an account given by its SS58 address.
Usage:
	argonctl balance 5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := argon.ParseAccountID(args[0])
			if err != nil {
				return err
			}

			at, err := blockHashFlag(cmd)
			if err != nil {
				return err
			}

			c, release, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			node, err := balanceNode(cmd, c, accountID, at)
			if err != nil {
				return err
			}
			cmd.Println(node)
			return nil
		},
	}
	addBlockHashFlag(cmd)
	return cmd
}

func balanceNode(cmd *cobra.Command, c *client.Client, accountID argon.AccountID,
	at *common.Hash) (*gotree.Node, error) {
	ctx := cmd.Context()
	storage := argon.Storage()

	info, err := client.FetchValueOrDefault(ctx, c.Storage(), storage.System().Account(accountID), at)
	if err != nil {
		return nil, err
	}

	node := gotree.New("Account %s", accountID)
	node.Appendf("Nonce: %d", info.Nonce)
	appendAccountData(node.Appendf("Argons:"), info.Data)

	ulixees, found, err := client.FetchValue(ctx, c.Storage(), storage.UlixeeBalances().Account(accountID), at)
	switch {
	case errors.Is(err, metadata.ErrNotFound):
		logger.Debugf("runtime has no ulixee balances: %s", err)
	case err != nil:
		return nil, err
	case found:
		appendAccountData(node.Appendf("Ulixees:"), ulixees)
	default:
		node.Appendf("Ulixees: none")
	}
	return node, nil
}

func appendAccountData(node *gotree.Node, data argon.AccountData) {
	node.Appendf("Free: %s", data.Free)
	node.Appendf("Reserved: %s", data.Reserved)
	node.Appendf("Frozen: %s", data.Frozen)
}

func newTransferCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer <destination> <amount>",
		Short: "Transfer argons from the configured signer",
		Long: `Transfer argons from the account of the --signer secret URI and wait
for the transfer to be included in a block.
Usage:
	argonctl transfer 5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty 1000 --signer //Alice
	argonctl transfer 5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty 1000 --keep-alive`,
		Args: cobra.ExactArgs(2), //nolint:gomnd
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := argon.ParseAccountID(args[0])
			if err != nil {
				return err
			}

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			keepAlive, err := cmd.Flags().GetBool(flagKeepAlive)
			if err != nil {
				return fmt.Errorf("failed to get --%s: %w", flagKeepAlive, err)
			}

			tip, err := cmd.Flags().GetUint64(flagTip)
			if err != nil {
				return fmt.Errorf("failed to get --%s: %w", flagTip, err)
			}

			if a.config.Signer == "" {
				return fmt.Errorf("%w: set --%s", errNoSigner, config.KeySigner)
			}
			signer, err := keyring.NewSignerFromURI(a.config.Signer, a.config.SS58Prefix)
			if err != nil {
				return err
			}

			c, release, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			balances := argon.Tx().ArgonBalances()
			payload := balances.TransferAllowDeath(dest, amount)
			if keepAlive {
				payload = balances.TransferKeepAlive(dest, amount)
			}

			return submitTransfer(cmd, c, payload, signer, tip)
		},
	}
	cmd.Flags().Bool(flagKeepAlive, false, "Fail the transfer if it would kill the sender account")
	cmd.Flags().Uint64(flagTip, 0, "Tip paid to the block author")
	return cmd
}

func submitTransfer(cmd *cobra.Command, c *client.Client, payload *chain.Payload,
	signer keyring.Signer, tip uint64) error {
	ctx := cmd.Context()
	progress, err := c.Tx().SignAndSubmitAndWatch(ctx, payload, signer,
		client.WithTip(scale.Uint128FromUint64(tip)))
	if err != nil {
		return err
	}
	defer func() {
		err := progress.Close()
		if err != nil {
			logger.Debugf("closing transaction progress: %s", err)
		}
	}()
	logger.Infof("submitted transaction %s", progress.ExtrinsicHash())

	inBlock, err := progress.WaitForInBlock(ctx)
	if err != nil {
		return err
	}

	err = inBlock.Success()
	if err != nil {
		return fmt.Errorf("transfer failed in block %s: %w", inBlock.BlockHash, err)
	}

	var transfer argon.ArgonTransfer
	found, err := inBlock.FindEvent(&transfer)
	if err != nil {
		return err
	}
	if !found {
		cmd.Printf("Transaction included in block %s\n", inBlock.BlockHash)
		return nil
	}
	cmd.Printf("Transferred %s from %s to %s in block %s\n",
		transfer.Amount, transfer.From, transfer.To, inBlock.BlockHash)
	return nil
}

// parseAmount parses a base 10 amount of the smallest balance unit.
func parseAmount(s string) (argon.Balance, error) {
	amount, ok := new(big.Int).SetString(s, 10) //nolint:gomnd
	if !ok {
		return argon.Balance{}, fmt.Errorf("%w: %q", errInvalidAmount, s)
	}
	balance, err := scale.NewUint128(amount)
	if err != nil {
		return argon.Balance{}, fmt.Errorf("%w: %s", errInvalidAmount, err)
	}
	return balance, nil
}
