// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/client"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/qdm12/gotree"
	"github.com/spf13/cobra"
)

var errMapEntry = errors.New("storage entry is a map")

func newStorageCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage <pallet> <entry>",
		Short: "Read a plain storage entry of the node",
		Long: `Read a plain storage entry and decode it using the runtime metadata.
Usage:
	argonctl storage System Number
	argonctl storage Timestamp Now --at 0x1234...`,
		Args: cobra.ExactArgs(2), //nolint:gomnd
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := blockHashFlag(cmd)
			if err != nil {
				return err
			}

			c, release, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			value, err := fetchPlainValue(cmd, c, args[0], args[1], at)
			if err != nil {
				return err
			}
			cmd.Printf("%s.%s: %v\n", args[0], args[1], value)
			return nil
		},
	}
	addBlockHashFlag(cmd)
	return cmd
}

func fetchPlainValue(cmd *cobra.Command, c *client.Client, pallet, entryName string,
	at *common.Hash) (value any, err error) {
	md := c.Metadata()
	_, entry, err := md.StorageEntry(pallet, entryName)
	if err != nil {
		return nil, err
	}
	if !entry.Type.Plain {
		return nil, fmt.Errorf("%w: %s.%s", errMapEntry, pallet, entryName)
	}

	// The entry is looked up by name so there is no static hash to check.
	address := &chain.StorageAddress[[]byte]{Pallet: pallet, Entry: entryName}
	raw, err := c.Storage().FetchRaw(cmd.Context(), address, at)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		if entry.Modifier != metadata.Default {
			return nil, nil //nolint:nilnil
		}
		raw = entry.Default
	}

	value, err = md.Types.DecodeValueBytes(entry.Type.Value, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s.%s: %w", pallet, entryName, err)
	}
	return value, nil
}

func newConstantsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "constants <pallet> [name]",
		Short: "Print the constants of a pallet",
		Long: `Print the decoded constants of a pallet, or a single constant.
Usage:
	argonctl constants ArgonBalances
	argonctl constants System SS58Prefix --metadata-file argon.scale`,
		Args: cobra.RangeArgs(1, 2), //nolint:gomnd
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := a.loadMetadata(cmd)
			if err != nil {
				return err
			}

			var name string
			if len(args) == 2 { //nolint:gomnd
				name = args[1]
			}
			node, err := constantsNode(md, args[0], name)
			if err != nil {
				return err
			}
			cmd.Println(node)
			return nil
		},
	}
}

// constantsNode decodes the constants of the pallet, or only the
// constant named if name is not empty.
func constantsNode(md *metadata.Metadata, palletName, name string) (*gotree.Node, error) {
	pallet, err := md.Pallet(palletName)
	if err != nil {
		return nil, err
	}

	node := gotree.New("%s constants:", pallet.Name)
	found := false
	for _, constant := range pallet.Constants {
		if name != "" && constant.Name != name {
			continue
		}
		found = true

		value, err := md.Types.DecodeValueBytes(constant.Type, constant.Value)
		if err != nil {
			return nil, fmt.Errorf("decoding %s.%s: %w", pallet.Name, constant.Name, err)
		}
		node.Appendf("%s: %v", constant.Name, value)
	}

	if name != "" && !found {
		return nil, fmt.Errorf("constant %s.%s: %w", pallet.Name, name, metadata.ErrNotFound)
	}
	return node, nil
}
