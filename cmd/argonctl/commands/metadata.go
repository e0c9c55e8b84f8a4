// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/qdm12/gotree"
	"github.com/spf13/cobra"
)

const flagOutput = "output"

func newMetadataCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Print the pallets and runtime APIs of the runtime metadata",
		Long: `Print the pallets and runtime APIs of the runtime metadata.
Usage:
	argonctl metadata
	argonctl metadata --output argon.scale`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := a.loadMetadata(cmd)
			if err != nil {
				return err
			}

			output, err := cmd.Flags().GetString(flagOutput)
			if err != nil {
				return fmt.Errorf("failed to get --%s: %w", flagOutput, err)
			}
			if output != "" {
				return writeMetadata(md, output)
			}

			cmd.Println(metadataNode(md))
			return nil
		},
	}
	cmd.Flags().String(flagOutput, "", "Write the SCALE encoded metadata to this file instead of printing it")
	return cmd
}

func writeMetadata(md *metadata.Metadata, path string) error {
	raw, err := metadata.Encode(md)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	const perms = 0600
	err = os.WriteFile(path, raw, perms)
	if err != nil {
		return fmt.Errorf("writing metadata file: %w", err)
	}
	return nil
}

func metadataNode(md *metadata.Metadata) *gotree.Node {
	node := gotree.New("Runtime metadata v%d:", md.Version)

	palletsNode := node.Appendf("Pallets:")
	for _, pallet := range md.Pallets {
		palletNode := palletsNode.Appendf("%d %s", pallet.Index, pallet.Name)
		if pallet.Calls != nil {
			palletNode.Appendf("Calls: %d", len(variants(md, *pallet.Calls)))
		}
		if pallet.Storage != nil {
			palletNode.Appendf("Storage entries: %d", len(pallet.Storage.Entries))
		}
		if pallet.Event != nil {
			palletNode.Appendf("Events: %d", len(variants(md, *pallet.Event)))
		}
		if len(pallet.Constants) > 0 {
			palletNode.Appendf("Constants: %d", len(pallet.Constants))
		}
		if pallet.Error != nil {
			palletNode.Appendf("Errors: %d", len(variants(md, *pallet.Error)))
		}
	}

	if md.Version < metadata.V15 {
		return node
	}
	apisNode := node.Appendf("Runtime APIs:")
	for _, api := range md.APIs {
		apiNode := apisNode.Appendf("%s", api.Name)
		for _, method := range api.Methods {
			apiNode.Appendf("%s", method.Name)
		}
	}
	return node
}

func variants(md *metadata.Metadata, id metadata.TypeID) []metadata.Variant {
	typ, err := md.Types.Type(id)
	if err != nil || typ.Definition.Kind != metadata.KindVariant {
		return nil
	}
	return typ.Definition.Variants
}

func newSignaturesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "signatures <pallet or runtime API>",
		Short: "Print the signatures and signature hashes of a pallet or runtime API",
		Long: `Print the signatures and signature hashes of a pallet or runtime API.
Bindings are compatible with the runtime when their signature hashes match.
Usage:
	argonctl signatures ArgonBalances
	argonctl signatures BlockSealApis`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := a.loadMetadata(cmd)
			if err != nil {
				return err
			}

			node, err := signaturesNode(md, args[0])
			if err != nil {
				return err
			}
			cmd.Println(node)
			return nil
		},
	}
}

func signaturesNode(md *metadata.Metadata, name string) (*gotree.Node, error) {
	pallet, err := md.Pallet(name)
	if errors.Is(err, metadata.ErrNotFound) {
		return apiSignaturesNode(md, name)
	} else if err != nil {
		return nil, err
	}

	node := gotree.New("%s (index %d):", pallet.Name, pallet.Index)
	if pallet.Calls != nil {
		callsNode := node.Appendf("Calls:")
		for _, variant := range variants(md, *pallet.Calls) {
			signature, err := md.CallSignature(pallet.Name, variant.Name)
			appendSignature(callsNode, signature, err)
		}
	}
	if pallet.Storage != nil {
		storageNode := node.Appendf("Storage:")
		for _, entry := range pallet.Storage.Entries {
			signature, err := md.StorageSignature(pallet.Name, entry.Name)
			appendSignature(storageNode, signature, err)
		}
	}
	if len(pallet.Constants) > 0 {
		constNode := node.Appendf("Constants:")
		for _, constant := range pallet.Constants {
			signature, err := md.ConstantSignature(pallet.Name, constant.Name)
			appendSignature(constNode, signature, err)
		}
	}
	if pallet.Event != nil {
		eventsNode := node.Appendf("Events:")
		for _, variant := range variants(md, *pallet.Event) {
			signature, err := md.EventSignature(pallet.Name, variant.Name)
			appendSignature(eventsNode, signature, err)
		}
	}
	return node, nil
}

func apiSignaturesNode(md *metadata.Metadata, trait string) (*gotree.Node, error) {
	for _, api := range md.APIs {
		if api.Name != trait {
			continue
		}
		node := gotree.New("%s:", api.Name)
		for _, method := range api.Methods {
			signature, err := md.RuntimeAPISignature(api.Name, method.Name)
			appendSignature(node, signature, err)
		}
		return node, nil
	}
	return nil, fmt.Errorf("pallet or runtime API %s: %w", trait, metadata.ErrNotFound)
}

func appendSignature(node *gotree.Node, signature string, err error) {
	if err != nil {
		node.Appendf("error: %s", err)
		return
	}
	node.Appendf("%s", signature).Appendf("hash %s", metadata.SignatureHash(signature))
}
