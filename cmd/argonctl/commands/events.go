// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/pkg/argon"
	"github.com/qdm12/gotree"
	"github.com/spf13/cobra"
)

func newEventsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print the events of a block",
		Long: `Print the events of the best block, or of the block given with --at.
Usage:
	argonctl events
	argonctl events --at 0x1234...`,
		Args: cobra.NoArgs,
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

			records, err := c.Events(cmd.Context(), at)
			if err != nil {
				return err
			}

			title := "Best block events"
			if at != nil {
				title = fmt.Sprintf("Block %s events", at)
			}
			cmd.Println(eventsNode(c.Metadata(), title, records))
			return nil
		},
	}
	addBlockHashFlag(cmd)
	return cmd
}

func newFollowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "follow",
		Short: "Print the events of each finalized block",
		Long: `Follow the finalized blocks of the node and print their events
until interrupted.
Usage:
	argonctl follow`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, release, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer release()

			headers, errs, err := c.SubscribeFinalizedBlocks(ctx)
			if err != nil {
				return err
			}

			for header := range headers {
				hash, err := header.Hash()
				if err != nil {
					return fmt.Errorf("hashing header %d: %w", header.Number, err)
				}

				records, err := c.Events(ctx, &hash)
				if err != nil {
					return err
				}
				title := fmt.Sprintf("Block %d %s", header.Number, hash)
				cmd.Println(eventsNode(c.Metadata(), title, records))
			}

			err = <-errs
			if err != nil {
				return err
			}
			logger.Debug("finalized blocks subscription ended")
			return nil
		},
	}
}

// eventsNode lists the event records, decoded into their typed event
// when registered and into generic values otherwise.
func eventsNode(md *metadata.Metadata, title string, records []chain.EventRecord) *gotree.Node {
	node := gotree.New("%s: %d", title, len(records))
	for _, record := range records {
		recordNode := node.Appendf("%s.%s (%s)", record.Pallet, record.Name, phaseString(record.Phase))

		event, err := argon.Events.Decode(record)
		switch {
		case err == nil:
			recordNode.Appendf("%+v", event)
			continue
		case !errors.Is(err, chain.ErrUnknownEvent):
			recordNode.Appendf("error: %s", err)
			continue
		}

		values, err := record.Values(md)
		if err != nil {
			recordNode.Appendf("error: %s", err)
			continue
		}
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			recordNode.Appendf("%s: %v", name, values[name])
		}
	}
	return node
}

func phaseString(phase chain.Phase) string {
	if phase.Kind == chain.PhaseApplyExtrinsic {
		return fmt.Sprintf("%s %d", phase.Kind, phase.ExtrinsicIndex)
	}
	return phase.Kind.String()
}
