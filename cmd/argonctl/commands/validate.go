// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/pkg/argon"
	"github.com/qdm12/gotree"
	"github.com/spf13/cobra"
)

var errIncompatibleBindings = errors.New("bindings are incompatible with the runtime")

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the Argon bindings against the runtime metadata",
		Long: `Check the signature hash of every Argon binding against the runtime metadata.
Bindings absent from the runtime are reported but do not fail the check.
Usage:
	argonctl validate
	argonctl validate --metadata-file argon.scale`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := a.loadMetadata(cmd)
			if err != nil {
				return err
			}

			report := validateBindings(md, argon.Bindings())
			cmd.Println(report.node())
			if len(report.incompatible) > 0 {
				return fmt.Errorf("%w: %d of %d", errIncompatibleBindings,
					len(report.incompatible), report.total)
			}
			return nil
		},
	}
}

type validationReport struct {
	total        int
	compatible   int
	absent       []string
	incompatible []error
}

func validateBindings(md *metadata.Metadata, bindings []chain.Binding) (report validationReport) {
	report.total = len(bindings)
	for _, binding := range bindings {
		err := binding.Validate(md)
		switch {
		case err == nil:
			report.compatible++
		case errors.Is(err, metadata.ErrNotFound):
			report.absent = append(report.absent, binding.String())
		default:
			report.incompatible = append(report.incompatible, err)
		}
	}
	return report
}

func (r validationReport) node() *gotree.Node {
	node := gotree.New("Bindings: %d", r.total)
	node.Appendf("Compatible: %d", r.compatible)

	absentNode := node.Appendf("Absent from the runtime: %d", len(r.absent))
	for _, name := range r.absent {
		absentNode.Appendf("%s", name)
	}

	incompatibleNode := node.Appendf("Incompatible: %d", len(r.incompatible))
	for _, err := range r.incompatible {
		incompatibleNode.Appendf("%s", err)
	}
	return node
}
