// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"

	"github.com/ChainSafe/ssi/internal/inspector"
	"github.com/spf13/cobra"
)

func (a *app) newNamespacesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "namespaces <db-path>",
		Short: "Count the keys of each configured namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withInspector(args[0], func(inspectorInstance *inspector.Inspector) error {
				counts, err := inspectorInstance.Namespaces()
				if err != nil {
					return err
				}

				for _, count := range counts {
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", count.Name, count.Keys)
					if err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
