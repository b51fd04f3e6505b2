// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"github.com/ChainSafe/ssi/internal/inspector"
	"github.com/spf13/cobra"
)

func (a *app) newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <db-path>",
		Short: "Inspect the subtrie at a storage key",
		Long: `Inspect walks the state trie at the root hash given down to the storage key,
and reports the values found in the subtrie below it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execInspect(cmd, args[0])
		},
	}

	cmd.Flags().StringP(rootHashFlag, "r", "", "0x prefixed state root hash")
	_ = cmd.MarkFlagRequired(rootHashFlag)
	addKeyFlags(cmd)
	addWalkFlags(cmd)
	return cmd
}

func (a *app) execInspect(cmd *cobra.Command, path string) error {
	query, err := getQuery(cmd)
	if err != nil {
		return err
	}

	reporter, err := a.newReporter(cmd, query.Key)
	if err != nil {
		return err
	}

	return a.withInspector(path, func(inspectorInstance *inspector.Inspector) error {
		entries, err := inspectorInstance.Inspect(query)
		if err != nil {
			return err
		}
		return reporter.Inspect(entries)
	})
}
