// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"

	"github.com/ChainSafe/ssi/internal/inspector"
	"github.com/ChainSafe/ssi/lib/common"
	"github.com/spf13/cobra"
)

func (a *app) newDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <db-path>",
		Short: "Compare the subtries at a storage key between two state roots",
		Long: `Diff inspects the subtrie at the storage key for both state roots
and reports the entries inserted, modified and deleted going from the
--root-hash state to the --diff-root-hash state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execDiff(cmd, args[0])
		},
	}

	cmd.Flags().StringP(rootHashFlag, "r", "", "0x prefixed state root hash of the state before")
	cmd.Flags().StringP(diffRootHashFlag, "R", "", "0x prefixed state root hash of the state after")
	_ = cmd.MarkFlagRequired(rootHashFlag)
	_ = cmd.MarkFlagRequired(diffRootHashFlag)
	addKeyFlags(cmd)
	addWalkFlags(cmd)
	return cmd
}

func (a *app) execDiff(cmd *cobra.Command, path string) error {
	query, err := getQuery(cmd)
	if err != nil {
		return err
	}

	diffRootHash, err := cmd.Flags().GetString(diffRootHashFlag)
	if err != nil {
		return fmt.Errorf("getting --%s: %w", diffRootHashFlag, err)
	}

	after, err := common.HexToHash(diffRootHash)
	if err != nil {
		return fmt.Errorf("parsing --%s: %w", diffRootHashFlag, err)
	}

	reporter, err := a.newReporter(cmd, query.Key)
	if err != nil {
		return err
	}

	return a.withInspector(path, func(inspectorInstance *inspector.Inspector) error {
		entries, err := inspectorInstance.Diff(query, after)
		if err != nil {
			return err
		}
		return reporter.Diff(entries)
	})
}
