// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"

	"github.com/ChainSafe/ssi/internal/inspector"
	"github.com/spf13/cobra"
)

func (a *app) newDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode or encode a storage key",
		Long: `Decode prints the pallet, field and map key names of the --storage-key given.
Given names with --pallet instead, it prints the hex encoded storage key.`,
		Args: cobra.NoArgs,
		RunE: a.execDecode,
	}

	addKeyFlags(cmd)
	return cmd
}

func (a *app) execDecode(cmd *cobra.Command, _ []string) error {
	storageKey, err := cmd.Flags().GetString(storageKeyFlag)
	if err != nil {
		return fmt.Errorf("getting --%s: %w", storageKeyFlag, err)
	}

	key, err := getStorageKey(cmd)
	if err != nil {
		return err
	}

	if storageKey == "" {
		a.logger.Debugf("built storage key 0x%s", key)
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "0x%s\n", key)
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), inspector.DecodeKey(key))
	return err
}
