// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/ChainSafe/ssi/internal/inspector"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const colourFlag = "colour"

func (a *app) newStreamCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream [file]",
		Short: "Annotate the storage keys found in a text stream",
		Long: `Stream echoes each line read from the file given, or from standard input,
followed by the decoded names of every hex storage key found in the line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.execStream,
	}

	cmd.Flags().Bool(colourFlag, !color.NoColor, "colour the decoded names")
	return cmd
}

func (a *app) execStream(cmd *cobra.Command, args []string) (err error) {
	colour, err := cmd.Flags().GetBool(colourFlag)
	if err != nil {
		return fmt.Errorf("getting --%s: %w", colourFlag, err)
	}

	var reader io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		file, openErr := os.Open(args[0])
		if openErr != nil {
			return fmt.Errorf("opening input file: %w", openErr)
		}
		defer func() {
			closeErr := file.Close()
			if err == nil && closeErr != nil {
				err = fmt.Errorf("closing input file: %w", closeErr)
			}
		}()
		reader = file
	}

	return inspector.StreamDecode(reader, cmd.OutOrStdout(), colour, a.logger)
}
