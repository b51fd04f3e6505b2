// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package inspector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ChainSafe/ssi/lib/storagekey"
	"github.com/fatih/color"
)

var hexLiteralRegex = regexp.MustCompile(`[0-9a-f]{32,}`)

// decodedSeparator joins the names of the hex literals of a line.
const decodedSeparator = "; "

// StreamDecode copies each line read from reader to writer, followed by
// a single "==> pallet > field > key" line joining the names of the hex
// literals of the line whose pallet is known. Lines without a known hex
// literal are only copied.
func StreamDecode(reader io.Reader, writer io.Writer, colour bool, logger Logger) (err error) {
	marker := color.New(color.FgBlue)
	if colour {
		marker.EnableColor()
	} else {
		marker.DisableColor()
	}

	bufferedReader := bufio.NewReader(reader)
	for {
		line, readErr := bufferedReader.ReadString('\n')
		if line != "" {
			err = decodeLine(strings.TrimRight(line, "\r\n"), writer, marker, logger)
			if err != nil {
				return err
			}
		}

		switch {
		case errors.Is(readErr, io.EOF):
			return nil
		case readErr != nil:
			return fmt.Errorf("reading line: %w", readErr)
		}
	}
}

func decodeLine(line string, writer io.Writer, marker *color.Color, logger Logger) (err error) {
	_, err = fmt.Fprintln(writer, line)
	if err != nil {
		return fmt.Errorf("writing line: %w", err)
	}

	var names []string
	for _, literal := range hexLiteralRegex.FindAllString(line, -1) {
		logger.Debugf("capture hex literal: %s", literal)
		decoded := storagekey.SemanticDecode(literal, true)
		if decoded.Pallet == nil {
			continue
		}
		names = append(names, decoded.String())
	}

	if len(names) == 0 {
		return nil
	}

	_, err = marker.Fprintf(writer, "==> %s\n", strings.Join(names, decodedSeparator))
	if err != nil {
		return fmt.Errorf("writing decoded literals: %w", err)
	}
	return nil
}
