// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// packNibbles packs nibbles two per byte, left padding
// an odd number of nibbles with a zero nibble.
func packNibbles(nibbles []byte) (packed []byte) {
	packed = make([]byte, 0, (len(nibbles)+1)/2)
	i := 0
	if len(nibbles)%2 == 1 {
		packed = append(packed, nibbles[0]&0x0f)
		i = 1
	}
	for ; i < len(nibbles); i += 2 {
		packed = append(packed, nibbles[i]<<4|nibbles[i+1]&0x0f)
	}
	return packed
}

func encodeCompactBytes(buffer *bytes.Buffer, data []byte) error {
	err := scale.NewEncoder(buffer).EncodeUintCompact(*big.NewInt(int64(len(data))))
	if err != nil {
		return fmt.Errorf("encoding compact length: %w", err)
	}
	buffer.Write(data)
	return nil
}

func childrenBitmap(children [ChildrenCapacity][]byte) []byte {
	var bitmap uint16
	for i, child := range children {
		if child != nil {
			bitmap |= 1 << i
		}
	}
	return []byte{byte(bitmap), byte(bitmap >> 8)}
}

func encodeChildren(buffer *bytes.Buffer, children [ChildrenCapacity][]byte) error {
	for i, child := range children {
		if child == nil {
			continue
		}
		err := encodeCompactBytes(buffer, child)
		if err != nil {
			return fmt.Errorf("encoding child %d: %w", i, err)
		}
	}
	return nil
}
