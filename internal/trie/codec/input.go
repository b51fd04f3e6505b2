// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"bytes"
	"fmt"
	"math"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// input is a cursor over an encoded node handing out byte ranges.
type input struct {
	data   []byte
	offset int
}

func (in *input) take(count int) (r BytesRange, err error) {
	if count < 0 || in.offset+count > len(in.data) {
		return r, fmt.Errorf("%w: taking %d bytes at offset %d of %d bytes",
			ErrTruncated, count, in.offset, len(in.data))
	}
	r = BytesRange{Start: in.offset, End: in.offset + count}
	in.offset += count
	return r, nil
}

func (in *input) readByte() (b byte, err error) {
	if in.offset >= len(in.data) {
		return 0, fmt.Errorf("%w: reading byte at offset %d", ErrTruncated, in.offset)
	}
	b = in.data[in.offset]
	in.offset++
	return b, nil
}

func (in *input) peekByte() (b byte, err error) {
	if in.offset >= len(in.data) {
		return 0, fmt.Errorf("%w: peeking byte at offset %d", ErrTruncated, in.offset)
	}
	return in.data[in.offset], nil
}

// compactLength reads a SCALE compact encoded length.
func (in *input) compactLength() (length int, err error) {
	reader := bytes.NewReader(in.data[in.offset:])
	value, err := scale.NewDecoder(reader).DecodeUintCompact()
	if err != nil {
		return 0, fmt.Errorf("%w: compact length at offset %d: %s",
			ErrTruncated, in.offset, err)
	}

	in.offset = len(in.data) - reader.Len()

	if !value.IsInt64() || value.Int64() > math.MaxInt32 {
		return 0, fmt.Errorf("%w: compact length %s is too large",
			ErrTruncated, value)
	}
	return int(value.Int64()), nil
}

// bitmap reads the 16 bits little endian children bitmap of a branch.
func (in *input) bitmap() (bitmap uint16, err error) {
	r, err := in.take(bitmapLength)
	if err != nil {
		return 0, fmt.Errorf("reading children bitmap: %w", err)
	}
	data := r.Slice(in.data)
	bitmap = uint16(data[0]) | uint16(data[1])<<8
	if bitmap == 0 {
		return 0, fmt.Errorf("%w: branch without children", ErrBadFormat)
	}
	return bitmap, nil
}

// children reads the children present in the bitmap, each one as a
// compact length followed by either a hash or an inline node.
func (in *input) children(bitmap uint16) (children [ChildrenCapacity]ChildPlan, err error) {
	for i := 0; i < ChildrenCapacity; i++ {
		if bitmap&(1<<i) == 0 {
			continue
		}

		count, err := in.compactLength()
		if err != nil {
			return children, fmt.Errorf("child %d: %w", i, err)
		}

		r, err := in.take(count)
		if err != nil {
			return children, fmt.Errorf("child %d: %w", i, err)
		}

		if count == hashLength {
			children[i] = HashChild{Bytes: r}
		} else {
			children[i] = InlineChild{Bytes: r}
		}
	}
	return children, nil
}

// partial reads the partial key of nibbleCount nibbles, left padded
// to a whole number of bytes.
func (in *input) partial(nibbleCount int, checkPadding bool) (plan NibbleSlicePlan, err error) {
	padding := nibbleCount % 2
	if padding == 1 && checkPadding {
		first, err := in.peekByte()
		if err != nil {
			return plan, fmt.Errorf("reading partial key: %w", err)
		}
		if first&0xf0 != 0 {
			return plan, fmt.Errorf("%w: partial key padding is not zero: %08b",
				ErrBadFormat, first)
		}
	}

	r, err := in.take((nibbleCount + 1) / 2)
	if err != nil {
		return plan, fmt.Errorf("reading partial key: %w", err)
	}
	return NibbleSlicePlan{Bytes: r, Offset: padding}, nil
}
