// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"bytes"
	"fmt"
)

type variant struct {
	bits byte
	mask byte
}

// Node variants of the Substrate layout.
// See https://spec.polkadot.network/#defn-node-header
var (
	leafVariant = variant{ // leaf 01
		bits: 0b0100_0000,
		mask: 0b1100_0000,
	}
	branchVariant = variant{ // branch 10
		bits: 0b1000_0000,
		mask: 0b1100_0000,
	}
	branchWithValueVariant = variant{ // branch 11
		bits: 0b1100_0000,
		mask: 0b1100_0000,
	}
	leafWithHashedValueVariant = variant{ // leaf containing hashes 001
		bits: 0b0010_0000,
		mask: 0b1110_0000,
	}
	branchWithHashedValueVariant = variant{ // branch containing hashes 0001
		bits: 0b0001_0000,
		mask: 0b1111_0000,
	}
	emptyVariant = variant{ // empty 0000 0000
		bits: 0b0000_0000,
		mask: 0b1111_1111,
	}
)

// partialKeyLengthHeaderMask returns the partial key length
// header bit mask corresponding to the variant header bit mask.
// For example for the leaf variant with variant mask 1100_0000,
// the partial key length header mask returned is 0011_1111.
func (v variant) partialKeyLengthHeaderMask() byte {
	return ^v.mask
}

// variantsOrderedByBitMask is an array of all variants sorted
// in ascending order by the number of LHS set bits each variant mask has.
// WARNING: DO NOT MUTATE.
var variantsOrderedByBitMask = [...]variant{
	leafVariant,                  // mask 1100_0000
	branchVariant,                // mask 1100_0000
	branchWithValueVariant,       // mask 1100_0000
	leafWithHashedValueVariant,   // mask 1110_0000
	branchWithHashedValueVariant, // mask 1111_0000
	emptyVariant,                 // mask 1111_1111
}

func decodeHeaderByte(header byte) (nodeVariant variant,
	partialKeyLengthHeader byte, err error) {
	for i := len(variantsOrderedByBitMask) - 1; i >= 0; i-- {
		nodeVariant = variantsOrderedByBitMask[i]
		if header&nodeVariant.mask != nodeVariant.bits {
			continue
		}

		partialKeyLengthHeader = header & nodeVariant.partialKeyLengthHeaderMask()
		return nodeVariant, partialKeyLengthHeader, nil
	}

	return variant{}, 0, fmt.Errorf("%w: for header byte %08b", ErrVariantUnknown, header)
}

// decodeHeader reads the header byte and the eventual partial key length bytes.
func decodeHeader(in *input) (nodeVariant variant, partialKeyLength uint16, err error) {
	header, err := in.readByte()
	if err != nil {
		return nodeVariant, 0, fmt.Errorf("reading header byte: %w", err)
	}

	nodeVariant, partialKeyLengthHeader, err := decodeHeaderByte(header)
	if err != nil {
		return variant{}, 0, fmt.Errorf("decoding header byte: %w", err)
	}

	partialKeyLengthHeaderMask := nodeVariant.partialKeyLengthHeaderMask()
	if nodeVariant == emptyVariant {
		return nodeVariant, 0, nil
	}

	partialKeyLength = uint16(partialKeyLengthHeader)
	if partialKeyLengthHeader < partialKeyLengthHeaderMask {
		// partial key length is contained in the first byte.
		return nodeVariant, partialKeyLength, nil
	}

	// the partial key length header byte is equal to its maximum
	// possible value; the next bytes are accumulated until one
	// of them is below 255.
	for {
		b, err := in.readByte()
		if err != nil {
			return variant{}, 0, fmt.Errorf("reading key length: %w", err)
		}

		total := int(partialKeyLength) + int(b)
		if total > int(maxPartialKeyLength) {
			return variant{}, 0, fmt.Errorf("%w: overflowed by %d",
				ErrPartialKeyTooBig, total-int(maxPartialKeyLength))
		}
		partialKeyLength = uint16(total)

		if b < 255 {
			return nodeVariant, partialKeyLength, nil
		}
	}
}

// SubstrateLayout is the node codec of Substrate state tries: no extension
// nodes, branches carry their partial key, and values may be hashed.
type SubstrateLayout struct{}

// Name returns the layout name.
func (SubstrateLayout) Name() string { return SubstrateLayoutName }

// SupportsExtension returns false since branches carry their partial key.
func (SubstrateLayout) SupportsExtension() bool { return false }

// Decode decodes a Substrate encoded node into its plan.
func (SubstrateLayout) Decode(data []byte) (plan NodePlan, err error) {
	in := &input{data: data}

	nodeVariant, partialKeyLength, err := decodeHeader(in)
	if err != nil {
		return nil, fmt.Errorf("decoding header: %w", err)
	}

	if nodeVariant == emptyVariant {
		return EmptyPlan{}, nil
	}

	partial, err := in.partial(int(partialKeyLength), true)
	if err != nil {
		return nil, err
	}

	switch nodeVariant {
	case leafVariant, leafWithHashedValueVariant:
		value, err := decodeValue(in, nodeVariant == leafWithHashedValueVariant)
		if err != nil {
			return nil, fmt.Errorf("decoding leaf value: %w", err)
		}
		return LeafPlan{Partial: partial, Value: value}, nil
	default:
		bitmap, err := in.bitmap()
		if err != nil {
			return nil, err
		}

		var value ValuePlan
		if nodeVariant != branchVariant {
			value, err = decodeValue(in, nodeVariant == branchWithHashedValueVariant)
			if err != nil {
				return nil, fmt.Errorf("decoding branch value: %w", err)
			}
		}

		children, err := in.children(bitmap)
		if err != nil {
			return nil, fmt.Errorf("decoding branch children: %w", err)
		}

		return NibbledBranchPlan{
			Partial:  partial,
			Value:    value,
			Children: children,
		}, nil
	}
}

func decodeValue(in *input, hashed bool) (ValuePlan, error) {
	if hashed {
		r, err := in.take(hashLength)
		if err != nil {
			return nil, err
		}
		return HashedValue{Bytes: r}, nil
	}

	count, err := in.compactLength()
	if err != nil {
		return nil, err
	}
	r, err := in.take(count)
	if err != nil {
		return nil, err
	}
	return InlineValue{Bytes: r}, nil
}

// EncodeLeaf encodes a leaf node with an inline value.
func (SubstrateLayout) EncodeLeaf(partial []byte, value []byte) ([]byte, error) {
	buffer := bytes.NewBuffer(nil)
	err := encodeHeader(buffer, leafVariant, len(partial))
	if err != nil {
		return nil, err
	}
	buffer.Write(packNibbles(partial))
	err = encodeCompactBytes(buffer, value)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// EncodeHashedLeaf encodes a leaf node whose value is stored separately
// under the given hash.
func (SubstrateLayout) EncodeHashedLeaf(partial []byte, valueHash []byte) ([]byte, error) {
	if len(valueHash) != hashLength {
		return nil, fmt.Errorf("%w: value hash has %d bytes", ErrBadFormat, len(valueHash))
	}
	buffer := bytes.NewBuffer(nil)
	err := encodeHeader(buffer, leafWithHashedValueVariant, len(partial))
	if err != nil {
		return nil, err
	}
	buffer.Write(packNibbles(partial))
	buffer.Write(valueHash)
	return buffer.Bytes(), nil
}

// EncodeBranch encodes a branch node carrying its partial key.
func (SubstrateLayout) EncodeBranch(partial []byte, value []byte, hasValue bool,
	children [ChildrenCapacity][]byte) ([]byte, error) {
	nodeVariant := branchVariant
	if hasValue {
		nodeVariant = branchWithValueVariant
	}

	buffer := bytes.NewBuffer(nil)
	err := encodeHeader(buffer, nodeVariant, len(partial))
	if err != nil {
		return nil, err
	}
	buffer.Write(packNibbles(partial))
	buffer.Write(childrenBitmap(children))

	if hasValue {
		err = encodeCompactBytes(buffer, value)
		if err != nil {
			return nil, err
		}
	}

	err = encodeChildren(buffer, children)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// encodeHeader writes the header byte and the eventual partial key length
// bytes, the first byte holding up to its mask minus one nibbles.
func encodeHeader(buffer *bytes.Buffer, nodeVariant variant, partialKeyLength int) error {
	if partialKeyLength > int(maxPartialKeyLength) {
		return fmt.Errorf("%w: %d", ErrPartialKeyTooBig, partialKeyLength)
	}

	partialKeyLengthMask := nodeVariant.partialKeyLengthHeaderMask()
	if partialKeyLength < int(partialKeyLengthMask) {
		buffer.WriteByte(nodeVariant.bits | byte(partialKeyLength))
		return nil
	}

	buffer.WriteByte(nodeVariant.bits | partialKeyLengthMask)
	remaining := partialKeyLength - int(partialKeyLengthMask)
	for remaining >= 255 {
		buffer.WriteByte(255)
		remaining -= 255
	}
	buffer.WriteByte(byte(remaining))
	return nil
}
