// Copyright 2026, Quadspace Authors
// For license information, see https://github.com/quadspace/quadspace/blob/master/LICENSE

// Package storage packs typed values of arbitrary size and alignment
// onto the 32-byte slot substrate, and builds hash-addressed Map and
// Vec collections on top of that packing.
//
// A value lives at a (key, offset) pair: offset words into the run of
// slots starting at key. Values smaller than a slot, or not aligned to
// one, share their first and last slot with whatever neighbors the
// caller packed there, so every write is a read-modify-write over whole
// slots. The slot is the unit of host I/O; the overlay is what keeps a
// sibling value in the remainder of the same slot intact.
package storage

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/quadspace/quadspace/slotstore"
)

// slotsNeeded returns how many slots cover a value of sizeBytes bytes
// starting offsetWords words into its first slot.
func slotsNeeded(offsetWords uint64, sizeBytes uint64) uint64 {
	if sizeBytes == 0 {
		return 0
	}
	return (offsetWords*slotstore.WordSize + sizeBytes + slotstore.SlotSize - 1) / slotstore.SlotSize
}

// writeValue stores val at (key, offset). Zero-sized values are never
// stored. The load's present flag is deliberately ignored: unset slots
// read back as zeroes, which is exactly the scratch contents we want to
// overlay onto.
func writeValue[T any](store slotstore.SlotStore, key common.Hash, offset uint64, codec Codec[T], val T) error {
	if codec.Size == 0 {
		return nil
	}
	n := slotsNeeded(offset, codec.Size)
	scratch := make([]byte, n*slotstore.SlotSize)
	if _, err := store.Load(key, scratch, n); err != nil {
		return fmt.Errorf("read-modify-write load at %v+%d: %w", key, offset, err)
	}
	byteOffset := offset * slotstore.WordSize
	codec.Encode(scratch[byteOffset:byteOffset+codec.Size], val)
	if err := store.Store(key, scratch, n); err != nil {
		return fmt.Errorf("read-modify-write store at %v+%d: %w", key, offset, err)
	}
	return nil
}

// readValue loads the value at (key, offset), or nil if any slot of its
// footprint was never set. Zero-sized values always read as nil.
func readValue[T any](store slotstore.SlotStore, key common.Hash, offset uint64, codec Codec[T]) (*T, error) {
	if codec.Size == 0 {
		return nil, nil
	}
	n := slotsNeeded(offset, codec.Size)
	scratch := make([]byte, n*slotstore.SlotSize)
	set, err := store.Load(key, scratch, n)
	if err != nil {
		return nil, fmt.Errorf("load at %v+%d: %w", key, offset, err)
	}
	if !set {
		return nil, nil
	}
	byteOffset := offset * slotstore.WordSize
	val := codec.Decode(scratch[byteOffset : byteOffset+codec.Size])
	return &val, nil
}

// clearValue unsets the footprint of a value of the codec's size at
// offset 0, reporting whether all of it had been set.
func clearValue[T any](store slotstore.SlotStore, key common.Hash, codec Codec[T]) (bool, error) {
	if codec.Size == 0 {
		return false, nil
	}
	n := (codec.Size + slotstore.SlotSize - 1) / slotstore.SlotSize
	set, err := store.Clear(key, n)
	if err != nil {
		return false, fmt.Errorf("clear at %v: %w", key, err)
	}
	return set, nil
}
