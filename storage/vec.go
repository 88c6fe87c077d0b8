// Copyright 2026, Quadspace Authors
// For license information, see https://github.com/quadspace/quadspace/blob/master/LICENSE

package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/quadspace/quadspace/slotstore"
)

const vecLengthOffset uint64 = 0

// Vec is a growable array. Its only own state is the length, a uint64
// at (base, offset 0) that reads as 0 when never written; element i
// lives at keccak256(be64(i) ++ base). Because every index has an
// independent address there is no growth factor and no relocation —
// push is one element write plus the length update.
//
// The length alone decides which indices are valid. Pop and the remove
// variants leave the vacated element slots physically populated; a
// later push silently overwrites them. Clear just resets the length,
// abandoning the element slots as unreachable garbage (this layer never
// reclaims cleared storage).
//
// Out-of-bounds mutation panics: an invalid index in Set, Insert,
// Remove, or SwapRemove is a caller bug, not a runtime condition to
// hand back. At reports out-of-bounds as nil instead, the recoverable
// path.
type Vec[V any] struct {
	store  slotstore.SlotStore
	base   common.Hash
	codec  Codec[V]
	length Handle[uint64]
}

func NewVec[V any](store slotstore.SlotStore, base common.Hash, codec Codec[V]) *Vec[V] {
	return &Vec[V]{
		store:  store,
		base:   base,
		codec:  codec,
		length: NewHandle(store, base, vecLengthOffset, Uint64Codec),
	}
}

func (v *Vec[V]) Base() common.Hash {
	return v.base
}

func (v *Vec[V]) Length() (uint64, error) {
	length, err := v.length.TryGet()
	if err != nil {
		return 0, err
	}
	if length == nil {
		return 0, nil
	}
	return *length, nil
}

func (v *Vec[V]) handleAt(index uint64) Handle[V] {
	return NewHandle(v.store, DeriveKey(binary.BigEndian.AppendUint64(nil, index), v.base), 0, v.codec)
}

func (v *Vec[V]) Push(val V) error {
	length, err := v.Length()
	if err != nil {
		return err
	}
	if err := v.handleAt(length).Set(val); err != nil {
		return err
	}
	return v.length.Set(length + 1)
}

// Pop removes and returns the last element, or nil if the vector is
// empty.
func (v *Vec[V]) Pop() (*V, error) {
	length, err := v.Length()
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, nil
	}
	if err := v.length.Set(length - 1); err != nil {
		return nil, err
	}
	val, err := v.handleAt(length - 1).Get()
	if err != nil {
		return nil, err
	}
	return &val, nil
}

// At returns the handle for element index, or nil if index is out of
// bounds.
func (v *Vec[V]) At(index uint64) (*Handle[V], error) {
	length, err := v.Length()
	if err != nil {
		return nil, err
	}
	if index >= length {
		return nil, nil
	}
	handle := v.handleAt(index)
	return &handle, nil
}

// Set overwrites element index in place, panicking if index is out of
// bounds.
func (v *Vec[V]) Set(index uint64, val V) error {
	length, err := v.Length()
	if err != nil {
		return err
	}
	if index >= length {
		panic(fmt.Sprintf("storage: vector set out of bounds (index %d, length %d)", index, length))
	}
	return v.handleAt(index).Set(val)
}

// Remove removes and returns element index, shifting every later
// element down one position. Each shift is a read plus a write, so this
// costs O(length-index) slot round trips; prefer SwapRemove when order
// doesn't matter. Panics if index is out of bounds.
func (v *Vec[V]) Remove(index uint64) (V, error) {
	length, err := v.Length()
	if err != nil {
		var zero V
		return zero, err
	}
	if index >= length {
		panic(fmt.Sprintf("storage: vector remove out of bounds (index %d, length %d)", index, length))
	}
	captured, err := v.handleAt(index).Get()
	if err != nil {
		var zero V
		return zero, err
	}
	for i := index + 1; i < length; i++ {
		val, err := v.handleAt(i).Get()
		if err != nil {
			var zero V
			return zero, err
		}
		if err := v.handleAt(i - 1).Set(val); err != nil {
			var zero V
			return zero, err
		}
	}
	if err := v.length.Set(length - 1); err != nil {
		var zero V
		return zero, err
	}
	return captured, nil
}

// SwapRemove removes and returns element index by moving the last
// element into its place. O(1), does not preserve order. Panics if
// index is out of bounds.
func (v *Vec[V]) SwapRemove(index uint64) (V, error) {
	length, err := v.Length()
	if err != nil {
		var zero V
		return zero, err
	}
	if index >= length {
		panic(fmt.Sprintf("storage: vector swap-remove out of bounds (index %d, length %d)", index, length))
	}
	captured, err := v.handleAt(index).Get()
	if err != nil {
		var zero V
		return zero, err
	}
	if index != length-1 {
		last, err := v.handleAt(length - 1).Get()
		if err != nil {
			var zero V
			return zero, err
		}
		if err := v.handleAt(index).Set(last); err != nil {
			var zero V
			return zero, err
		}
	}
	if err := v.length.Set(length - 1); err != nil {
		var zero V
		return zero, err
	}
	return captured, nil
}

// Insert places val at index, shifting elements index..length-1 up one
// position. Inserting at the current length degenerates to a push. The
// shift walks backwards so no element is overwritten before it has
// moved. O(length-index). Panics if index exceeds the length.
func (v *Vec[V]) Insert(index uint64, val V) error {
	length, err := v.Length()
	if err != nil {
		return err
	}
	if index > length {
		panic(fmt.Sprintf("storage: vector insert out of bounds (index %d, length %d)", index, length))
	}
	if index == length {
		return v.Push(val)
	}
	for i := length; i > index; i-- {
		prev, err := v.handleAt(i - 1).Get()
		if err != nil {
			return err
		}
		if err := v.handleAt(i).Set(prev); err != nil {
			return err
		}
	}
	if err := v.handleAt(index).Set(val); err != nil {
		return err
	}
	return v.length.Set(length + 1)
}

// Clear resets the length to zero without touching element slots.
func (v *Vec[V]) Clear() error {
	return v.length.Set(0)
}
