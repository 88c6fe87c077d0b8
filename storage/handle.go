// Copyright 2026, Quadspace Authors
// For license information, see https://github.com/quadspace/quadspace/blob/master/LICENSE

package storage

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/quadspace/quadspace/slotstore"
)

// Handle is a typed accessor bound to one (key, offset) location. It is
// a pure value: collections mint handles ad hoc on every operation,
// nothing persists them, and every call is an independent round trip to
// the slot store with no caching.
//
// Get and TryGet split on how absence is treated. Get panics when the
// location was never written — use it where absence means the calling
// code is broken. TryGet returns nil for the expected-and-handled case.
type Handle[T any] struct {
	store  slotstore.SlotStore
	key    common.Hash
	offset uint64
	codec  Codec[T]
}

func NewHandle[T any](store slotstore.SlotStore, key common.Hash, offset uint64, codec Codec[T]) Handle[T] {
	return Handle[T]{
		store:  store,
		key:    key,
		offset: offset,
		codec:  codec,
	}
}

func (h Handle[T]) Key() common.Hash {
	return h.key
}

func (h Handle[T]) Offset() uint64 {
	return h.offset
}

// Get returns the value at the handle's location, panicking if it was
// never set.
func (h Handle[T]) Get() (T, error) {
	val, err := h.TryGet()
	if err != nil {
		var zero T
		return zero, err
	}
	if val == nil {
		panic(fmt.Sprintf("storage: no value at key %v offset %d", h.key, h.offset))
	}
	return *val, nil
}

// TryGet returns the value at the handle's location, or nil if it was
// never set.
func (h Handle[T]) TryGet() (*T, error) {
	return readValue(h.store, h.key, h.offset, h.codec)
}

func (h Handle[T]) Set(val T) error {
	return writeValue(h.store, h.key, h.offset, h.codec, val)
}

// Clear unsets the value's slots, reporting whether a value had been
// stored. Only meaningful for handles at offset 0 that own their slots
// outright; a handle packed next to siblings would clear them too.
func (h Handle[T]) Clear() (bool, error) {
	return clearValue(h.store, h.key, h.codec)
}
