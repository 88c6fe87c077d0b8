// Copyright 2026, Quadspace Authors
// For license information, see https://github.com/quadspace/quadspace/blob/master/LICENSE

package storage

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/quadspace/quadspace/slotstore"
)

// Map is an associative container keyed by K. Every entry lives at its
// own hash-derived slot key, so access cost is independent of map size
// and there is no enumeration over keys: without an auxiliary index the
// addressing scheme simply cannot produce one. Entries are created by
// Insert and live until an explicit Remove.
type Map[K any, V any] struct {
	store    slotstore.SlotStore
	base     common.Hash
	keyEnc   KeyEncoder[K]
	valCodec Codec[V]
}

func NewMap[K any, V any](store slotstore.SlotStore, base common.Hash, keyEnc KeyEncoder[K], valCodec Codec[V]) *Map[K, V] {
	return &Map[K, V]{
		store:    store,
		base:     base,
		keyEnc:   keyEnc,
		valCodec: valCodec,
	}
}

func (m *Map[K, V]) Base() common.Hash {
	return m.base
}

func (m *Map[K, V]) entryKey(key K) common.Hash {
	return DeriveKey(m.keyEnc(key), m.base)
}

// Insert stores val under key, overwriting any prior value there.
func (m *Map[K, V]) Insert(key K, val V) error {
	return writeValue(m.store, m.entryKey(key), 0, m.valCodec, val)
}

// At returns the handle for key's entry without checking whether a
// value is present; the caller picks Get or TryGet according to whether
// absence would be a bug.
func (m *Map[K, V]) At(key K) Handle[V] {
	return NewHandle(m.store, m.entryKey(key), 0, m.valCodec)
}

// Remove unsets key's entry, reporting whether a value had been stored.
func (m *Map[K, V]) Remove(key K) (bool, error) {
	return clearValue(m.store, m.entryKey(key), m.valCodec)
}
