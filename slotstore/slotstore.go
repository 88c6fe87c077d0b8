// Copyright 2026, Quadspace Authors
// For license information, see https://github.com/quadspace/quadspace/blob/master/LICENSE

// Package slotstore provides the slot substrate: a persistent key-value
// store of fixed 32-byte slots addressed by 32-byte keys, with exactly
// three primitive operations — load, store, and clear a run of
// contiguous slots.
//
// A slot is either set (it was stored at some point and not cleared
// since) or unset. Unset slots read as zeroes; whether a load hit only
// set slots is reported separately so that callers can distinguish "all
// zeroes" from "never written". Contiguity is defined by 256-bit
// big-endian key increment: the run of n slots starting at key occupies
// keys key, key+1, ..., key+n-1 modulo 2^256.
//
// The typed packing layer in the storage package is the only intended
// consumer, but nothing here depends on it; any backend that honors
// this contract can sit underneath.
package slotstore

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// SlotSize is the size in bytes of one slot.
	SlotSize = 32
	// WordSize is the size in bytes of one 64-bit word within a slot.
	WordSize = 8
	// WordsPerSlot is the number of words in a slot.
	WordsPerSlot = SlotSize / WordSize
)

var ErrClosed = errors.New("slot store is closed")

// SlotStore is the three-operation substrate every backend implements.
//
// All three operations address a run of n contiguous slots starting at
// key. Load fills dst[:n*SlotSize] with the slot contents, writing
// zeroes for unset slots, and reports whether every slot in the run was
// set. Store marks every slot in the run as set. Clear marks every slot
// unset and reports whether all of them had been set beforehand.
//
// Set-ness is tracked per slot; a run is "set" only as the conjunction
// of its slots. Backends report I/O failures through the error return,
// never by folding them into the boolean.
type SlotStore interface {
	Load(key common.Hash, dst []byte, n uint64) (bool, error)
	Store(key common.Hash, src []byte, n uint64) error
	Clear(key common.Hash, n uint64) (bool, error)
}

// KeyOffset returns key + n as a 256-bit big-endian integer, wrapping
// modulo 2^256. KeyOffset(key, 0) is key itself.
func KeyOffset(key common.Hash, n uint64) common.Hash {
	carry := n
	for i := common.HashLength - 1; i >= 0 && carry > 0; i-- {
		sum := uint64(key[i]) + carry&0xff
		key[i] = byte(sum)
		carry = carry>>8 + sum>>8
	}
	return key
}
