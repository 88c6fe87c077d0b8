// Copyright 2026, Quadspace Authors
// For license information, see https://github.com/quadspace/quadspace/blob/master/LICENSE

package slotstore

import (
	"github.com/ethereum/go-ethereum/common"
)

// Memory is a map-backed SlotStore. It never returns an error, making
// it the backend of choice for tests and for embedding a scratch
// namespace inside a larger program. Not safe for concurrent use; the
// substrate contract assumes a single logical thread per invocation.
type Memory struct {
	slots map[common.Hash][SlotSize]byte
}

func NewMemory() *Memory {
	return &Memory{
		slots: make(map[common.Hash][SlotSize]byte),
	}
}

func (m *Memory) Load(key common.Hash, dst []byte, n uint64) (bool, error) {
	all := true
	for i := uint64(0); i < n; i++ {
		window := dst[i*SlotSize : (i+1)*SlotSize]
		slot, ok := m.slots[KeyOffset(key, i)]
		if !ok {
			all = false
			for j := range window {
				window[j] = 0
			}
			continue
		}
		copy(window, slot[:])
	}
	return all, nil
}

func (m *Memory) Store(key common.Hash, src []byte, n uint64) error {
	for i := uint64(0); i < n; i++ {
		m.slots[KeyOffset(key, i)] = [SlotSize]byte(src[i*SlotSize : (i+1)*SlotSize])
	}
	return nil
}

func (m *Memory) Clear(key common.Hash, n uint64) (bool, error) {
	all := true
	for i := uint64(0); i < n; i++ {
		k := KeyOffset(key, i)
		if _, ok := m.slots[k]; !ok {
			all = false
			continue
		}
		delete(m.slots, k)
	}
	return all, nil
}

// SlotCount returns the number of set slots. Test support.
func (m *Memory) SlotCount() int {
	return len(m.slots)
}
