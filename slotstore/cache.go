// Copyright 2026, Quadspace Authors
// For license information, see https://github.com/quadspace/quadspace/blob/master/LICENSE

package slotstore

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru/v2"
)

type cachedSlot struct {
	data    [SlotSize]byte
	present bool
}

// Cached is a write-through LRU decorator over another SlotStore. It
// caches slot contents and set-ness both, so a cleared slot stays
// observably unset without a round trip to the base store. Semantics
// are identical to the base store's; only the round-trip count changes.
// Not safe for concurrent use, same as the rest of the substrate.
type Cached struct {
	base  SlotStore
	cache *lru.Cache[common.Hash, cachedSlot]
}

func NewCached(base SlotStore, size int) (*Cached, error) {
	cache, err := lru.New[common.Hash, cachedSlot](size)
	if err != nil {
		return nil, fmt.Errorf("creating slot cache: %w", err)
	}
	return &Cached{
		base:  base,
		cache: cache,
	}, nil
}

func (c *Cached) Load(key common.Hash, dst []byte, n uint64) (bool, error) {
	all := true
	for i := uint64(0); i < n; i++ {
		window := dst[i*SlotSize : (i+1)*SlotSize]
		k := KeyOffset(key, i)
		entry, ok := c.cache.Get(k)
		if !ok {
			present, err := c.base.Load(k, entry.data[:], 1)
			if err != nil {
				return false, err
			}
			entry.present = present
			c.cache.Add(k, entry)
		}
		if !entry.present {
			all = false
			for j := range window {
				window[j] = 0
			}
			continue
		}
		copy(window, entry.data[:])
	}
	return all, nil
}

func (c *Cached) Store(key common.Hash, src []byte, n uint64) error {
	if err := c.base.Store(key, src, n); err != nil {
		return err
	}
	for i := uint64(0); i < n; i++ {
		entry := cachedSlot{present: true}
		copy(entry.data[:], src[i*SlotSize:(i+1)*SlotSize])
		c.cache.Add(KeyOffset(key, i), entry)
	}
	return nil
}

func (c *Cached) Clear(key common.Hash, n uint64) (bool, error) {
	all, err := c.base.Clear(key, n)
	if err != nil {
		return false, err
	}
	for i := uint64(0); i < n; i++ {
		c.cache.Add(KeyOffset(key, i), cachedSlot{})
	}
	return all, nil
}
