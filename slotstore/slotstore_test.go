// Copyright 2026, Quadspace Authors
// For license information, see https://github.com/quadspace/quadspace/blob/master/LICENSE

package slotstore

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/go-cmp/cmp"

	"github.com/quadspace/quadspace/util/testhelpers"
)

func TestKeyOffset(t *testing.T) {
	key := common.HexToHash("0x01")
	if KeyOffset(key, 0) != key {
		Fail(t, "offset 0 changed the key")
	}
	if KeyOffset(key, 41) != common.HexToHash("0x2a") {
		Fail(t, "bad small increment")
	}

	// carry across byte boundaries
	if KeyOffset(common.HexToHash("0xff"), 1) != common.HexToHash("0x0100") {
		Fail(t, "carry into second byte failed")
	}
	if KeyOffset(common.HexToHash("0xffffffffffffffff"), 1) != common.HexToHash("0x010000000000000000") {
		Fail(t, "carry across word boundary failed")
	}

	// wraparound at 2^256
	allOnes := common.HexToHash("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	if KeyOffset(allOnes, 1) != (common.Hash{}) {
		Fail(t, "increment past 2^256 should wrap to zero")
	}
	if KeyOffset(allOnes, 3) != common.HexToHash("0x02") {
		Fail(t, "wraparound arithmetic is off")
	}
}

// testConformance drives any backend through the substrate contract:
// zero-filled absent reads, round trips, per-slot set-ness, and clear
// reporting.
func testConformance(t *testing.T, store SlotStore) {
	t.Helper()
	prng := testhelpers.NewPseudoRandomDataSource(t, 0)
	key := prng.GetHash()

	// a never-written range reads as absent and all zeroes
	scratch := make([]byte, 3*SlotSize)
	for i := range scratch {
		scratch[i] = 0xff
	}
	set, err := store.Load(key, scratch, 3)
	Require(t, err)
	if set {
		Fail(t, "fresh range reported as set")
	}
	if !bytes.Equal(scratch, make([]byte, 3*SlotSize)) {
		Fail(t, "unset slots must read as zeroes")
	}

	// full-range round trip
	data := prng.GetData(3 * SlotSize)
	Require(t, store.Store(key, data, 3))
	set, err = store.Load(key, scratch, 3)
	Require(t, err)
	if !set {
		Fail(t, "stored range reported as unset")
	}
	if diff := cmp.Diff(data, scratch); diff != "" {
		Fail(t, "round trip mismatch:", diff)
	}

	// contiguity: each slot is individually addressable at key+i
	single := make([]byte, SlotSize)
	for i := uint64(0); i < 3; i++ {
		set, err = store.Load(KeyOffset(key, i), single, 1)
		Require(t, err)
		if !set {
			Fail(t, "slot", i, "reported as unset")
		}
		if !bytes.Equal(single, data[i*SlotSize:(i+1)*SlotSize]) {
			Fail(t, "slot", i, "contents differ from range store")
		}
	}

	// clearing the middle slot punches a hole
	set, err = store.Clear(KeyOffset(key, 1), 1)
	Require(t, err)
	if !set {
		Fail(t, "clear of a set slot should report true")
	}
	set, err = store.Clear(KeyOffset(key, 1), 1)
	Require(t, err)
	if set {
		Fail(t, "second clear of the same slot should report false")
	}
	set, err = store.Load(key, scratch, 3)
	Require(t, err)
	if set {
		Fail(t, "range with a hole reported as fully set")
	}
	if !bytes.Equal(scratch[:SlotSize], data[:SlotSize]) {
		Fail(t, "clear damaged the preceding slot")
	}
	if !bytes.Equal(scratch[SlotSize:2*SlotSize], make([]byte, SlotSize)) {
		Fail(t, "cleared slot must read as zeroes")
	}
	if !bytes.Equal(scratch[2*SlotSize:], data[2*SlotSize:]) {
		Fail(t, "clear damaged the following slot")
	}

	// clearing a partially-set range reports false but unsets the rest
	set, err = store.Clear(key, 3)
	Require(t, err)
	if set {
		Fail(t, "clear over a hole should report false")
	}
	set, err = store.Load(key, scratch, 3)
	Require(t, err)
	if set || !bytes.Equal(scratch, make([]byte, 3*SlotSize)) {
		Fail(t, "range not fully unset after clear")
	}

	// overwrite without clear
	Require(t, store.Store(key, data, 1))
	data2 := prng.GetData(SlotSize)
	Require(t, store.Store(key, data2, 1))
	set, err = store.Load(key, single, 1)
	Require(t, err)
	if !set || !bytes.Equal(single, data2) {
		Fail(t, "overwrite did not take")
	}
}

func TestMemoryConformance(t *testing.T) {
	testConformance(t, NewMemory())
}

func TestBadgerConformance(t *testing.T) {
	store, err := NewBadger(BadgerConfig{DataDir: t.TempDir()})
	Require(t, err)
	defer func() { Require(t, store.Close()) }()
	testConformance(t, store)
}

func TestBadgerInMemoryConformance(t *testing.T) {
	store, err := NewBadger(BadgerConfig{InMemory: true})
	Require(t, err)
	defer func() { Require(t, store.Close()) }()
	testConformance(t, store)
}

func TestPebbleConformance(t *testing.T) {
	store, err := NewPebble(PebbleConfig{DataDir: t.TempDir(), Sync: false})
	Require(t, err)
	defer func() { Require(t, store.Close()) }()
	testConformance(t, store)
}

func TestCachedConformance(t *testing.T) {
	store, err := NewCached(NewMemory(), 1024)
	Require(t, err)
	testConformance(t, store)
}

// A capacity of 2 forces constant eviction; behavior must not change.
func TestCachedTinyCapacityConformance(t *testing.T) {
	store, err := NewCached(NewMemory(), 2)
	Require(t, err)
	testConformance(t, store)
}

// Interleave operations on a cached store and a bare one and require
// identical observations throughout.
func TestCachedMatchesBase(t *testing.T) {
	prng := testhelpers.NewPseudoRandomDataSource(t, 1)
	plain := NewMemory()
	cached, err := NewCached(NewMemory(), 4)
	Require(t, err)

	keys := make([]common.Hash, 8)
	for i := range keys {
		keys[i] = prng.GetHash()
	}
	for step := 0; step < 200; step++ {
		key := keys[prng.GetUint64()%uint64(len(keys))]
		n := prng.GetUint64()%3 + 1
		switch prng.GetUint64() % 3 {
		case 0:
			data := prng.GetData(int(n) * SlotSize)
			Require(t, plain.Store(key, data, n))
			Require(t, cached.Store(key, data, n))
		case 1:
			setPlain, err := plain.Clear(key, n)
			Require(t, err)
			setCached, err := cached.Clear(key, n)
			Require(t, err)
			if setPlain != setCached {
				Fail(t, "clear flags diverged at step", step)
			}
		case 2:
			bufPlain := make([]byte, n*SlotSize)
			bufCached := make([]byte, n*SlotSize)
			setPlain, err := plain.Load(key, bufPlain, n)
			Require(t, err)
			setCached, err := cached.Load(key, bufCached, n)
			Require(t, err)
			if setPlain != setCached {
				Fail(t, "load flags diverged at step", step)
			}
			if !bytes.Equal(bufPlain, bufCached) {
				Fail(t, "load contents diverged at step", step)
			}
		}
	}
}

func Require(t *testing.T, err error, printables ...interface{}) {
	t.Helper()
	testhelpers.RequireImpl(t, err, printables...)
}

func Fail(t *testing.T, printables ...interface{}) {
	t.Helper()
	testhelpers.FailImpl(t, printables...)
}
