// Copyright 2026, Quadspace Authors
// For license information, see https://github.com/quadspace/quadspace/blob/master/LICENSE

package storage

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// DeriveKey maps a serialized component and a base key to a slot key,
// keccak256(component ++ base). Hashing the base in with the component
// scopes every collection instance into its own address space: two
// collections with distinct bases cannot produce the same entry key
// without a keccak collision.
func DeriveKey(component []byte, base common.Hash) common.Hash {
	return crypto.Keccak256Hash(component, base.Bytes())
}

// SubspaceKey derives a child base from a parent base and an id.
// Collections don't allocate their own bases; callers carve up the
// global namespace explicitly, and nesting subspaces is the intended
// way to do that hierarchically.
func SubspaceKey(base common.Hash, id []byte) common.Hash {
	return DeriveKey(id, base)
}
