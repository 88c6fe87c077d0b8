// Copyright 2026, Quadspace Authors
// For license information, see https://github.com/quadspace/quadspace/blob/master/LICENSE

package storage

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
)

// Codec describes a fixed-size byte encoding for a value type. Encode
// must fill exactly Size bytes of dst; Decode reads exactly Size bytes
// of src. A Size of zero marks a zero-sized type, which the packing
// layer never stores (writes are no-ops, reads always come back empty).
type Codec[T any] struct {
	Size   uint64
	Encode func(dst []byte, val T)
	Decode func(src []byte) T
}

var Uint64Codec = Codec[uint64]{
	Size: 8,
	Encode: func(dst []byte, val uint64) {
		binary.BigEndian.PutUint64(dst, val)
	},
	Decode: func(src []byte) uint64 {
		return binary.BigEndian.Uint64(src)
	},
}

var Uint32Codec = Codec[uint32]{
	Size: 4,
	Encode: func(dst []byte, val uint32) {
		binary.BigEndian.PutUint32(dst, val)
	},
	Decode: func(src []byte) uint32 {
		return binary.BigEndian.Uint32(src)
	},
}

// Int64Codec reinterprets the value as a uint64 on the way to storage.
// Casting between int64 and uint64 doesn't change the bytes, so this
// round-trips negative values without a signed encoding.
var Int64Codec = Codec[int64]{
	Size: 8,
	Encode: func(dst []byte, val int64) {
		binary.BigEndian.PutUint64(dst, uint64(val))
	},
	Decode: func(src []byte) int64 {
		return int64(binary.BigEndian.Uint64(src))
	},
}

var BoolCodec = Codec[bool]{
	Size: 1,
	Encode: func(dst []byte, val bool) {
		dst[0] = 0
		if val {
			dst[0] = 1
		}
	},
	Decode: func(src []byte) bool {
		return src[0] != 0
	},
}

var HashCodec = Codec[common.Hash]{
	Size: common.HashLength,
	Encode: func(dst []byte, val common.Hash) {
		copy(dst, val[:])
	},
	Decode: func(src []byte) common.Hash {
		return common.BytesToHash(src)
	},
}

var AddressCodec = Codec[common.Address]{
	Size: common.AddressLength,
	Encode: func(dst []byte, val common.Address) {
		copy(dst, val[:])
	},
	Decode: func(src []byte) common.Address {
		return common.BytesToAddress(src)
	},
}

// BytesCodec encodes a byte slice of exactly n bytes. Encode panics if
// the value's length differs from n.
func BytesCodec(n uint64) Codec[[]byte] {
	return Codec[[]byte]{
		Size: n,
		Encode: func(dst []byte, val []byte) {
			if uint64(len(val)) != n {
				panic("storage: byte value has wrong length for its codec")
			}
			copy(dst, val)
		},
		Decode: func(src []byte) []byte {
			return append([]byte{}, src...)
		},
	}
}

// KeyEncoder serializes a map key. Unlike value codecs, key encodings
// may have any length; they only feed the hash that derives the entry's
// address.
type KeyEncoder[K any] func(K) []byte

func Uint64Key(key uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, key)
}

func StringKey(key string) []byte {
	return []byte(key)
}

func BytesKey(key []byte) []byte {
	return key
}

func HashKey(key common.Hash) []byte {
	return key.Bytes()
}

func AddressKey(key common.Address) []byte {
	return key.Bytes()
}
