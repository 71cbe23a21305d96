package splitorder

import (
	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

type (
	// Hasher maps a key to the 64-bit hash the table is organized by.
	// A Hasher must be deterministic for the lifetime of the table.
	Hasher[K any] func(key K) uint64
)

// StringHasher returns the default Hasher for string keys, backed by
// xxhash.
func StringHasher() Hasher[string] {
	return xxhash.Sum64String
}

// IntegerHasher returns the default Hasher for integer keys: a splitmix64
// style finalizer, so that dense key ranges still spread across buckets.
func IntegerHasher[K constraints.Integer]() Hasher[K] {
	return func(key K) uint64 {
		h := uint64(key)
		h ^= h >> 30
		h *= 0xbf58476d1ce4e5b9
		h ^= h >> 27
		h *= 0x94d049bb133111eb
		h ^= h >> 31
		return h
	}
}
