package hashmap

import (
	"hash/fnv"

	"golang.org/x/exp/constraints"
)

// StringHash hashes a string with 64-bit FNV-1a.
func StringHash(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// IntegerHash uses the integer value itself as its hash.
func IntegerHash[K constraints.Integer](k K) int64 {
	return int64(k)
}
