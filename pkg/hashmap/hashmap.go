/*
Package hashmap implements a generic associative store backed by a fixed
array of buckets, each bucket holding a singly linked chain of entries.

The bucket count is chosen at construction and never changes: there is no
rehashing. Hashing and key equality are injected by the caller, so any key
type can be stored as long as a deterministic hash function exists for it.

	m, err := hashmap.NewComparable[string, int](25, hashmap.StringHash)
	m.Put("chat", 1)
	n, err := m.Get("chat")

A Map is not safe for concurrent use.
*/
package hashmap

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultBuckets is the bucket count used when none is configured.
const DefaultBuckets = 25

var (
	// ErrKeyNotFound is returned by Get and Remove when the key is absent.
	ErrKeyNotFound = errors.New("key not found")
	// ErrInvalidBucketIndex signals a computed bucket outside [0, size).
	ErrInvalidBucketIndex = errors.New("invalid bucket index")
	// ErrInvalidSize is returned when a map is built with no buckets.
	ErrInvalidSize = errors.New("bucket count must be positive")
)

// HashFunc computes the hash of a key. Any int64 is accepted, negative
// values included.
type HashFunc[K any] func(key K) int64

// EqualFunc reports whether two keys are equal.
type EqualFunc[K any] func(a, b K) bool

// Pair is a key/value copy handed out by Pairs.
type Pair[K any, V any] struct {
	Key   K
	Value V
}

type entry[K any, V any] struct {
	key   K
	value V
	next  *entry[K, V]
}

// Map maps keys to values using chained buckets.
type Map[K any, V any] struct {
	buckets []*entry[K, V]
	hash    HashFunc[K]
	equal   EqualFunc[K]
	count   int
}

// New creates a map with size buckets using the given hash and equality functions.
func New[K any, V any](size int, hash HashFunc[K], equal EqualFunc[K]) (*Map[K, V], error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if hash == nil || equal == nil {
		return nil, errors.New("hash and equality functions are required")
	}
	return &Map[K, V]{
		buckets: make([]*entry[K, V], size),
		hash:    hash,
		equal:   equal,
	}, nil
}

// NewComparable creates a map whose keys are compared with ==.
func NewComparable[K comparable, V any](size int, hash HashFunc[K]) (*Map[K, V], error) {
	return New[K, V](size, hash, func(a, b K) bool { return a == b })
}

// index returns the home bucket of key. The modulus is normalized so that
// negative hashes still land inside the array.
func (m *Map[K, V]) index(key K) int {
	size := int64(len(m.buckets))
	idx := int(((m.hash(key) % size) + size) % size)
	if err := checkIndex(idx, len(m.buckets)); err != nil {
		panic(err)
	}
	return idx
}

func checkIndex(idx, size int) error {
	if idx < 0 || idx >= size {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidBucketIndex, idx, size)
	}
	return nil
}

// find walks the home bucket of key and returns the matching entry, or nil.
func (m *Map[K, V]) find(key K) *entry[K, V] {
	for e := m.buckets[m.index(key)]; e != nil; e = e.next {
		if m.equal(key, e.key) {
			return e
		}
	}
	return nil
}

// Contains reports whether key is stored in the map.
func (m *Map[K, V]) Contains(key K) bool {
	return m.find(key) != nil
}

// Get returns the value mapped to key, or ErrKeyNotFound.
func (m *Map[K, V]) Get(key K) (V, error) {
	if e := m.find(key); e != nil {
		return e.value, nil
	}
	var zero V
	return zero, fmt.Errorf("get %v: %w", key, ErrKeyNotFound)
}

// Put maps key to value. An existing entry is updated in place, otherwise a
// new entry is prepended to the key's chain.
func (m *Map[K, V]) Put(key K, value V) {
	idx := m.index(key)
	for e := m.buckets[idx]; e != nil; e = e.next {
		if m.equal(key, e.key) {
			e.value = value
			return
		}
	}
	m.buckets[idx] = &entry[K, V]{key: key, value: value, next: m.buckets[idx]}
	m.count++
}

// Remove unlinks the entry for key, leaving the rest of its chain intact.
// It returns ErrKeyNotFound when the key is absent.
func (m *Map[K, V]) Remove(key K) error {
	idx := m.index(key)
	var prev *entry[K, V]
	for cur := m.buckets[idx]; cur != nil; prev, cur = cur, cur.next {
		if !m.equal(key, cur.key) {
			continue
		}
		switch {
		case prev == nil:
			// head of the chain, possibly its only element
			m.buckets[idx] = cur.next
		case cur.next == nil:
			// tail of the chain
			prev.next = nil
		default:
			prev.next = cur.next
		}
		cur.next = nil
		m.count--
		return nil
	}
	return fmt.Errorf("remove %v: %w", key, ErrKeyNotFound)
}

// IsEmpty reports whether every bucket is empty.
func (m *Map[K, V]) IsEmpty() bool {
	for _, head := range m.buckets {
		if head != nil {
			return false
		}
	}
	return true
}

// Len returns the number of stored entries.
func (m *Map[K, V]) Len() int {
	return m.count
}

// Size returns the number of buckets.
func (m *Map[K, V]) Size() int {
	return len(m.buckets)
}

// BucketLen returns the chain length of bucket i.
func (m *Map[K, V]) BucketLen(i int) int {
	if err := checkIndex(i, len(m.buckets)); err != nil {
		return 0
	}
	n := 0
	for e := m.buckets[i]; e != nil; e = e.next {
		n++
	}
	return n
}

// Range calls fn for each pair, bucket by bucket, until fn returns false.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for _, head := range m.buckets {
		for e := head; e != nil; e = e.next {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}

// Pairs returns a copy of every stored pair. Buckets are visited in index
// order, and each chain from its most recent insertion.
func (m *Map[K, V]) Pairs() []Pair[K, V] {
	pairs := make([]Pair[K, V], 0, m.count)
	m.Range(func(key K, value V) bool {
		pairs = append(pairs, Pair[K, V]{Key: key, Value: value})
		return true
	})
	return pairs
}

// Keys returns every stored key in Pairs order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.count)
	m.Range(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Clear drops every entry. The bucket count is kept.
func (m *Map[K, V]) Clear() {
	clear(m.buckets)
	m.count = 0
}

// Stats reports the entry count and how the entries spread over buckets.
func (m *Map[K, V]) Stats() map[string]int {
	used, longest := 0, 0
	for i := range m.buckets {
		n := m.BucketLen(i)
		if n > 0 {
			used++
		}
		if n > longest {
			longest = n
		}
	}
	return map[string]int{
		"entries":      m.count,
		"buckets":      len(m.buckets),
		"usedBuckets":  used,
		"longestChain": longest,
	}
}

// String renders the map as [{k, v}, {k, v}].
func (m *Map[K, V]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	m.Range(func(key K, value V) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "{%v, %v}", key, value)
		return true
	})
	sb.WriteByte(']')
	return sb.String()
}
