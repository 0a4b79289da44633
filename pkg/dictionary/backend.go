package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blasterbug/glossygloss/pkg/hashmap"
	"github.com/blasterbug/glossygloss/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Backend names accepted by NewBackend.
const (
	BackendHash     = "hash"
	BackendTrie     = "trie"
	BackendPatricia = "patricia"
)

// ErrUnknownBackend is returned by NewBackend for an unsupported name.
var ErrUnknownBackend = errors.New("unknown backend")

// Backend is the storage contract shared by every word store.
// Implementations are not synchronized; Dictionary serializes access.
type Backend interface {
	// Name identifies the backend in logs and stats.
	Name() string
	// Contains reports whether word is stored with a count above 0.
	Contains(word string) bool
	// Add stores word with count 1, or increments it when present.
	Add(word string) error
	// Increment bumps an existing word and reports whether it existed.
	Increment(word string) bool
	// Count returns the count of word, 0 when absent.
	Count(word string) int
	// Remove deletes word and reports whether it was present.
	Remove(word string) bool
	// Pairs returns an owned copy of every (word, count).
	Pairs() []Pair
	// Len returns the number of distinct words.
	Len() int
}

// statser is implemented by backends that can describe their internal shape.
type statser interface {
	Stats() map[string]int
}

// NewBackend builds a backend by name. buckets only applies to the hash backend.
func NewBackend(name string, buckets int) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case BackendHash, "":
		return NewHashBackend(buckets)
	case BackendTrie:
		return NewTrieBackend(), nil
	case BackendPatricia:
		return NewPatriciaBackend(), nil
	}
	return nil, fmt.Errorf("%w: %q (expected %s, %s or %s)", ErrUnknownBackend, name, BackendHash, BackendTrie, BackendPatricia)
}

// HashBackend stores counts in a chained hash map.
type HashBackend struct {
	words *hashmap.Map[string, int]
}

// NewHashBackend creates a hash backend with the given bucket count,
// hashmap.DefaultBuckets when buckets <= 0.
func NewHashBackend(buckets int) (*HashBackend, error) {
	if buckets <= 0 {
		buckets = hashmap.DefaultBuckets
	}
	m, err := hashmap.NewComparable[string, int](buckets, hashmap.StringHash)
	if err != nil {
		return nil, err
	}
	return &HashBackend{words: m}, nil
}

func (b *HashBackend) Name() string { return BackendHash }

func (b *HashBackend) Contains(word string) bool {
	return b.words.Contains(word)
}

func (b *HashBackend) Add(word string) error {
	if !b.Increment(word) {
		b.words.Put(word, 1)
	}
	return nil
}

func (b *HashBackend) Increment(word string) bool {
	n, err := b.words.Get(word)
	if err != nil {
		return false
	}
	b.words.Put(word, n+1)
	return true
}

func (b *HashBackend) Count(word string) int {
	n, err := b.words.Get(word)
	if err != nil {
		return 0
	}
	return n
}

func (b *HashBackend) Remove(word string) bool {
	if err := b.words.Remove(word); err != nil {
		if !errors.Is(err, hashmap.ErrKeyNotFound) {
			log.Errorf("Removing %q from hash backend: %v", word, err)
		}
		return false
	}
	return true
}

func (b *HashBackend) Pairs() []Pair {
	entries := b.words.Pairs()
	pairs := make([]Pair, len(entries))
	for i, e := range entries {
		pairs[i] = Pair{Word: e.Key, Count: e.Value}
	}
	return pairs
}

func (b *HashBackend) Len() int { return b.words.Len() }

func (b *HashBackend) Stats() map[string]int { return b.words.Stats() }

// TrieBackend stores counts in a prefix tree.
type TrieBackend struct {
	words *trie.Trie
}

// NewTrieBackend creates an empty trie backend.
func NewTrieBackend() *TrieBackend {
	return &TrieBackend{words: trie.New()}
}

func (b *TrieBackend) Name() string { return BackendTrie }

func (b *TrieBackend) Contains(word string) bool { return b.words.Contains(word) }

// Add inserts word; the trie increments repeated words itself.
func (b *TrieBackend) Add(word string) error { return b.words.Insert(word) }

func (b *TrieBackend) Increment(word string) bool { return b.words.Increment(word) }

// Count relies on the trie reporting 0 for absent words.
func (b *TrieBackend) Count(word string) int { return b.words.FrequencyOf(word) }

func (b *TrieBackend) Remove(word string) bool { return b.words.Remove(word) }

func (b *TrieBackend) Pairs() []Pair {
	counts := b.words.WordsWithFrequency()
	pairs := make([]Pair, len(counts))
	for i, c := range counts {
		pairs[i] = Pair{Word: c.Word, Count: c.Count}
	}
	return pairs
}

func (b *TrieBackend) Len() int { return b.words.Len() }

func (b *TrieBackend) Stats() map[string]int {
	return map[string]int{
		"height": b.words.Height(),
		"nodes":  b.words.Nodes(),
	}
}

// PatriciaBackend stores counts in a go-patricia compressed trie.
type PatriciaBackend struct {
	words *patricia.Trie
	count int
}

// NewPatriciaBackend creates an empty patricia backend.
func NewPatriciaBackend() *PatriciaBackend {
	return &PatriciaBackend{words: patricia.NewTrie()}
}

func (b *PatriciaBackend) Name() string { return BackendPatricia }

func (b *PatriciaBackend) Contains(word string) bool {
	return b.Count(word) > 0
}

func (b *PatriciaBackend) Add(word string) error {
	if word == "" {
		return ErrEmptyWord
	}
	if !b.Increment(word) {
		b.words.Insert(patricia.Prefix(word), 1)
		b.count++
	}
	return nil
}

func (b *PatriciaBackend) Increment(word string) bool {
	n := b.Count(word)
	if n == 0 {
		return false
	}
	b.words.Set(patricia.Prefix(word), n+1)
	return true
}

func (b *PatriciaBackend) Count(word string) int {
	if word == "" {
		return 0
	}
	item := b.words.Get(patricia.Prefix(word))
	if item == nil {
		return 0
	}
	n, ok := item.(int)
	if !ok {
		log.Errorf("Unknown item type: %T for word %s", item, word)
		return 0
	}
	return n
}

// Remove never deletes by the empty prefix, which would drop a whole subtree.
func (b *PatriciaBackend) Remove(word string) bool {
	if word == "" {
		return false
	}
	if !b.words.Delete(patricia.Prefix(word)) {
		return false
	}
	b.count--
	return true
}

func (b *PatriciaBackend) Pairs() []Pair {
	pairs := make([]Pair, 0, b.count)
	err := b.words.Visit(func(p patricia.Prefix, item patricia.Item) error {
		n, ok := item.(int)
		if !ok {
			return fmt.Errorf("unknown item type %T for word %s", item, p)
		}
		pairs = append(pairs, Pair{Word: string(p), Count: n})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting patricia trie: %v", err)
	}
	return pairs
}

func (b *PatriciaBackend) Len() int { return b.count }
