/*
Package dictionary counts word occurrences on top of an interchangeable storage backend.

Three backends share the Backend contract: a chained hash map (hash), a
character-indexed prefix tree (trie) and a go-patricia compressed trie
(patricia). Whatever the backend, a Dictionary behaves the same: missing
words report false or a zero count, never an error.

	backend, err := dictionary.NewBackend("trie", 0)
	dict := dictionary.New(backend)
	dict.AddWord("chat")
	top := dict.TopFrequent(10)

Every Dictionary call holds one exclusive lock for its whole duration, so a
single instance may be shared between goroutines. The backends themselves
are not synchronized.
*/
package dictionary

import (
	"sync"
	"unicode/utf8"

	"github.com/blasterbug/glossygloss/pkg/topk"
	"github.com/blasterbug/glossygloss/pkg/trie"
	"github.com/charmbracelet/log"
)

// Errors returned by AddWord for words no backend may store.
var (
	ErrEmptyWord   = trie.ErrEmptyWord
	ErrInvalidUTF8 = trie.ErrInvalidUTF8
)

// checkWord rejects the words every backend must refuse alike.
func checkWord(w string) error {
	if w == "" {
		return ErrEmptyWord
	}
	if !utf8.ValidString(w) {
		return ErrInvalidUTF8
	}
	return nil
}

// Pair is a word and its occurrence count.
type Pair struct {
	Word  string
	Count int
}

func pairCount(p Pair) int { return p.Count }

// Dictionary is the word-frequency facade over a Backend.
type Dictionary struct {
	backend Backend
	total   int
	mu      sync.Mutex
}

// New wraps backend in a Dictionary.
func New(backend Backend) *Dictionary {
	return &Dictionary{backend: backend}
}

// NewWithBackend builds the named backend and wraps it.
func NewWithBackend(name string, buckets int) (*Dictionary, error) {
	backend, err := NewBackend(name, buckets)
	if err != nil {
		return nil, err
	}
	return New(backend), nil
}

// BackendName returns the backend name.
func (d *Dictionary) BackendName() string {
	return d.backend.Name()
}

// ContainsWord reports whether w has been added.
func (d *Dictionary) ContainsWord(w string) bool {
	if checkWord(w) != nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.backend.Contains(w)
}

// AddWord inserts w with count 1, or increments it when already present.
// Empty words and invalid UTF-8 are refused by every backend.
func (d *Dictionary) AddWord(w string) error {
	if err := checkWord(w); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.backend.Add(w); err != nil {
		return err
	}
	d.total++
	return nil
}

// IncrementWord bumps the count of an existing word.
// It returns false, changing nothing, when w is absent.
func (d *Dictionary) IncrementWord(w string) bool {
	if checkWord(w) != nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.backend.Increment(w) {
		return false
	}
	d.total++
	return true
}

// CountOf returns how many times w was counted, 0 when absent.
func (d *Dictionary) CountOf(w string) int {
	if checkWord(w) != nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.backend.Count(w)
}

// RemoveWord deletes w and reports whether it was present.
func (d *Dictionary) RemoveWord(w string) bool {
	if checkWord(w) != nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.backend.Count(w)
	if !d.backend.Remove(w) {
		return false
	}
	d.total -= n
	log.Debugf("Removed %q (%d occurrences) from %s backend", w, n, d.backend.Name())
	return true
}

// TopFrequent returns the k most frequent words, highest count first.
// Ties keep the order in which the backend lists them.
func (d *Dictionary) TopFrequent(k int) []Pair {
	d.mu.Lock()
	defer d.mu.Unlock()
	return topk.Select(d.backend.Pairs(), k, pairCount)
}

// Ranked returns every word sorted by descending count.
func (d *Dictionary) Ranked() []Pair {
	d.mu.Lock()
	defer d.mu.Unlock()
	return topk.Ranked(d.backend.Pairs(), pairCount)
}

// Pairs returns every (word, count) in backend order.
func (d *Dictionary) Pairs() []Pair {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.backend.Pairs()
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.backend.Len()
}

// Total returns the number of counted occurrences.
func (d *Dictionary) Total() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.total
}

// Stats reports word totals, the highest frequency and any backend specific figures.
func (d *Dictionary) Stats() map[string]int {
	d.mu.Lock()
	defer d.mu.Unlock()

	maxFrequency := 0
	for _, p := range d.backend.Pairs() {
		maxFrequency = max(maxFrequency, p.Count)
	}
	stats := map[string]int{
		"totalWords":    d.total,
		"distinctWords": d.backend.Len(),
		"maxFrequency":  maxFrequency,
	}
	if s, ok := d.backend.(statser); ok {
		for k, v := range s.Stats() {
			stats[k] = v
		}
	}
	return stats
}
