// Package trie provides a character-indexed prefix tree that counts word occurrences.
package trie

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// rootTag marks the root node, which never ends a word.
const rootTag = '@'

// ErrEmptyWord is returned when inserting a zero-length word.
var ErrEmptyWord = errors.New("empty word")

// ErrInvalidUTF8 is returned when inserting a word that is not valid UTF-8.
// Invalid bytes would all decode to utf8.RuneError and merge distinct words.
var ErrInvalidUTF8 = errors.New("word is not valid UTF-8")

// WordCount is a word and its insertion count.
type WordCount struct {
	Word  string
	Count int
}

// node stores one character. A frequency above 0 marks the end of a word.
type node struct {
	tag       rune
	frequency int
	children  []*node
}

func (n *node) child(tag rune) *node {
	for _, c := range n.children {
		if c.tag == tag {
			return c
		}
	}
	return nil
}

// appendChild returns the child tagged tag, creating it when missing.
func (n *node) appendChild(tag rune) *node {
	if c := n.child(tag); c != nil {
		return c
	}
	c := &node{tag: tag}
	n.children = append(n.children, c)
	return c
}

func (n *node) removeChild(c *node) {
	for i, sibling := range n.children {
		if sibling == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *node) height() int {
	h := 0
	for _, c := range n.children {
		if ch := 1 + c.height(); ch > h {
			h = ch
		}
	}
	return h
}

func (n *node) size() int {
	s := 1
	for _, c := range n.children {
		s += c.size()
	}
	return s
}

// Trie counts words. The zero value is not usable, use New.
type Trie struct {
	root  *node
	words int
	total int
}

// New returns an empty trie holding only its root.
func New() *Trie {
	return &Trie{root: &node{tag: rootTag}}
}

// Insert adds one occurrence of word.
func (t *Trie) Insert(word string) error {
	if word == "" {
		return ErrEmptyWord
	}
	if !utf8.ValidString(word) {
		return ErrInvalidUTF8
	}
	n := t.root
	for _, r := range word {
		n = n.appendChild(r)
	}
	if n.frequency == 0 {
		t.words++
	}
	n.frequency++
	t.total++
	return nil
}

// lookup follows the path of word and returns its last node, or nil.
// Words that Insert would reject never match.
func (t *Trie) lookup(word string) *node {
	if word == "" || !utf8.ValidString(word) {
		return nil
	}
	n := t.root
	for _, r := range word {
		if n = n.child(r); n == nil {
			return nil
		}
	}
	return n
}

// Contains reports whether word was inserted. A bare prefix is not a word.
func (t *Trie) Contains(word string) bool {
	return t.FrequencyOf(word) > 0
}

// FrequencyOf returns how many times word was inserted, 0 if never.
func (t *Trie) FrequencyOf(word string) int {
	if n := t.lookup(word); n != nil {
		return n.frequency
	}
	return 0
}

// Increment adds one occurrence of an already stored word.
// It returns false and leaves the trie untouched when word is absent.
func (t *Trie) Increment(word string) bool {
	n := t.lookup(word)
	if n == nil || n.frequency == 0 {
		return false
	}
	n.frequency++
	t.total++
	return true
}

// Remove deletes word and prunes the nodes that no longer lead to any word.
func (t *Trie) Remove(word string) bool {
	if word == "" || !utf8.ValidString(word) {
		return false
	}
	path := []*node{t.root}
	n := t.root
	for _, r := range word {
		if n = n.child(r); n == nil {
			return false
		}
		path = append(path, n)
	}
	if n.frequency == 0 {
		return false
	}
	t.words--
	t.total -= n.frequency
	n.frequency = 0

	for i := len(path) - 1; i > 0; i-- {
		cur := path[i]
		if cur.frequency > 0 || len(cur.children) > 0 {
			break
		}
		path[i-1].removeChild(cur)
	}
	return true
}

// WordsWithFrequency lists every stored word with its count, depth first,
// siblings in insertion order.
func (t *Trie) WordsWithFrequency() []WordCount {
	out := make([]WordCount, 0, t.words)
	var buf []rune
	var walk func(n *node)
	walk = func(n *node) {
		for _, c := range n.children {
			buf = append(buf, c.tag)
			if c.frequency > 0 {
				out = append(out, WordCount{Word: string(buf), Count: c.frequency})
			}
			walk(c)
			buf = buf[:len(buf)-1]
		}
	}
	walk(t.root)
	return out
}

// Words lists every stored word in WordsWithFrequency order.
func (t *Trie) Words() []string {
	pairs := t.WordsWithFrequency()
	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.Word
	}
	return words
}

// Height is the length of the longest root-to-leaf path.
func (t *Trie) Height() int {
	return t.root.height()
}

// Len returns the number of distinct words.
func (t *Trie) Len() int {
	return t.words
}

// Total returns the sum of all word frequencies.
func (t *Trie) Total() int {
	return t.total
}

// Nodes returns the node count, root included.
func (t *Trie) Nodes() int {
	return t.root.size()
}

// String lists node tags in pre-order, comma separated, starting with the root.
func (t *Trie) String() string {
	var tags []string
	var walk func(n *node)
	walk = func(n *node) {
		tags = append(tags, string(n.tag))
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	return strings.Join(tags, ", ")
}
