package dictionary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var backends = []string{BackendHash, BackendTrie, BackendPatricia}

func newDict(t *testing.T, name string) *Dictionary {
	t.Helper()
	d, err := NewWithBackend(name, 0)
	if err != nil {
		t.Fatalf("NewWithBackend(%q): %v", name, err)
	}
	return d
}

func addAll(t *testing.T, d *Dictionary, words ...string) {
	t.Helper()
	for _, w := range words {
		if err := d.AddWord(w); err != nil {
			t.Fatalf("AddWord(%q): %v", w, err)
		}
	}
}

func TestNewBackend(t *testing.T) {
	for _, name := range append(backends, "", " TRIE ") {
		b, err := NewBackend(name, 7)
		if err != nil {
			t.Errorf("NewBackend(%q): %v", name, err)
			continue
		}
		if b.Len() != 0 {
			t.Errorf("%s backend not empty", b.Name())
		}
	}
	if _, err := NewBackend("btree", 0); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestTopFrequentEndToEnd(t *testing.T) {
	for _, name := range backends {
		t.Run(name, func(t *testing.T) {
			d := newDict(t, name)
			addAll(t, d, "chat", "chien", "chat", "chat", "chien")

			got := d.TopFrequent(2)
			want := []Pair{{"chat", 3}, {"chien", 2}}
			if len(got) != len(want) {
				t.Fatalf("expected %v, got %v", want, got)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("expected %v, got %v", want, got)
				}
			}
			if d.Total() != 5 || d.Len() != 2 {
				t.Errorf("expected Total 5 Len 2, got %d %d", d.Total(), d.Len())
			}
		})
	}
}

func TestFacadeContract(t *testing.T) {
	for _, name := range backends {
		t.Run(name, func(t *testing.T) {
			d := newDict(t, name)

			if d.ContainsWord("loup") || d.CountOf("loup") != 0 {
				t.Error("empty dictionary reports a word")
			}
			if d.IncrementWord("loup") {
				t.Error("IncrementWord on absent word returned true")
			}
			if d.ContainsWord("loup") {
				t.Error("IncrementWord inserted an absent word")
			}

			addAll(t, d, "loup", "loup")
			if d.CountOf("loup") != 2 {
				t.Errorf("re-adding should increment, count %d", d.CountOf("loup"))
			}
			if !d.IncrementWord("loup") || d.CountOf("loup") != 3 {
				t.Errorf("IncrementWord failed, count %d", d.CountOf("loup"))
			}

			addAll(t, d, "lou")
			if d.CountOf("lo") != 0 || d.ContainsWord("lo") {
				t.Error("bare prefix reported as a word")
			}

			if !d.RemoveWord("loup") {
				t.Error("RemoveWord on present word returned false")
			}
			if d.RemoveWord("loup") || d.RemoveWord("renard") {
				t.Error("RemoveWord on absent word returned true")
			}
			if d.ContainsWord("loup") || !d.ContainsWord("lou") {
				t.Error("RemoveWord removed the wrong word")
			}
			if d.Total() != 1 || d.Len() != 1 {
				t.Errorf("expected Total 1 Len 1, got %d %d", d.Total(), d.Len())
			}

			if err := d.AddWord(""); !errors.Is(err, ErrEmptyWord) {
				t.Errorf("expected ErrEmptyWord, got %v", err)
			}
		})
	}
}

func TestEmptyWordLeavesDictionaryIntact(t *testing.T) {
	for _, name := range backends {
		t.Run(name, func(t *testing.T) {
			// a single word makes the whole tree one compacted path
			d := newDict(t, name)
			addAll(t, d, "chat")

			if d.RemoveWord("") {
				t.Error(`RemoveWord("") returned true`)
			}
			if d.IncrementWord("") || d.ContainsWord("") || d.CountOf("") != 0 {
				t.Error("empty word reported as stored")
			}
			if d.Len() != 1 || d.Total() != 1 || d.CountOf("chat") != 1 {
				t.Errorf("dictionary changed: Len %d Total %d chat %d", d.Len(), d.Total(), d.CountOf("chat"))
			}
			if pairs := d.Pairs(); len(pairs) != 1 || pairs[0] != (Pair{"chat", 1}) {
				t.Errorf("unexpected pairs %v", pairs)
			}
		})
	}
}

func TestBackendsAgree(t *testing.T) {
	text := "le chat et le chien et le loup le chat dort"
	results := make(map[string][]string)
	for _, name := range backends {
		d := newDict(t, name)
		addAll(t, d, strings.Fields(text)...)

		var lines []string
		for _, p := range d.Pairs() {
			lines = append(lines, fmt.Sprintf("%s:%d", p.Word, p.Count))
		}
		sort.Strings(lines)
		results[name] = lines

		top := d.TopFrequent(3)
		if top[0] != (Pair{"le", 4}) {
			t.Errorf("%s: expected le:4 first, got %v", name, top)
		}
		for i := 1; i < len(top); i++ {
			if top[i].Count != 2 {
				t.Errorf("%s: expected count 2 at %d, got %v", name, i, top)
			}
		}
	}
	for _, name := range backends[1:] {
		if fmt.Sprint(results[name]) != fmt.Sprint(results[backends[0]]) {
			t.Errorf("%s pairs %v differ from %s pairs %v", name, results[name], backends[0], results[backends[0]])
		}
	}
}

func TestBackendsAgreeOnInvalidUTF8(t *testing.T) {
	// Latin-1 "café" and "cafè"
	latin1 := []string{"caf\xe9", "caf\xe8"}
	for _, name := range backends {
		t.Run(name, func(t *testing.T) {
			d := newDict(t, name)
			addAll(t, d, "café")
			for _, w := range latin1 {
				if err := d.AddWord(w); !errors.Is(err, ErrInvalidUTF8) {
					t.Errorf("AddWord(%q): expected ErrInvalidUTF8, got %v", w, err)
				}
				if d.ContainsWord(w) || d.CountOf(w) != 0 || d.IncrementWord(w) || d.RemoveWord(w) {
					t.Errorf("%q reported as stored", w)
				}
			}
			if err := d.AddWord("caf\uFFFD"); err != nil {
				t.Fatal(err)
			}
			if d.CountOf("caf\xe9") != 0 || d.CountOf("caf\uFFFD") != 1 {
				t.Error("invalid word matched its replacement-character spelling")
			}
			if d.Len() != 2 || d.Total() != 2 {
				t.Errorf("expected Len 2 Total 2, got %d %d", d.Len(), d.Total())
			}
		})
	}
}

func TestRanked(t *testing.T) {
	d := newDict(t, BackendTrie)
	addAll(t, d, "b", "a", "b", "c", "c", "c")
	got := d.Ranked()
	want := []Pair{{"c", 3}, {"b", 2}, {"a", 1}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Ranked = %v, expected %v", got, want)
	}
}

func TestStats(t *testing.T) {
	tests := []struct {
		backend string
		keys    []string
	}{
		{BackendHash, []string{"buckets", "usedBuckets", "longestChain"}},
		{BackendTrie, []string{"height", "nodes"}},
		{BackendPatricia, nil},
	}
	for _, tc := range tests {
		d := newDict(t, tc.backend)
		addAll(t, d, "chat", "chat", "chaton")
		stats := d.Stats()
		if stats["totalWords"] != 3 || stats["distinctWords"] != 2 || stats["maxFrequency"] != 2 {
			t.Errorf("%s: unexpected stats %v", tc.backend, stats)
		}
		for _, k := range tc.keys {
			if _, ok := stats[k]; !ok {
				t.Errorf("%s: missing stat %q in %v", tc.backend, k, stats)
			}
		}
	}
}

func TestConcurrentAdds(t *testing.T) {
	d := newDict(t, BackendHash)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				d.AddWord("mot")
			}
		}()
	}
	wg.Wait()
	if d.CountOf("mot") != 800 {
		t.Errorf("expected 800, got %d", d.CountOf("mot"))
	}
}

func TestFeed(t *testing.T) {
	input := "Chat chien,\tchat\n\n  CHAT 2014 ---  chien."

	tests := []struct {
		name      string
		opts      LoadOptions
		wantStats LoadStats
		want      map[string]int
	}{
		{
			name:      "raw tokens",
			opts:      LoadOptions{},
			wantStats: LoadStats{Read: 7, Added: 7},
			want:      map[string]int{"Chat": 1, "chien,": 1, "chat": 1, "CHAT": 1, "2014": 1},
		},
		{
			name:      "max words",
			opts:      LoadOptions{MaxWords: 3},
			wantStats: LoadStats{Read: 3, Added: 3},
			want:      map[string]int{"Chat": 1, "chien,": 1, "chat": 1},
		},
		{
			name:      "lowercase and filter",
			opts:      LoadOptions{Lowercase: true, Filter: true},
			wantStats: LoadStats{Read: 7, Added: 5, Skipped: 2},
			want:      map[string]int{"chat": 3, "chien": 2, "2014": 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newDict(t, BackendHash)
			stats, err := Feed(strings.NewReader(input), d, tc.opts)
			if err != nil {
				t.Fatalf("Feed: %v", err)
			}
			if stats != tc.wantStats {
				t.Errorf("expected stats %+v, got %+v", tc.wantStats, stats)
			}
			for w, n := range tc.want {
				if got := d.CountOf(w); got != n {
					t.Errorf("CountOf(%q) = %d, expected %d", w, got, n)
				}
			}
		})
	}
}

func TestFeedSkipsInvalidUTF8(t *testing.T) {
	d := newDict(t, BackendTrie)
	stats, err := Feed(strings.NewReader("caf\xe9 CAF\xe8 café"), d, LoadOptions{Lowercase: true})
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if stats != (LoadStats{Read: 3, Added: 1, Skipped: 2}) {
		t.Errorf("unexpected stats %+v", stats)
	}
	if d.Len() != 1 || d.CountOf("café") != 1 {
		t.Errorf("unexpected pairs %v", d.Pairs())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	if err := os.WriteFile(path, []byte("chat chien chat chat chien"), 0644); err != nil {
		t.Fatal(err)
	}

	d := newDict(t, BackendTrie)
	stats, err := LoadFile(path, d, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if stats.Added != 5 || d.CountOf("chat") != 3 {
		t.Errorf("unexpected load: %+v, chat=%d", stats, d.CountOf("chat"))
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.txt"), d, LoadOptions{}); err == nil {
		t.Error("expected error for missing file")
	}
}
