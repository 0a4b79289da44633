// Package cli provides an interactive shell to query a loaded dictionary, mostly for debugging.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/blasterbug/glossygloss/internal/logger"
	"github.com/blasterbug/glossygloss/internal/utils"
	"github.com/blasterbug/glossygloss/pkg/dictionary"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

// InputHandler reads commands line by line and answers from the dictionary.
//
//	word          count of word
//	:top [n]      n most frequent words
//	:add word     add one occurrence
//	:rm word      remove word
//	:stats        dictionary statistics
//	:quit         leave the shell
type InputHandler struct {
	dict       *dictionary.Dictionary
	defaultTop int
	in         io.Reader
	out        io.Writer
	logger     *log.Logger
}

// NewInputHandler creates a shell reading commands from in and answering on out.
func NewInputHandler(dict *dictionary.Dictionary, defaultTop int, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		dict:       dict,
		defaultTop: defaultTop,
		in:         in,
		out:        out,
		logger:     logger.New("cli"),
	}
}

// Start runs the loop until :quit or the end of input.
func (h *InputHandler) Start() error {
	fmt.Fprintf(h.out, "glossygloss shell, %d distinct words loaded (%s backend)\n", h.dict.Len(), h.dict.BackendName())
	fmt.Fprintln(h.out, "type a word to see its count, :top [n], :add w, :rm w, :stats or :quit")

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !h.handleInput(line) {
			return nil
		}
	}
}

// handleInput runs one command and reports whether the loop should go on.
func (h *InputHandler) handleInput(line string) bool {
	start := time.Now()
	defer func() {
		h.logger.Debugf("Took [ %v ] for %q", time.Since(start), line)
	}()

	if !strings.HasPrefix(line, ":") {
		h.printCount(line)
		return true
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return false
	case ":top":
		n := h.defaultTop
		if len(fields) > 1 {
			v, err := strconv.Atoi(fields[1])
			if err != nil || v <= 0 {
				h.logger.Errorf("Invalid count: %s", fields[1])
				return true
			}
			n = v
		}
		h.printTop(n)
	case ":add":
		if len(fields) < 2 {
			h.logger.Error("usage: :add word")
			return true
		}
		if err := h.dict.AddWord(fields[1]); err != nil {
			h.logger.Errorf("Adding %q: %v", fields[1], err)
			return true
		}
		h.printCount(fields[1])
	case ":rm":
		if len(fields) < 2 {
			h.logger.Error("usage: :rm word")
			return true
		}
		if h.dict.RemoveWord(fields[1]) {
			fmt.Fprintf(h.out, "removed %s\n", wordStyle.Render(fields[1]))
		} else {
			h.logger.Warnf("%q is not in the dictionary", fields[1])
		}
	case ":stats":
		h.printStats()
	default:
		h.logger.Errorf("Unknown command: %s", fields[0])
	}
	return true
}

func (h *InputHandler) printCount(word string) {
	n := h.dict.CountOf(word)
	if n == 0 {
		h.logger.Warnf("%q is not in the dictionary", word)
		return
	}
	fmt.Fprintf(h.out, "%s : %s\n", wordStyle.Render(word), utils.FormatWithCommas(n))
}

func (h *InputHandler) printTop(n int) {
	top := h.dict.TopFrequent(n)
	if len(top) == 0 {
		h.logger.Warn("Dictionary is empty")
		return
	}
	for i, p := range top {
		fmt.Fprintf(h.out, "%2d. %s : %s\n", i+1, wordStyle.Render(p.Word), utils.FormatWithCommas(p.Count))
	}
}

func (h *InputHandler) printStats() {
	stats := h.dict.Stats()
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h.out, "%-14s %s\n", k, utils.FormatWithCommas(stats[k]))
	}
}
