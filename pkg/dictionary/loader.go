package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/blasterbug/glossygloss/internal/utils"
	"github.com/charmbracelet/log"
)

// LoadOptions controls how a token stream is fed into a Dictionary.
type LoadOptions struct {
	// MaxWords stops reading after that many tokens, 0 reads everything.
	MaxWords int
	// Lowercase folds every token to lower case before counting.
	Lowercase bool
	// Filter trims surrounding punctuation and drops numbers and noise tokens.
	Filter bool
}

// LoadStats summarizes one load.
type LoadStats struct {
	Read    int
	Added   int
	Skipped int
}

// Feed reads whitespace separated tokens from r and adds each to d.
func Feed(r io.Reader, d *Dictionary, opts LoadOptions) (LoadStats, error) {
	var stats LoadStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		if opts.MaxWords > 0 && stats.Read >= opts.MaxWords {
			break
		}
		stats.Read++

		token := scanner.Text()
		// checked before case folding, which rewrites invalid bytes to U+FFFD
		if !utf8.ValidString(token) {
			log.Debugf("Skipping token %q: %v", token, ErrInvalidUTF8)
			stats.Skipped++
			continue
		}
		if opts.Filter {
			token = utils.TrimPunctuation(token)
			if !utils.IsValidToken(token) {
				stats.Skipped++
				continue
			}
		}
		if opts.Lowercase {
			token = strings.ToLower(token)
		}

		if err := d.AddWord(token); err != nil {
			log.Debugf("Skipping token %q: %v", token, err)
			stats.Skipped++
			continue
		}
		stats.Added++
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("reading tokens: %w", err)
	}
	return stats, nil
}

// LoadFile validates path and feeds its tokens into d.
func LoadFile(path string, d *Dictionary, opts LoadOptions) (LoadStats, error) {
	if err := utils.CheckReadableFile(path); err != nil {
		return LoadStats{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return LoadStats{}, fmt.Errorf("failed to open text file: %w", err)
	}
	defer file.Close()

	stats, err := Feed(file, d, opts)
	if err != nil {
		return stats, fmt.Errorf("loading %s: %w", path, err)
	}
	log.Debugf("Loaded %s: read=%d added=%d skipped=%d", path, stats.Read, stats.Added, stats.Skipped)
	return stats, nil
}
