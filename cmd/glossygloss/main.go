// Copyright 2025 The glossygloss Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main counts word frequencies in a text file and prints the most frequent ones.

# Usage

	glossygloss [flags] <text-file> <max-words>

Read every word of a file and print the 10 most frequent:

	glossygloss book.txt 0

Use the trie backend, fold case, drop punctuation and numbers, and show the
backend statistics:

	glossygloss -backend trie -lower -filter -stats book.txt 0

Results are printed one per line, most frequent first:

	the : 4213
	of : 2108

With -i an interactive shell opens once the file is loaded; with -s the
dictionary is served over msgpack on stdin/stdout (see package server), in
which case the positional arguments can be omitted to start empty.

# Configuration

Defaults come from a TOML (or YAML) file, ~/.config/glossygloss/config.toml
unless -config says otherwise. Flags set on the command line win over the file.

# Command Line Flags

	-config string
	    Path to a config file
	-backend string
	    Storage backend: hash, trie or patricia
	-buckets int
	    Bucket count of the hash backend
	-top int
	    Number of words to print
	-lower
	    Fold words to lower case
	-filter
	    Trim punctuation and skip numbers and noise tokens
	-stats
	    Print dictionary statistics
	-i  Open an interactive shell after loading
	-s  Serve msgpack IPC on stdin/stdout after loading
	-d  Toggle debug mode
	-version
	    Show current version
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"

	"github.com/blasterbug/glossygloss/internal/cli"
	"github.com/blasterbug/glossygloss/internal/logger"
	"github.com/blasterbug/glossygloss/internal/utils"
	"github.com/blasterbug/glossygloss/pkg/config"
	"github.com/blasterbug/glossygloss/pkg/dictionary"
	"github.com/blasterbug/glossygloss/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "glossygloss"
	gh      = "https://github.com/blasterbug/glossygloss"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	backend    string
	buckets    int
	top        int
	lower      bool
	filter     bool
	stats      bool
	shell      bool
	serve      bool
	debug      bool
	version    bool
}

func newFlagSet(stderr io.Writer, opts *options) *flag.FlagSet {
	defaults := config.DefaultConfig()

	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to a config file")
	fs.StringVar(&opts.backend, "backend", defaults.Dict.Backend, "Storage backend: hash, trie or patricia")
	fs.IntVar(&opts.buckets, "buckets", defaults.Dict.Buckets, "Bucket count of the hash backend")
	fs.IntVar(&opts.top, "top", defaults.CLI.DefaultTop, "Number of words to print")
	fs.BoolVar(&opts.lower, "lower", defaults.Dict.Lowercase, "Fold words to lower case")
	fs.BoolVar(&opts.filter, "filter", defaults.Dict.Filter, "Trim punctuation and skip numbers and noise tokens")
	fs.BoolVar(&opts.stats, "stats", false, "Print dictionary statistics")
	fs.BoolVar(&opts.shell, "i", false, "Open an interactive shell after loading")
	fs.BoolVar(&opts.serve, "s", false, "Serve msgpack IPC on stdin/stdout after loading")
	fs.BoolVar(&opts.debug, "d", false, "Toggle debug mode")
	fs.BoolVar(&opts.version, "version", false, "Show current version")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] <text-file> <max-words>\n", AppName)
		fs.PrintDefaults()
	}
	return fs
}

// run is main without the process exit, it returns the exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet(stderr, &opts)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.version {
		showVersion(stderr)
		return 0
	}

	if opts.debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	// positional arguments are optional only when serving
	rest := fs.Args()
	if len(rest) != 2 && !(opts.serve && len(rest) == 0) {
		fs.Usage()
		return 2
	}
	maxWords := 0
	if len(rest) == 2 {
		n, err := strconv.Atoi(rest[1])
		if err != nil || n < 0 {
			fmt.Fprintf(stderr, "max-words must be a non negative integer, got %q\n", rest[1])
			fs.Usage()
			return 2
		}
		maxWords = n
	}

	cfg, cfgPath, err := config.LoadConfigWithPriority(opts.configPath)
	if err != nil {
		log.Errorf("Failed to load config: %v", err)
		return 1
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(cfgPath))
	applyFlags(fs, &opts, cfg)
	if maxWords == 0 {
		maxWords = cfg.Dict.MaxWords
	}

	dict, err := dictionary.NewWithBackend(cfg.Dict.Backend, cfg.Dict.Buckets)
	if err != nil {
		log.Errorf("Failed to init dictionary: %v", err)
		return 1
	}

	if len(rest) == 2 {
		loadOpts := dictionary.LoadOptions{
			MaxWords:  maxWords,
			Lowercase: cfg.Dict.Lowercase,
			Filter:    cfg.Dict.Filter,
		}
		stats, err := dictionary.LoadFile(rest[0], dict, loadOpts)
		if err != nil {
			log.Errorf("Failed to load %s: %v", rest[0], err)
			return 1
		}
		log.Debug("Loaded words",
			"file", rest[0],
			"read", stats.Read,
			"added", stats.Added,
			"skipped", stats.Skipped,
			"backend", dict.BackendName())
	}

	switch {
	case opts.serve:
		srv := server.NewServer(dict, cfg, stdin, stdout)
		if err := srv.Start(); err != nil {
			log.Errorf("Server error: %v", err)
			return 1
		}
	case opts.shell:
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(dict, cfg.CLI.DefaultTop, stdin, stdout)
		if err := inputHandler.Start(); err != nil {
			log.Errorf("CLI error: %v", err)
			return 1
		}
	default:
		for _, p := range dict.TopFrequent(cfg.CLI.DefaultTop) {
			fmt.Fprintf(stdout, "%s : %d\n", p.Word, p.Count)
		}
	}

	if opts.stats {
		// stdout carries msgpack frames when serving
		out := stdout
		if opts.serve {
			out = stderr
		}
		printStats(out, dict.Stats())
	}
	return 0
}

// applyFlags copies the flags given on the command line over the config values.
func applyFlags(fs *flag.FlagSet, opts *options, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Dict.Backend = opts.backend
		case "buckets":
			cfg.Dict.Buckets = opts.buckets
		case "top":
			cfg.CLI.DefaultTop = opts.top
		case "lower":
			cfg.Dict.Lowercase = opts.lower
		case "filter":
			cfg.Dict.Filter = opts.filter
		}
	})
}

func printStats(w io.Writer, stats map[string]int) {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(w, "---")
	for _, k := range keys {
		fmt.Fprintf(w, "%s : %s\n", k, utils.FormatWithCommas(stats[k]))
	}
}

func showVersion(w io.Writer) {
	l := logger.NewWithConfig(w, "", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ glossygloss ] Counts words, hashes them and tries them")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}
