package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

type AppFlags struct {
	LeftFile         string
	RightFile        string
	GlobalConfigFile string
	Format           string
	Output           string
	SearchQuery      string
	SearchRegex      bool
	IgnoreWhitespace bool
	IgnoreCase       bool
	Semantic         bool
	IgnoreKeys       []string
	IgnorePaths      []string
	ArrayKeyField    string
}

func ParseFlags() AppFlags {
	leftFile := flag.String("left", "", "Path to the left (old) input file.")
	leftFileAlias := flag.String("l", "", "Alias for -left")

	rightFile := flag.String("right", "", "Path to the right (new) input file.")
	rightFileAlias := flag.String("r", "", "Alias for -right")

	globalConfigFile := flag.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("c", "", "Alias for -config")

	format := flag.String("format", "", "Input format: auto, json, yaml, config, text (overrides config file if set)")
	output := flag.String("output", "summary", "Output mode: summary or json")
	searchQuery := flag.String("search", "", "Search the diff result for a query and print the matches")
	searchRegex := flag.Bool("regex", false, "Treat the search query as a regular expression")

	ignoreWhitespace := flag.Bool("ignore-whitespace", false, "Ignore whitespace differences")
	ignoreCase := flag.Bool("ignore-case", false, "Ignore letter case differences")
	semantic := flag.Bool("semantic", false, "Enable semantic value coercion for JSON comparison")
	ignoreKeys := flag.String("ignore-keys", "", "Comma-separated object keys to ignore in JSON comparison")
	ignorePaths := flag.String("ignore-paths", "", "Comma-separated paths to ignore in JSON comparison (e.g. $.meta.updated_at)")
	arrayKeyField := flag.String("array-key", "", "Object key identifying array items for move detection")

	flag.Parse()

	flags := AppFlags{
		Format:           *format,
		Output:           *output,
		SearchQuery:      *searchQuery,
		SearchRegex:      *searchRegex,
		IgnoreWhitespace: *ignoreWhitespace,
		IgnoreCase:       *ignoreCase,
		Semantic:         *semantic,
		IgnoreKeys:       splitList(*ignoreKeys),
		IgnorePaths:      splitList(*ignorePaths),
		ArrayKeyField:    *arrayKeyField,
	}

	if *leftFile != "" {
		flags.LeftFile = *leftFile
	} else if *leftFileAlias != "" {
		flags.LeftFile = *leftFileAlias
	}

	if *rightFile != "" {
		flags.RightFile = *rightFile
	} else if *rightFileAlias != "" {
		flags.RightFile = *rightFileAlias
	}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if flags.LeftFile == "" || flags.RightFile == "" {
		fmt.Fprintln(os.Stderr, "[FATAL] both -left and -right arguments are required")
		os.Exit(1)
	}

	return flags
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
