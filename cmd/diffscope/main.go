package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/diffscope/diffscope/internal/config"
	"github.com/diffscope/diffscope/internal/logger"
	"github.com/diffscope/diffscope/internal/models"
	"github.com/diffscope/diffscope/internal/orchestrator"
	"github.com/diffscope/diffscope/internal/search"
)

func main() {
	flags := ParseFlags()

	configPath := config.GetConfigPath(flags.GlobalConfigFile)
	gCfg, err := config.LoadGlobalConfig(configPath)
	if err != nil {
		log.Fatalf("[FATAL] Could not load global config using path '%s': %v", configPath, err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	applyFlagOverrides(&gCfg.CompareConfig, flags)
	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}
	cfg := gCfg.CompareConfig

	left, err := os.ReadFile(flags.LeftFile)
	if err != nil {
		zLogger.Fatal().Err(err).Str("file", flags.LeftFile).Msg("Could not read left input")
	}
	right, err := os.ReadFile(flags.RightFile)
	if err != nil {
		zLogger.Fatal().Err(err).Str("file", flags.RightFile).Msg("Could not read right input")
	}

	ed, err := orchestrator.NewEnhancedDiffer(zLogger, cfg)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not initialize differ")
	}

	result, err := ed.Compare(string(left), string(right))
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Comparison failed")
	}

	if flags.SearchQuery != "" {
		matches, err := search.Find(&result.DiffResult, flags.SearchQuery, flags.SearchRegex)
		if err != nil {
			zLogger.Fatal().Err(err).Msg("Search failed")
		}
		printSearchMatches(matches)
	}

	switch flags.Output {
	case "json":
		if err := printJSON(result); err != nil {
			zLogger.Fatal().Err(err).Msg("Could not encode result")
		}
	default:
		printSummary(flags, result)
	}

	if result.HasDifferences {
		os.Exit(1)
	}
}

// applyFlagOverrides layers command-line options over the loaded comparison
// configuration.
func applyFlagOverrides(cfg *config.CompareConfig, flags AppFlags) {
	if flags.Format != "" {
		cfg.FormatType = flags.Format
	}
	if flags.IgnoreWhitespace {
		cfg.IgnoreWhitespace = true
	}
	if flags.IgnoreCase {
		cfg.IgnoreCase = true
	}
	if flags.Semantic {
		cfg.SemanticComparison = true
	}
	if len(flags.IgnoreKeys) > 0 {
		cfg.IgnoreKeys = append(cfg.IgnoreKeys, flags.IgnoreKeys...)
	}
	if len(flags.IgnorePaths) > 0 {
		cfg.IgnorePaths = append(cfg.IgnorePaths, flags.IgnorePaths...)
	}
	if flags.ArrayKeyField != "" {
		cfg.ArrayKeyField = flags.ArrayKeyField
		cfg.DetectArrayMoves = true
	}
}

func printJSON(result *models.EnhancedDiffResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func printSummary(flags AppFlags, result *models.EnhancedDiffResult) {
	if !result.HasDifferences {
		fmt.Printf("%s and %s are identical (%s)\n", flags.LeftFile, flags.RightFile, result.Format)
		return
	}

	fmt.Printf("%s vs %s (%s): +%d -%d\n", flags.LeftFile, flags.RightFile, result.Format, result.Additions, result.Removals)
	for i := range result.Left {
		printSummaryRow(result.Left[i], result.Right[i])
	}

	if result.Format == models.FormatJSON {
		fmt.Printf("paths: %d total, %d changed, %d added, %d removed (%.1f%%)\n",
			result.Stats.TotalPaths, result.Stats.ChangedPaths, result.Stats.AddedPaths,
			result.Stats.RemovedPaths, result.Stats.PercentChanged)
		for _, change := range result.StructuralChanges {
			fmt.Printf("%s at %s", change.Type, change.Path)
			if change.From != "" || change.To != "" {
				fmt.Printf(" (%s -> %s)", change.From, change.To)
			}
			fmt.Println()
		}
	}
}

// printSummaryRow renders one aligned row in a unified-style text form.
func printSummaryRow(left, right models.DiffLine) {
	switch {
	case left.Type == models.LineModified:
		fmt.Printf("~ %s | %s\n", left.Content, right.Content)
	case left.Type == models.LineRemoved:
		fmt.Printf("- %s\n", left.Content)
	case right.Type == models.LineAdded:
		fmt.Printf("+ %s\n", right.Content)
	}
}

func printSearchMatches(matches []search.Match) {
	for _, m := range matches {
		fmt.Printf("match %s line %d col %d: %s\n", m.Side, m.Line, m.Column, m.Text)
	}
	fmt.Printf("%d match(es)\n", len(matches))
}
