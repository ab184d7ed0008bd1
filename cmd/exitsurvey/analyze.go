package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgallion1/exitsurvey/internal/analysis"
	"github.com/dgallion1/exitsurvey/internal/config"
	"github.com/dgallion1/exitsurvey/internal/logger"
	"github.com/dgallion1/exitsurvey/internal/pipeline"
	"github.com/dgallion1/exitsurvey/internal/report"
)

type analyzeOptions struct {
	format      string
	matchMode   string
	catalogFile string
	patterns    []string
	parallelism int
	noNames     bool
}

func newAnalyzeCommand() *cobra.Command {
	var opts analyzeOptions
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a survey export (.xlsx, .xls, .csv, .html, .md, .docx)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "json", "output format: json or text")
	f.StringVar(&opts.matchMode, "match-mode", "", "keyword matching: multi or first (default from EXITSURVEY_MATCH_MODE)")
	f.StringVar(&opts.catalogFile, "catalog", "", "YAML category catalog replacing the built-in one")
	f.StringArrayVar(&opts.patterns, "question-pattern", nil, "extra regexp for question column names (repeatable)")
	f.IntVar(&opts.parallelism, "parallelism", 0, "row partitions analyzed concurrently")
	f.BoolVar(&opts.noNames, "no-category-names", false, "do not treat category names as keywords")

	return cmd
}

// loadConfig reads the environment and applies the flags that were set.
func loadConfig(cmd *cobra.Command, opts analyzeOptions) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("match-mode") {
		cfg.MatchMode = opts.matchMode
	}
	if flags.Changed("catalog") {
		cfg.CatalogFile = opts.catalogFile
	}
	if flags.Changed("question-pattern") {
		cfg.QuestionPatterns = append(cfg.QuestionPatterns, opts.patterns...)
	}
	if flags.Changed("parallelism") {
		cfg.AnalysisParallelism = opts.parallelism
	}
	if opts.noNames {
		cfg.MatchCategoryNames = false
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, path string, opts analyzeOptions) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, "console")
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	ac, err := cfg.AnalyzerConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	start := time.Now()
	sheet, res, err := pipeline.AnalyzeFile(cmd.Context(), analysis.New(ac), filepath.Base(path), f)
	if err != nil {
		return err
	}
	log.Debug("analyzed file",
		zap.String("path", path),
		zap.String("sheet", sheet.Name),
		zap.Int("rows", len(sheet.Rows)),
		zap.Int("questions", len(res.PerQuestion)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return report.Write(cmd.OutOrStdout(), format, res)
}
