package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/dgallion1/exitsurvey/internal/analysis"
	"github.com/dgallion1/exitsurvey/internal/catalog"
	"github.com/dgallion1/exitsurvey/internal/match"
	"github.com/dgallion1/exitsurvey/internal/survey"
)

// Prefix is the environment variable prefix, e.g. EXITSURVEY_PORT.
const Prefix = "EXITSURVEY"

type Config struct {
	Port string `envconfig:"PORT" default:"8090"`

	// Auth. Empty disables the check.
	APIKey string `envconfig:"API_KEY"`

	// Worker pool
	WorkerCount  int `envconfig:"WORKER_COUNT" default:"4"`
	MaxQueueSize int `envconfig:"MAX_QUEUE_SIZE" default:"100"`

	// Upload limits
	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"20971520"` // 20MB

	// Job state
	JobTTL      time.Duration `envconfig:"JOB_TTL" default:"1h"`
	StatsWindow time.Duration `envconfig:"STATS_WINDOW" default:"1h"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// Analysis
	CatalogFile         string   `envconfig:"CATALOG_FILE"`
	MatchMode           string   `envconfig:"MATCH_MODE" default:"multi"`
	MatchCategoryNames  bool     `envconfig:"MATCH_CATEGORY_NAMES" default:"true"`
	QuestionPatterns    []string `envconfig:"QUESTION_PATTERNS"`
	AnalysisParallelism int      `envconfig:"ANALYSIS_PARALLELISM" default:"1"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config from env: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("WORKER_COUNT must be positive, got %d", c.WorkerCount)
	}
	if c.MaxQueueSize <= 0 {
		return fmt.Errorf("MAX_QUEUE_SIZE must be positive, got %d", c.MaxQueueSize)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.JobTTL <= 0 {
		return fmt.Errorf("JOB_TTL must be positive, got %s", c.JobTTL)
	}
	if c.AnalysisParallelism <= 0 {
		return fmt.Errorf("ANALYSIS_PARALLELISM must be positive, got %d", c.AnalysisParallelism)
	}
	if _, err := match.ParseMode(c.MatchMode); err != nil {
		return fmt.Errorf("MATCH_MODE: %w", err)
	}
	return nil
}

// MatchOptions converts the matching settings.
func (c Config) MatchOptions() match.Options {
	mode, _ := match.ParseMode(c.MatchMode)
	return match.Options{Mode: mode, MatchCategoryNames: c.MatchCategoryNames}
}

// AnalyzerConfig loads the catalog (CatalogFile or the built-in table) and
// compiles the extra question patterns.
func (c Config) AnalyzerConfig() (analysis.Config, error) {
	cat := catalog.Default()
	if c.CatalogFile != "" {
		loaded, err := catalog.LoadFile(c.CatalogFile)
		if err != nil {
			return analysis.Config{}, err
		}
		cat = loaded
	}

	rec, err := survey.NewRecognizer(c.QuestionPatterns...)
	if err != nil {
		return analysis.Config{}, fmt.Errorf("QUESTION_PATTERNS: %w", err)
	}

	return analysis.Config{
		Catalog:     cat,
		Match:       c.MatchOptions(),
		Recognizer:  rec,
		Parallelism: c.AnalysisParallelism,
	}, nil
}
