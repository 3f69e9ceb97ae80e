package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"yt-sentiment-pipeline/pkg/utils"
)

const (
	configPathEnv = "SENTIMENT_CONFIG"
	apiKeyEnv     = "YOUTUBE_API_KEY"
	maxResultsEnv = "SENTIMENT_MAX_RESULTS"
	dataDirEnv    = "SENTIMENT_DATA_DIR"
	outputDirEnv  = "SENTIMENT_OUTPUT_DIR"
	serverAddrEnv = "SENTIMENT_SERVER_ADDR"
	dbPathEnv     = "SENTIMENT_DB_PATH"
	logLevelEnv   = "LOG_LEVEL"

	// MaxPageSize is the largest page commentThreads.list accepts
	MaxPageSize = 100
)

// Config holds every setting the CLI and the API server need.
type Config struct {
	YouTube YouTubeConfig `yaml:"youtube"`
	Storage StorageConfig `yaml:"storage"`
	Report  ReportConfig  `yaml:"report"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// YouTubeConfig configures the comment fetcher.
type YouTubeConfig struct {
	APIKey     string `yaml:"apiKey"`
	PageSize   int    `yaml:"pageSize"`
	MaxResults int    `yaml:"maxResults"`
}

// StorageConfig locates the flat record store.
type StorageConfig struct {
	DataDir     string `yaml:"dataDir"`
	RawFile     string `yaml:"rawFile"`
	CleanedFile string `yaml:"cleanedFile"`
	ScoredFile  string `yaml:"scoredFile"`
}

// ReportConfig locates report artifacts.
type ReportConfig struct {
	OutputDir string `yaml:"outputDir"`
	Title     string `yaml:"title"`
	Workbook  *bool  `yaml:"workbook"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	DBPath       string `yaml:"dbPath"`
	ReadTimeout  string `yaml:"readTimeout"`
	WriteTimeout string `yaml:"writeTimeout"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// RawPath returns the path of the fetched comments file.
func (c Config) RawPath() string { return filepath.Join(c.Storage.DataDir, c.Storage.RawFile) }

// CleanedPath returns the path of the cleaned comments file.
func (c Config) CleanedPath() string { return filepath.Join(c.Storage.DataDir, c.Storage.CleanedFile) }

// ScoredPath returns the path of the sentiment-labeled comments file.
func (c Config) ScoredPath() string { return filepath.Join(c.Storage.DataDir, c.Storage.ScoredFile) }

// WorkbookEnabled reports whether the XLSX export is on (default true).
func (c Config) WorkbookEnabled() bool {
	return c.Report.Workbook == nil || *c.Report.Workbook
}

// ReadTimeoutDuration parses the server read timeout.
func (s ServerConfig) ReadTimeoutDuration() time.Duration { return utils.ParseDuration(s.ReadTimeout) }

// WriteTimeoutDuration parses the server write timeout.
func (s ServerConfig) WriteTimeoutDuration() time.Duration { return utils.ParseDuration(s.WriteTimeout) }

// Load reads .env files, an optional YAML file and environment overrides, in that order.
// An explicit path wins over SENTIMENT_CONFIG.
func Load(path string) (Config, error) {
	if err := loadEnvFiles(); err != nil {
		return Config{}, err
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		var fileCfg Config
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		cfg = merge(cfg, fileCfg)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		YouTube: YouTubeConfig{PageSize: MaxPageSize, MaxResults: 500},
		Storage: StorageConfig{
			DataDir:     "data",
			RawFile:     "raw_comments.csv",
			CleanedFile: "cleaned_comments.csv",
			ScoredFile:  "sentiment_labeled_comments.csv",
		},
		Report: ReportConfig{
			OutputDir: "output",
			Title:     "YouTube Comment Sentiment Analysis Report",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			DBPath:       "pipeline.db",
			ReadTimeout:  "15s",
			WriteTimeout: "5m",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Validate checks the values the pipeline relies on.
func (c Config) Validate() error {
	var errs []error
	if c.YouTube.PageSize < 1 || c.YouTube.PageSize > MaxPageSize {
		errs = append(errs, fmt.Errorf("youtube.pageSize must be between 1 and %d, got %d", MaxPageSize, c.YouTube.PageSize))
	}
	if c.YouTube.MaxResults < 0 {
		errs = append(errs, fmt.Errorf("youtube.maxResults must not be negative, got %d", c.YouTube.MaxResults))
	}
	if c.Storage.DataDir == "" || c.Storage.RawFile == "" || c.Storage.CleanedFile == "" || c.Storage.ScoredFile == "" {
		errs = append(errs, errors.New("storage paths must not be empty"))
	}
	if c.Report.OutputDir == "" {
		errs = append(errs, errors.New("report.outputDir must not be empty"))
	}
	return errors.Join(errs...)
}

// loadEnvFiles loads .env.local then .env; missing files are fine and
// variables already present in the process environment are never overwritten.
func loadEnvFiles() error {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(apiKeyEnv); v != "" {
		c.YouTube.APIKey = v
	}
	if v := os.Getenv(maxResultsEnv); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", maxResultsEnv, v, err)
		}
		c.YouTube.MaxResults = n
	}
	if v := os.Getenv(dataDirEnv); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv(outputDirEnv); v != "" {
		c.Report.OutputDir = v
	}
	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(dbPathEnv); v != "" {
		c.Server.DBPath = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	return nil
}

func merge(base, override Config) Config {
	if override.YouTube.APIKey != "" {
		base.YouTube.APIKey = override.YouTube.APIKey
	}
	if override.YouTube.PageSize != 0 {
		base.YouTube.PageSize = override.YouTube.PageSize
	}
	if override.YouTube.MaxResults != 0 {
		base.YouTube.MaxResults = override.YouTube.MaxResults
	}

	if override.Storage.DataDir != "" {
		base.Storage.DataDir = override.Storage.DataDir
	}
	if override.Storage.RawFile != "" {
		base.Storage.RawFile = override.Storage.RawFile
	}
	if override.Storage.CleanedFile != "" {
		base.Storage.CleanedFile = override.Storage.CleanedFile
	}
	if override.Storage.ScoredFile != "" {
		base.Storage.ScoredFile = override.Storage.ScoredFile
	}

	if override.Report.OutputDir != "" {
		base.Report.OutputDir = override.Report.OutputDir
	}
	if override.Report.Title != "" {
		base.Report.Title = override.Report.Title
	}
	if override.Report.Workbook != nil {
		base.Report.Workbook = override.Report.Workbook
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.DBPath != "" {
		base.Server.DBPath = override.Server.DBPath
	}
	if override.Server.ReadTimeout != "" {
		base.Server.ReadTimeout = override.Server.ReadTimeout
	}
	if override.Server.WriteTimeout != "" {
		base.Server.WriteTimeout = override.Server.WriteTimeout
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Development {
		base.Logging.Development = true
	}
	return base
}
