// Package config loads quest configuration from YAML files with QUEST_*
// environment-variable overrides, and builds the tokenizer from it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/quest/pkg/quest/internalerr"
)

// Config is the top-level configuration
type Config struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Results   ResultsConfig   `yaml:"results"`
	Workers   int             `yaml:"workers"`
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
}

// CorpusConfig selects where documents come from. Database takes
// precedence over JSONL, which takes precedence over Dir.
type CorpusConfig struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions"`
	Database   string   `yaml:"database"`
	JSONL      string   `yaml:"jsonl"`
}

// TokenizerConfig points at the stoplist and punctuation set. An empty
// Stoplist selects the bundled English list; an empty Punctuation
// selects ASCII punctuation.
type TokenizerConfig struct {
	Stoplist    string `yaml:"stoplist"`
	Punctuation string `yaml:"punctuation"`
}

// ResultsConfig holds how many files and sentences an answer returns.
type ResultsConfig struct {
	Files     int `yaml:"files"`
	Sentences int `yaml:"sentences"`
}

// LoggingConfig controls log level and output format (text or json).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Extensions: []string{".txt"},
		},
		Results: ResultsConfig{
			Files:     1,
			Sentences: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Load reads a YAML config file (if path is non-empty) over the
// defaults, then applies environment overrides and validates.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Results.Files < 1 {
		return fmt.Errorf("%w: results.files must be positive, got %d", internalerr.ErrInvalidConfig, c.Results.Files)
	}
	if c.Results.Sentences < 1 {
		return fmt.Errorf("%w: results.sentences must be positive, got %d", internalerr.ErrInvalidConfig, c.Results.Sentences)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", internalerr.ErrInvalidConfig, c.Workers)
	}
	if c.Logging.Level != "" {
		if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("%w: unknown logging.level %q", internalerr.ErrInvalidConfig, c.Logging.Level)
		}
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown logging.format %q", internalerr.ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// applyEnvOverrides reads QUEST_* environment variables. A numeric
// variable that does not parse is an error.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("QUEST_CORPUS_DIR"); v != "" {
		cfg.Corpus.Dir = v
	}
	if v := os.Getenv("QUEST_CORPUS_EXTENSIONS"); v != "" {
		cfg.Corpus.Extensions = strings.Split(v, ",")
	}
	if v := os.Getenv("QUEST_CORPUS_DATABASE"); v != "" {
		cfg.Corpus.Database = v
	}
	if v := os.Getenv("QUEST_CORPUS_JSONL"); v != "" {
		cfg.Corpus.JSONL = v
	}
	if v := os.Getenv("QUEST_STOPLIST"); v != "" {
		cfg.Tokenizer.Stoplist = v
	}
	if v := os.Getenv("QUEST_PUNCTUATION"); v != "" {
		cfg.Tokenizer.Punctuation = v
	}
	if v := os.Getenv("QUEST_FILE_MATCHES"); v != "" {
		n, err := envInt("QUEST_FILE_MATCHES", v)
		if err != nil {
			return err
		}
		cfg.Results.Files = n
	}
	if v := os.Getenv("QUEST_SENTENCE_MATCHES"); v != "" {
		n, err := envInt("QUEST_SENTENCE_MATCHES", v)
		if err != nil {
			return err
		}
		cfg.Results.Sentences = n
	}
	if v := os.Getenv("QUEST_WORKERS"); v != "" {
		n, err := envInt("QUEST_WORKERS", v)
		if err != nil {
			return err
		}
		cfg.Workers = n
	}
	if v := os.Getenv("QUEST_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("QUEST_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("QUEST_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	return nil
}

func envInt(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", internalerr.ErrInvalidConfig, name, value)
	}
	return n, nil
}
