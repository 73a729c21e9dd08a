// Package app wires configuration, corpus, tokenizer and engine
// together for the quest binaries.
package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/cognicore/quest/internal/logging"
	"github.com/cognicore/quest/pkg/quest"
	"github.com/cognicore/quest/pkg/quest/config"
	"github.com/cognicore/quest/pkg/quest/corpus"
	"github.com/cognicore/quest/pkg/quest/corpus/sqlite"
	"github.com/cognicore/quest/pkg/quest/internalerr"
)

// Flags are the command-line settings shared by the binaries. A flag
// overrides the config file only when it was set explicitly.
type Flags struct {
	Config          string
	FileMatches     int
	SentenceMatches int
	Stoplist        string
	Punctuation     string
	Database        string
	JSONL           string
	Extensions      []string
	Workers         int
	LogLevel        string
	LogFormat       string
}

// Register adds the shared flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.Config, "config", "c", "", "YAML config file")
	fs.IntVarP(&f.FileMatches, "files", "f", 1, "number of top files to consider")
	fs.IntVarP(&f.SentenceMatches, "sentences", "s", 1, "number of top sentences to return")
	fs.StringVar(&f.Stoplist, "stoplist", "", "YAML stoplist (default: bundled English list)")
	fs.StringVar(&f.Punctuation, "punctuation", "", "characters treated as punctuation (default: ASCII punctuation)")
	fs.StringVar(&f.Database, "db", "", "SQLite corpus database (instead of a corpus directory)")
	fs.StringVar(&f.JSONL, "jsonl", "", "JSONL feed dump to use as the corpus")
	fs.StringSliceVar(&f.Extensions, "ext", []string{".txt"}, "file extensions read from the corpus directory")
	fs.IntVar(&f.Workers, "workers", 0, "tokenization and scoring workers (0: automatic)")
	fs.StringVar(&f.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFormat, "log-format", "text", "log format (text, json)")
}

// Resolve loads the config file and applies explicitly set flags and
// the corpus directory argument on top of it.
func (f *Flags) Resolve(fs *pflag.FlagSet, corpusDir string) (*config.Config, error) {
	cfg, err := config.Load(f.Config)
	if err != nil {
		return nil, err
	}

	if fs.Changed("files") {
		cfg.Results.Files = f.FileMatches
	}
	if fs.Changed("sentences") {
		cfg.Results.Sentences = f.SentenceMatches
	}
	if fs.Changed("stoplist") {
		cfg.Tokenizer.Stoplist = f.Stoplist
	}
	if fs.Changed("punctuation") {
		cfg.Tokenizer.Punctuation = f.Punctuation
	}
	if fs.Changed("db") {
		cfg.Corpus.Database = f.Database
	}
	if fs.Changed("jsonl") {
		cfg.Corpus.JSONL = f.JSONL
	}
	if fs.Changed("ext") {
		cfg.Corpus.Extensions = f.Extensions
	}
	if fs.Changed("workers") {
		cfg.Workers = f.Workers
	}
	if fs.Changed("log-level") {
		cfg.Logging.Level = f.LogLevel
	}
	if fs.Changed("log-format") {
		cfg.Logging.Format = f.LogFormat
	}
	if corpusDir != "" {
		cfg.Corpus.Dir = corpusDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Corpus.Dir == "" && cfg.Corpus.Database == "" && cfg.Corpus.JSONL == "" {
		return nil, fmt.Errorf("%w: a corpus directory, --db or --jsonl is required", internalerr.ErrInvalidConfig)
	}
	return cfg, nil
}

// OpenCorpus returns the loader selected by cfg. The cleanup function
// must be called once the loader is no longer needed. Feed lines the
// JSONL loader skips are logged to log at Warn.
func OpenCorpus(ctx context.Context, cfg config.CorpusConfig, log *logrus.Entry) (corpus.Loader, func(), error) {
	if cfg.Database != "" {
		st, err := sqlite.OpenSQLite(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("open corpus database: %w", err)
		}
		return st, func() { st.Close() }, nil
	}
	if cfg.JSONL != "" {
		return corpus.JSONL{
			Path: cfg.JSONL,
			OnSkip: func(line int, err error) {
				log.WithField("feed", cfg.JSONL).WithField("line", line).WithError(err).Warn("skipping feed item")
			},
		}, func() {}, nil
	}
	return corpus.Dir{Path: cfg.Dir, Extensions: cfg.Extensions}, func() {}, nil
}

// Build constructs the engine described by cfg.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*quest.Engine, error) {
	components, err := config.NewLoader(cfg.Tokenizer).Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	loader, cleanup, err := OpenCorpus(ctx, cfg.Corpus, logging.WithComponent(logger, "corpus"))
	if err != nil {
		return nil, err
	}
	// The corpus is read once, inside quest.New.
	defer cleanup()

	return quest.New(ctx, quest.Options{
		Corpus:          loader,
		Tokenizer:       components.Tokenizer,
		FileMatches:     cfg.Results.Files,
		SentenceMatches: cfg.Results.Sentences,
		Workers:         cfg.Workers,
		Logger:          logging.WithComponent(logger, "engine"),
	})
}
