// Package quest answers free-text questions against a fixed corpus. It
// ranks whole documents by TF-IDF, then ranks the sentences of the best
// documents by IDF coverage and query term density.
package quest

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/quest/pkg/quest/cards"
	"github.com/cognicore/quest/pkg/quest/corpus"
	"github.com/cognicore/quest/pkg/quest/idf"
	"github.com/cognicore/quest/pkg/quest/internalerr"
	"github.com/cognicore/quest/pkg/quest/rank"
	"github.com/cognicore/quest/pkg/quest/sentence"
	"github.com/cognicore/quest/pkg/quest/tokenize"
)

// ErrEmptyQuery is returned when a query has no terms left after
// tokenization.
var ErrEmptyQuery = fmt.Errorf("%w: query has no content terms", internalerr.ErrInvalidInput)

// Engine holds a tokenized corpus and its document-level IDF table. It
// is safe for concurrent use; each Answer builds its own sentence
// collection and sentence-level IDF table.
type Engine struct {
	tokenizer *tokenize.Tokenizer
	splitter  sentence.Splitter
	cards     *cards.Builder
	log       *logrus.Entry
	workers   int

	fileMatches     int
	sentenceMatches int

	texts   map[string]string
	files   idf.Documents
	fileIDF idf.Table
}

// Options configures an Engine
type Options struct {
	Corpus    corpus.Loader
	Tokenizer *tokenize.Tokenizer
	// Splitter defaults to sentence.UAX29.
	Splitter sentence.Splitter
	// FileMatches and SentenceMatches are the default result counts.
	// Zero means 1.
	FileMatches     int
	SentenceMatches int
	// Workers bounds tokenization and scoring concurrency. Zero uses
	// GOMAXPROCS for tokenization and scores sequentially.
	Workers int
	Logger  *logrus.Entry
}

// New loads the corpus, tokenizes every document and computes the
// document-level IDF table.
func New(ctx context.Context, opts Options) (*Engine, error) {
	if opts.Corpus == nil {
		return nil, fmt.Errorf("%w: corpus loader is required", internalerr.ErrInvalidConfig)
	}
	if opts.Tokenizer == nil {
		return nil, fmt.Errorf("%w: tokenizer is required", internalerr.ErrInvalidConfig)
	}
	if opts.FileMatches < 0 || opts.SentenceMatches < 0 || opts.Workers < 0 {
		return nil, fmt.Errorf("%w: result counts and workers must not be negative", internalerr.ErrInvalidConfig)
	}
	if opts.Splitter == nil {
		opts.Splitter = sentence.UAX29{}
	}
	if opts.FileMatches == 0 {
		opts.FileMatches = 1
	}
	if opts.SentenceMatches == 0 {
		opts.SentenceMatches = 1
	}
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	start := time.Now()
	texts, err := opts.Corpus.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	tokens, err := opts.Tokenizer.TokenizeAll(ctx, texts, opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("tokenize corpus: %w", err)
	}
	files := idf.Documents(tokens)
	fileIDF := idf.Compute(files)

	log.WithFields(logrus.Fields{
		"documents": len(files),
		"terms":     fileIDF.Len(),
		"elapsed":   time.Since(start).String(),
	}).Info("corpus loaded")

	return &Engine{
		tokenizer:       opts.Tokenizer,
		splitter:        opts.Splitter,
		cards:           cards.New(),
		log:             log,
		workers:         opts.Workers,
		fileMatches:     opts.FileMatches,
		sentenceMatches: opts.SentenceMatches,
		texts:           texts,
		files:           files,
		fileIDF:         fileIDF,
	}, nil
}

// Documents returns the number of documents in the corpus.
func (e *Engine) Documents() int {
	return len(e.files)
}

// AnswerRequest is one query. Zero counts fall back to the engine
// defaults.
type AnswerRequest struct {
	Query     string
	Files     int
	Sentences int
}

// AnswerResponse holds the ranked files and sentences, plus the card
// that explains them. Candidates is the number of distinct sentences
// that were ranked before truncation.
type AnswerResponse struct {
	Files      []string
	Sentences  []string
	Card       cards.Card
	Candidates int
}

// Answer ranks the corpus against req.Query and returns the best files
// and the best sentences drawn from them.
func (e *Engine) Answer(ctx context.Context, req AnswerRequest) (AnswerResponse, error) {
	nFiles, nSentences := req.Files, req.Sentences
	if nFiles == 0 {
		nFiles = e.fileMatches
	}
	if nSentences == 0 {
		nSentences = e.sentenceMatches
	}
	if nFiles < 0 || nSentences < 0 {
		return AnswerResponse{}, fmt.Errorf("%w: got files=%d sentences=%d", rank.ErrNegativeCount, nFiles, nSentences)
	}

	q := rank.NewQuery(e.tokenizer.Tokenize(req.Query))
	if len(q) == 0 {
		return AnswerResponse{}, ErrEmptyQuery
	}
	opts := rank.Options{Workers: e.workers}

	scoredFiles, err := rank.RankFiles(q, e.files, e.fileIDF, opts)
	if err != nil {
		return AnswerResponse{}, fmt.Errorf("rank files: %w", err)
	}
	if nFiles < len(scoredFiles) {
		scoredFiles = scoredFiles[:nFiles]
	}
	if err := ctx.Err(); err != nil {
		return AnswerResponse{}, err
	}

	sentences, sources := e.candidateSentences(scoredFiles)
	sentenceIDF := idf.Compute(sentences)

	scoredSentences, err := rank.RankSentences(q, sentences, sentenceIDF, opts)
	if err != nil {
		return AnswerResponse{}, fmt.Errorf("rank sentences: %w", err)
	}
	if nSentences < len(scoredSentences) {
		scoredSentences = scoredSentences[:nSentences]
	}

	resp := AnswerResponse{
		Files:      make([]string, len(scoredFiles)),
		Sentences:  make([]string, len(scoredSentences)),
		Card:       e.cards.Build(req.Query, q, scoredFiles, scoredSentences, sources),
		Candidates: len(sentences),
	}
	for i, f := range scoredFiles {
		resp.Files[i] = f.Name
	}
	for i, s := range scoredSentences {
		resp.Sentences[i] = s.Text
	}

	e.log.WithFields(logrus.Fields{
		"card":       resp.Card.ID,
		"terms":      len(q),
		"files":      len(resp.Files),
		"candidates": len(sentences),
		"sentences":  len(resp.Sentences),
	}).Debug("answered query")

	return resp, nil
}

// candidateSentences splits the given files into sentences and
// tokenizes them. Sentences without tokens are dropped and repeated
// sentence text is kept once, attributed to the best-ranked file that
// contains it.
func (e *Engine) candidateSentences(files []rank.ScoredFile) (idf.Documents, map[string]string) {
	sentences := make(idf.Documents)
	sources := make(map[string]string)
	for _, f := range files {
		for _, s := range e.splitter.Split(e.texts[f.Name]) {
			if _, seen := sentences[s]; seen {
				continue
			}
			tokens := e.tokenizer.Tokenize(s)
			if len(tokens) == 0 {
				continue
			}
			sentences[s] = tokens
			sources[s] = f.Name
		}
	}
	return sentences, sources
}
