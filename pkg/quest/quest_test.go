package quest

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/cognicore/quest/internal/logging"
	"github.com/cognicore/quest/pkg/quest/corpus"
	"github.com/cognicore/quest/pkg/quest/corpus/memcorpus"
	"github.com/cognicore/quest/pkg/quest/internalerr"
	"github.com/cognicore/quest/pkg/quest/stoplist"
	"github.com/cognicore/quest/pkg/quest/tokenize"
)

var languages = map[string]string{
	"python.txt": "Python is a programming language. Guido van Rossum created Python in 1991.\nPython emphasizes readability.",
	"go.txt":     "Go is a programming language designed at Google. Go has goroutines.",
	"cats.txt":   "Cats are small mammals. Cats purr.",
}

func newEngine(t *testing.T, docs map[string]string, opts Options) *Engine {
	t.Helper()
	opts.Corpus = memcorpus.New(docs)
	if opts.Tokenizer == nil {
		opts.Tokenizer = tokenize.NewTokenizer(stoplist.English().All(), "")
	}
	opts.Logger = logging.Discard()

	e, err := New(context.Background(), opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

func TestAnswerScenario(t *testing.T) {
	e := newEngine(t, map[string]string{
		"a.txt": "The cat sat.",
		"b.txt": "The cat ran fast.",
	}, Options{Tokenizer: tokenize.NewTokenizer([]string{"the"}, "")})

	resp, err := e.Answer(context.Background(), AnswerRequest{Query: "cat fast"})
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if !reflect.DeepEqual(resp.Files, []string{"b.txt"}) {
		t.Errorf("Files = %v, want [b.txt]", resp.Files)
	}
	if !reflect.DeepEqual(resp.Sentences, []string{"The cat ran fast."}) {
		t.Errorf("Sentences = %v", resp.Sentences)
	}
	if resp.Card.ID == "" || resp.Card.Sentences[0].Source != "b.txt" {
		t.Errorf("unexpected card %+v", resp.Card)
	}
}

func TestAnswerBestSentence(t *testing.T) {
	e := newEngine(t, languages, Options{})

	resp, err := e.Answer(context.Background(), AnswerRequest{Query: "Who created Python?"})
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if !reflect.DeepEqual(resp.Files, []string{"python.txt"}) {
		t.Errorf("Files = %v", resp.Files)
	}
	if !reflect.DeepEqual(resp.Sentences, []string{"Guido van Rossum created Python in 1991."}) {
		t.Errorf("Sentences = %v", resp.Sentences)
	}
	if !reflect.DeepEqual(resp.Card.QueryTokens, []string{"created", "python"}) {
		t.Errorf("QueryTokens = %v", resp.Card.QueryTokens)
	}
	if resp.Candidates != 3 {
		t.Errorf("Candidates = %d, want all 3 sentences of python.txt", resp.Candidates)
	}
}

func TestAnswerRequestCounts(t *testing.T) {
	e := newEngine(t, languages, Options{})

	resp, err := e.Answer(context.Background(), AnswerRequest{Query: "who created python", Files: 2, Sentences: 2})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(resp.Files, []string{"python.txt", "cats.txt"}) {
		t.Errorf("Files = %v", resp.Files)
	}
	want := []string{"Guido van Rossum created Python in 1991.", "Python emphasizes readability."}
	if !reflect.DeepEqual(resp.Sentences, want) {
		t.Errorf("Sentences = %v, want %v", resp.Sentences, want)
	}

	resp, err = e.Answer(context.Background(), AnswerRequest{Query: "python", Files: 50, Sentences: 50})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Files) != 3 {
		t.Errorf("asking for more files than exist should return all, got %v", resp.Files)
	}
	if len(resp.Sentences) != 7 {
		t.Errorf("expected all 7 sentences, got %d: %v", len(resp.Sentences), resp.Sentences)
	}
}

func TestAnswerEngineDefaults(t *testing.T) {
	e := newEngine(t, languages, Options{FileMatches: 2, SentenceMatches: 3})

	resp, err := e.Answer(context.Background(), AnswerRequest{Query: "programming language"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Files) != 2 || len(resp.Sentences) != 3 {
		t.Errorf("expected 2 files and 3 sentences, got %v / %v", resp.Files, resp.Sentences)
	}
}

func TestAnswerDedupesAndDropsEmptySentences(t *testing.T) {
	e := newEngine(t, map[string]string{
		"a.txt": "Shared sentence about owls. Owls hunt.",
		"b.txt": "Shared sentence about owls. Nothing.\n...",
		"c.txt": "Fish swim.",
	}, Options{})

	resp, err := e.Answer(context.Background(), AnswerRequest{Query: "owls", Files: 2, Sentences: 10})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(resp.Files, []string{"a.txt", "b.txt"}) {
		t.Fatalf("Files = %v", resp.Files)
	}
	if len(resp.Sentences) != 3 {
		t.Fatalf("expected 3 distinct non-empty sentences, got %q", resp.Sentences)
	}
	for _, hit := range resp.Card.Sentences {
		if hit.Text == "..." {
			t.Error("sentence without tokens reached the ranker")
		}
		if hit.Text == "Shared sentence about owls." && hit.Source != "a.txt" {
			t.Errorf("shared sentence should be attributed to the best file, got %s", hit.Source)
		}
		if hit.Length == 0 {
			t.Errorf("zero-length sentence %q returned", hit.Text)
		}
	}
}

func TestAnswerEmptyQuery(t *testing.T) {
	e := newEngine(t, languages, Options{})

	for _, query := range []string{"", "   ", "the of and", "?!..."} {
		_, err := e.Answer(context.Background(), AnswerRequest{Query: query})
		if !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("%q: expected ErrEmptyQuery, got %v", query, err)
		}
		if !errors.Is(err, internalerr.ErrInvalidInput) {
			t.Errorf("%q: ErrEmptyQuery should be an invalid input error", query)
		}
	}
}

func TestAnswerNegativeCounts(t *testing.T) {
	e := newEngine(t, languages, Options{})

	_, err := e.Answer(context.Background(), AnswerRequest{Query: "python", Sentences: -1})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestAnswerUnknownTerms(t *testing.T) {
	e := newEngine(t, languages, Options{})

	resp, err := e.Answer(context.Background(), AnswerRequest{Query: "quantum chromodynamics"})
	if err != nil {
		t.Fatalf("unknown terms should not be an error: %v", err)
	}
	if !reflect.DeepEqual(resp.Files, []string{"cats.txt"}) {
		t.Errorf("all-zero scores should fall back to name order, got %v", resp.Files)
	}
	if len(resp.Card.MatchedTokens) != 0 {
		t.Errorf("nothing should match, got %v", resp.Card.MatchedTokens)
	}
}

func TestAnswerEmptyCorpus(t *testing.T) {
	e := newEngine(t, map[string]string{}, Options{})

	resp, err := e.Answer(context.Background(), AnswerRequest{Query: "python"})
	if err != nil {
		t.Fatalf("empty corpus should not error: %v", err)
	}
	if len(resp.Files) != 0 || len(resp.Sentences) != 0 {
		t.Errorf("expected empty answer, got %+v", resp)
	}
	if e.Documents() != 0 {
		t.Errorf("Documents() = %d", e.Documents())
	}
}

func TestAnswerConcurrentAndParallelConsistent(t *testing.T) {
	seq := newEngine(t, languages, Options{Workers: 1})
	par := newEngine(t, languages, Options{Workers: 8})

	want, err := seq.Answer(context.Background(), AnswerRequest{Query: "programming language google", Files: 3, Sentences: 5})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := par.Answer(context.Background(), AnswerRequest{Query: "programming language google", Files: 3, Sentences: 5})
			if err != nil {
				errs <- err
				return
			}
			if !reflect.DeepEqual(got.Files, want.Files) || !reflect.DeepEqual(got.Sentences, want.Sentences) {
				errs <- errors.New("parallel engine produced a different ranking")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestNewValidation(t *testing.T) {
	ctx := context.Background()
	tok := tokenize.NewTokenizer(nil, "")

	if _, err := New(ctx, Options{Tokenizer: tok}); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("missing corpus: got %v", err)
	}
	if _, err := New(ctx, Options{Corpus: memcorpus.New(nil)}); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("missing tokenizer: got %v", err)
	}
	if _, err := New(ctx, Options{Corpus: memcorpus.New(nil), Tokenizer: tok, FileMatches: -1}); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("negative files: got %v", err)
	}
}

func TestNewCorpusError(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := New(context.Background(), Options{
		Corpus: corpus.LoaderFunc(func(ctx context.Context) (map[string]string, error) {
			return nil, boom
		}),
		Tokenizer: tokenize.NewTokenizer(nil, ""),
		Logger:    logging.Discard(),
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped loader error, got %v", err)
	}
}
