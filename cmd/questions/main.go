package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"

	"github.com/cognicore/quest/internal/app"
	"github.com/cognicore/quest/internal/logging"
	"github.com/cognicore/quest/pkg/quest"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		flags   app.Flags
		query   string
		explain bool
	)
	flagSet := pflag.NewFlagSet("questions", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flags.Register(flagSet)
	flagSet.StringVarP(&query, "query", "q", "", "one-shot query (non-interactive mode)")
	flagSet.BoolVar(&explain, "explain", false, "print ranked files and scores with each answer")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: questions [flags] [corpus-dir]\n\nAnswers questions from a corpus of documents.\n\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() > 1 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(1))
	}

	cfg, err := flags.Resolve(flagSet, flagSet.Arg(0))
	if err != nil {
		return err
	}
	logger := logging.NewWithOutput(stderr, cfg.Logging.Level, cfg.Logging.Format)

	engine, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// One-shot query mode
	if query != "" {
		return executeQuery(ctx, stdout, engine, query, explain)
	}

	// Interactive mode
	scanner := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stdout, "Query: ")
		if !scanner.Scan() {
			fmt.Fprintln(stdout)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := executeQuery(ctx, stdout, engine, line, explain); err != nil {
			if !errors.Is(err, quest.ErrEmptyQuery) {
				return err
			}
			fmt.Fprintln(stdout, "No searchable words in that query.")
		}
	}
}

func executeQuery(ctx context.Context, w io.Writer, engine *quest.Engine, query string, explain bool) error {
	resp, err := engine.Answer(ctx, quest.AnswerRequest{Query: query})
	if err != nil {
		return err
	}

	if explain {
		card := resp.Card
		fmt.Fprintf(w, "Card %s\n", card.ID)
		fmt.Fprintf(w, "  Query tokens: %v\n", card.QueryTokens)
		for i, f := range card.Files {
			fmt.Fprintf(w, "  File %d: %s (tf-idf %.4f)\n", i+1, f.Name, f.Score)
		}
		for i, s := range card.Sentences {
			fmt.Fprintf(w, "  Sentence %d: idf %.4f, density %.4f (%d/%d) from %s\n",
				i+1, s.IDF, s.Density, s.QueryTerms, s.Length, s.Source)
		}
	}

	if len(resp.Sentences) == 0 {
		fmt.Fprintln(w, "No matching sentence found.")
		return nil
	}
	for _, s := range resp.Sentences {
		fmt.Fprintln(w, s)
	}
	return nil
}
