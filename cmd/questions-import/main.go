package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/cognicore/quest/internal/logging"
	"github.com/cognicore/quest/pkg/quest/corpus"
	"github.com/cognicore/quest/pkg/quest/corpus/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		dbPath     string
		feed       string
		extensions []string
		list       bool
		remove     []string
		logLevel   string
	)
	flagSet := pflag.NewFlagSet("questions-import", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&dbPath, "db", "", "SQLite corpus database (required)")
	flagSet.StringVar(&feed, "jsonl", "", "JSONL feed dump to import")
	flagSet.StringSliceVar(&extensions, "ext", corpus.DefaultExtensions, "file extensions to import")
	flagSet.BoolVar(&list, "list", false, "list the documents in the database")
	flagSet.StringSliceVar(&remove, "delete", nil, "remove documents by name")
	flagSet.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: questions-import --db corpus.db [flags] [corpus-dir]\n\nCopies a directory of documents or a JSONL feed into a SQLite corpus.\n\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if dbPath == "" {
		return errors.New("--db required")
	}
	if flagSet.NArg() > 1 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(1))
	}
	log := logging.WithComponent(logging.NewWithOutput(stderr, logLevel, "text"), "import")

	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	for _, name := range remove {
		if err := st.Delete(ctx, name); err != nil {
			return fmt.Errorf("delete %s: %w", name, err)
		}
		log.WithField("document", name).Info("deleted")
	}

	if dir := flagSet.Arg(0); dir != "" {
		docs, err := corpus.Dir{Path: dir, Extensions: extensions}.Load(ctx)
		if err != nil {
			return err
		}
		if err := st.PutAll(ctx, docs); err != nil {
			return fmt.Errorf("import: %w", err)
		}
		log.WithField("documents", len(docs)).WithField("dir", dir).Info("imported corpus")
	}

	if feed != "" {
		docs, err := corpus.JSONL{
			Path: feed,
			OnSkip: func(line int, err error) {
				log.WithField("line", line).WithError(err).Warn("skipping feed item")
			},
		}.Load(ctx)
		if err != nil {
			return err
		}
		if err := st.PutAll(ctx, docs); err != nil {
			return fmt.Errorf("import: %w", err)
		}
		log.WithField("documents", len(docs)).WithField("feed", feed).Info("imported feed")
	}

	if list {
		names, err := st.Names(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(stdout, name)
		}
	}
	return nil
}
