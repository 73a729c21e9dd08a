package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/cognicore/quest/internal/app"
	"github.com/cognicore/quest/internal/logging"
	"github.com/cognicore/quest/internal/metrics"
	"github.com/cognicore/quest/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	var (
		flags      app.Flags
		addr       string
		maxResults int
	)
	flagSet := pflag.NewFlagSet("questions-server", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flags.Register(flagSet)
	flagSet.StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	flagSet.IntVar(&maxResults, "max-results", 100, "upper bound on files and sentences per request")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: questions-server [flags] [corpus-dir]\n\nServes answers over HTTP.\n\n")
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
	if addr != "" {
		cfg.Server.Addr = addr
	}
	logger := logging.NewWithOutput(stderr, cfg.Logging.Level, cfg.Logging.Format)
	log := logging.WithComponent(logger, "server")

	engine, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}

	m := metrics.New()
	m.CorpusDocuments.Set(float64(engine.Documents()))
	h := server.New(engine, m, log, maxResults)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      h.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", srv.Addr).WithField("documents", engine.Documents()).Info("answer service listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("answer service stopped")
	return nil
}
