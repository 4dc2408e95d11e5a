package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"provmark/internal/adapters/httpapi"
	"provmark/internal/bootstrap"
	"provmark/internal/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.LoadEnv()

	var opts bootstrap.Options
	flag.StringVar(&opts.Dataset, "dataset", config.DatasetPath(), "dataset file (.csv or .xlsx)")
	flag.StringVar(&opts.Store, "store", config.StorePath(), "SQLite cache file")
	flag.BoolVar(&opts.NoCache, "no-cache", false, "read the dataset directly")
	flag.BoolVar(&opts.Reimport, "reimport", false, "reimport even when the cache is current")
	flag.StringVar(&opts.VocabPath, "vocab", config.VocabPath(), "vocabulary YAML file")
	addr := flag.String("addr", config.HTTPAddr(), "listen address")
	logLevel := flag.String("log-level", config.LogLevel(), "log level")
	flag.Parse()

	logger, err := config.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		log.Fatalf("provmark-api: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ws, err := bootstrap.NewWorkspace(logger, opts.VocabPath)
	if err != nil {
		log.Fatalf("provmark-api: %v", err)
	}
	res, err := bootstrap.LoadDataset(ctx, ws, opts)
	if err != nil {
		log.Fatalf("provmark-api: %v", err)
	}
	logger.Info(res.Message)

	api := httpapi.NewServer(ws)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           api,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Hub().Run(gctx)
	})
	g.Go(func() error {
		logger.Info("listening", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("provmark-api: %v", err)
	}
	logger.Info("stopped")
}
