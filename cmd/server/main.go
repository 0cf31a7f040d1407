package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"social/internal/config"
	"social/internal/handlers"
	"social/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}

	addr := cfg.Addr
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}

	st := store.New()
	h := handlers.New(st, logger)

	srv := &http.Server{
		Addr: addr,
		// Recovery wraps the request log so a panic inside a handler
		// still produces a 500 and an access-log line.
		Handler: handlers.WithRecover(logger, handlers.WithRequestLog(logger, h.Routes())),
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("received signal, shutting down", "signal", s.String())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown", "error", err)
			os.Exit(1)
		}
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}
