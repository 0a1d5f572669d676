package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/config"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/host"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/httpapi"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/hub"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/session"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	deck := host.DefaultDeck()
	if cfg.DeckPath != "" {
		deck, err = host.LoadDeck(cfg.DeckPath)
		if err != nil {
			logger.Fatal("failed to load scenario deck", zap.String("path", cfg.DeckPath), zap.Error(err))
		}
	}

	var st store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to open database", zap.Error(err))
		}
		st = pg
		logger.Info("using postgres store")
	} else {
		st = store.NewMemory()
		logger.Info("no DATABASE_URL set, using in-memory store")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := hub.NewHub(ctx, session.Options{
		Logger:       logger,
		History:      st,
		Deck:         deck,
		TotalRounds:  cfg.TotalRounds,
		SupportsChat: cfg.SupportsChatInput,
		Linger:       cfg.TeardownLinger,
	})

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: httpapi.SetupRoutes(h, st, cfg, logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		h.Inbox() <- hub.ShutdownHub{}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
