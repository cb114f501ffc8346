package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"duoreport/internal/api"
	"duoreport/internal/config"
	"duoreport/internal/metrics"
	"duoreport/internal/routers"
	"duoreport/internal/session"
	"duoreport/internal/store"
	"duoreport/internal/summarize"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	documents := store.New(rdb, cfg.DocumentTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := documents.Ping(ctx); err != nil {
		// Sessions still run without persistence; only creation, export
		// and summarization need the store.
		logger.Warn("redis unreachable, running degraded", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	cancel()

	hub := session.NewHub(documents, cfg.KeepAliveInterval, logger)
	summarizer := summarize.NewClient(cfg.SummarizerURL, logger)
	handlers := api.NewHandlers(logger, documents, hub, summarizer)

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		metrics.Middleware,
	)
	r.Mount("/", routers.New(handlers))

	addr := cfg.Addr()
	log.Printf("duoreport listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
