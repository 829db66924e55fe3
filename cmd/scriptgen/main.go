// Command scriptgen serves the short-form script generation API: a
// rate-limited gateway in front of a chat-completion provider, with a
// Redis-backed monthly quota per caller.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/viralprompt/scriptgen/pkg/api"
	"github.com/viralprompt/scriptgen/pkg/gateway"
	"github.com/viralprompt/scriptgen/pkg/provider/openai"
	"github.com/viralprompt/scriptgen/pkg/quota"
	quotazerolog "github.com/viralprompt/scriptgen/pkg/quota/logger/zerolog"
	prommetrics "github.com/viralprompt/scriptgen/pkg/quota/metrics/prometheus"
	redisstorage "github.com/viralprompt/scriptgen/storage/redis"
)

func main() {
	zl := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := run(zl); err != nil {
		zl.Fatal().Err(err).Msg("scriptgen exited")
	}
}

func run(zl zerolog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	store, err := redisstorage.New(client, redisstorage.DefaultConfig())
	if err != nil {
		return err
	}

	logger := quotazerolog.NewLogger(zl)
	metrics := prommetrics.NewMetrics(prometheus.DefaultRegisterer, "scriptgen")

	limiter, err := quota.NewLimiter(store, quota.Config{
		Limit:      cfg.FreeLimit,
		TimeSource: store,
		Logger:     logger,
		Metrics:    metrics,
	})
	if err != nil {
		return err
	}

	generator := openai.New(openai.Config{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       cfg.OpenAIModel,
		Temperature: 0.7,
		Timeout:     cfg.ProviderTimeout,
	})

	gw, err := gateway.New(gateway.Config{
		Limiter:   limiter,
		Generator: generator,
		Logger:    logger,
		Metrics:   metrics,
	})
	if err != nil {
		return err
	}

	handler, err := api.NewHandler(api.Config{
		Gateway:     gw,
		Subscribers: store,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	// The handlers own method dispatch (OPTIONS pre-flight, 405), so they
	// are mounted for all methods.
	r.HandleFunc("/api/generate", handler.Generate)
	r.HandleFunc("/api/subscribe", handler.Subscribe)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zl.Info().Str("addr", cfg.Addr).Int("free_limit", cfg.FreeLimit).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		zl.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
