package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/fairshare/internal/auth"
	"github.com/mmynk/fairshare/internal/config"
	"github.com/mmynk/fairshare/internal/metrics"
	"github.com/mmynk/fairshare/internal/middleware"
	"github.com/mmynk/fairshare/internal/money"
	"github.com/mmynk/fairshare/internal/service"
	"github.com/mmynk/fairshare/internal/storage/sqlite"
	"github.com/mmynk/fairshare/pkg/api/apiconnect"
	"github.com/mmynk/fairshare/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load("fairshare.toml", os.Getenv("FAIRSHARE_CONFIG"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	store, err := sqlite.New(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.Storage.DBPath)

	m := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.GetTokenExpiry())
	opts := []service.Option{
		service.WithLogger(logger),
		service.WithMetrics(m),
		service.WithFormatter(money.NewFormatter(cfg.Locale.Tag(), cfg.Locale.CurrencySymbol)),
		service.WithLocation(cfg.Locale.Location()),
	}

	mux := http.NewServeMux()

	// Metrics run first so rejected requests are counted, and logging runs
	// after auth so it can report the user.
	splitPath, splitHandler := apiconnect.NewSplitServiceHandler(
		service.NewSplitService(store, opts...),
		connect.WithInterceptors(
			middleware.MetricsInterceptor(m),
			middleware.RequireAuth(jwtManager),
			middleware.LoggingInterceptor(logger),
		),
	)
	mux.Handle(splitPath, splitHandler)

	analyticsPath, analyticsHandler := apiconnect.NewAnalyticsServiceHandler(
		service.NewAnalyticsService(opts...),
		connect.WithInterceptors(
			middleware.MetricsInterceptor(m),
			middleware.OptionalAuth(jwtManager),
			middleware.LoggingInterceptor(logger),
		),
	)
	mux.Handle(analyticsPath, analyticsHandler)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(loggingMiddleware(logger, corsMiddleware(cfg.Server.CORSOrigin, mux)), &http2.Server{})

	servers := []*http.Server{{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if cfg.Server.MetricsPort > 0 {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", m.Handler())
		servers = append(servers, &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
			Handler:           metricsMux,
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			logger.Info("Server starting", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen on %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			errs = append(errs, srv.Shutdown(shutdownCtx))
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

// loggingMiddleware logs all incoming HTTP requests
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		logger.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
