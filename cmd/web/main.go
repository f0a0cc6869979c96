package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	cartmemory "github.com/dejobratic/vitrine/internal/cart/adapters/memory"
	cartredis "github.com/dejobratic/vitrine/internal/cart/adapters/redis"
	cartapp "github.com/dejobratic/vitrine/internal/cart/app"
	cartmetrics "github.com/dejobratic/vitrine/internal/cart/metrics"
	cartports "github.com/dejobratic/vitrine/internal/cart/ports"
	catalogadapters "github.com/dejobratic/vitrine/internal/catalog/adapters"
	catalogmemory "github.com/dejobratic/vitrine/internal/catalog/adapters/memory"
	catalogpostgres "github.com/dejobratic/vitrine/internal/catalog/adapters/postgres"
	catalogapp "github.com/dejobratic/vitrine/internal/catalog/app"
	catalogmetrics "github.com/dejobratic/vitrine/internal/catalog/metrics"
	catalogports "github.com/dejobratic/vitrine/internal/catalog/ports"
	"github.com/dejobratic/vitrine/internal/config"
	contentmemory "github.com/dejobratic/vitrine/internal/content/adapters/memory"
	contentpostgres "github.com/dejobratic/vitrine/internal/content/adapters/postgres"
	contentapp "github.com/dejobratic/vitrine/internal/content/app"
	contentports "github.com/dejobratic/vitrine/internal/content/ports"
	"github.com/dejobratic/vitrine/internal/database"
	"github.com/dejobratic/vitrine/internal/events"
	"github.com/dejobratic/vitrine/internal/idempotency"
	idemmemory "github.com/dejobratic/vitrine/internal/idempotency/memory"
	idempostgres "github.com/dejobratic/vitrine/internal/idempotency/postgres"
	"github.com/dejobratic/vitrine/internal/telemetry"
	"github.com/dejobratic/vitrine/internal/uploads"
	uploadsmemory "github.com/dejobratic/vitrine/internal/uploads/adapters/memory"
	uploadsminio "github.com/dejobratic/vitrine/internal/uploads/adapters/minio"
	uploadsports "github.com/dejobratic/vitrine/internal/uploads/ports"
	"github.com/dejobratic/vitrine/internal/web"

	"github.com/jackc/pgx/v5/pgxpool"
)

const meterName = "github.com/dejobratic/vitrine"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(parseLogLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.OTelEndpoint != "" {
		tel, err := telemetry.Initialize(ctx, telemetry.Config{
			ServiceName:    cfg.Service.Name,
			ServiceVersion: cfg.Service.Version,
			Environment:    cfg.Service.Environment,
			OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
			EnableTracing:  cfg.Telemetry.EnableTracing,
			EnableMetrics:  cfg.Telemetry.EnableMetrics,
			SampleRate:     cfg.Telemetry.SampleRate,
		})
		if err != nil {
			logger.Error("failed to initialize telemetry", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tel.Shutdown(shutdownCtx); err != nil {
				logger.Error("telemetry shutdown failed", "error", err)
			}
		}()
	}

	stores, err := buildStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize stores", "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	meter := otel.Meter(meterName)

	eventMetrics, err := events.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create event metrics", "error", err)
		os.Exit(1)
	}
	bus := events.NewBus(eventMetrics)
	bus.Subscribe(func(ctx context.Context, event events.CartEvent) {
		logger.DebugContext(ctx, "cart event",
			"kind", event.Kind,
			"session_id", event.SessionID,
			"product_id", event.ProductID,
			"quantity", event.Quantity,
		)
	})

	dbMet, err := database.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create database metrics", "error", err)
		os.Exit(1)
	}
	products := catalogadapters.NewObservableRepository(stores.products, dbMet)

	cartMet, err := cartmetrics.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create cart metrics", "error", err)
		os.Exit(1)
	}
	catalogMet, err := catalogmetrics.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create catalog metrics", "error", err)
		os.Exit(1)
	}
	webMet, err := web.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create http metrics", "error", err)
		os.Exit(1)
	}

	catalogService := catalogapp.NewService(products, logger, catalogMet)
	cartService := cartapp.NewService(stores.carts, bus, logger, cartMet)
	contentService := contentapp.NewService(stores.content, logger)
	uploadService := uploads.NewService(stores.blobs, logger)

	server, err := web.NewServer(web.Config{
		Carts:      cartService,
		Catalog:    catalogService,
		Content:    contentService,
		Uploads:    uploadService,
		Tokens:     stores.tokens,
		Logger:     logger,
		Metrics:    webMet,
		SessionTTL: cfg.Session.TTL,
		UploadOptions: uploads.Options{
			Folder:  cfg.Uploads.Folder,
			MaxSize: cfg.Uploads.MaxSize,
		},
	})
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	root := http.NewServeMux()
	root.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	root.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if stores.pool != nil {
			if err := database.CheckHealth(r.Context(), stores.pool); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	root.Handle("/", server)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "port", cfg.HTTP.Port, "backend", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("http server stopped")
	}
}

// stores bundles the persistence adapters selected by STORE_BACKEND.
type stores struct {
	products catalogports.ProductRepository
	content  contentports.ContentRepository
	carts    cartports.CartStore
	blobs    uploadsports.BlobStore
	tokens   idempotency.Store

	pool        *pgxpool.Pool
	redisClient *redis.Client
}

func (s *stores) Close() {
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

func buildStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	if cfg.Store.Backend == "memory" {
		return &stores{
			products: catalogmemory.NewRepository(),
			content:  contentmemory.NewRepository(),
			carts:    cartmemory.NewStore(),
			blobs:    uploadsmemory.NewStore("/" + cfg.Uploads.Folder),
			tokens:   idemmemory.NewStore(),
		}, nil
	}

	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}

	if cfg.Database.AutoMigrate {
		logger.Info("running database migrations", "path", cfg.Database.MigrationsPath)
		if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations completed successfully")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	blobs, err := uploadsminio.NewStore(ctx, uploadsminio.Config{
		Endpoint:      cfg.Storage.Endpoint,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Bucket:        cfg.Storage.Bucket,
		UseSSL:        cfg.Storage.UseSSL,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		_ = redisClient.Close()
		pool.Close()
		return nil, fmt.Errorf("create object store: %w", err)
	}

	return &stores{
		products:    catalogpostgres.NewRepository(pool),
		content:     contentpostgres.NewRepository(pool),
		carts:       cartredis.NewStore(redisClient, cfg.Session.TTL),
		blobs:       blobs,
		tokens:      idempostgres.NewStore(pool),
		pool:        pool,
		redisClient: redisClient,
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
