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

	"eastside-storefront/cart"
	"eastside-storefront/catalog"
	"eastside-storefront/config"
	"eastside-storefront/database"
	"eastside-storefront/firebase"
	"eastside-storefront/logger"
	"eastside-storefront/metrics"
	"eastside-storefront/middleware"
	"eastside-storefront/routes"
	"eastside-storefront/slots"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "eastside-storefront:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logg := logger.New(logger.Options{
		ServiceName: "eastside-storefront",
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	warnings, err := cfg.ValidateEnv()
	if err != nil {
		return fmt.Errorf("environment validation failed: %w", err)
	}
	for _, w := range warnings {
		logg.Warn(logg.WithField(ctx, "detail", w), "config.warning")
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(promRegistry)

	opener, closeSlots, err := openSlots(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer closeSlots()

	var (
		verifier  firebase.TokenVerifier
		functions firebase.ProductGateway
		storage   firebase.StorageClient
		products  *catalog.Catalog
	)

	if cfg.UsesFirebase() {
		app, err := firebase.Init(ctx, firebase.Config{
			Credentials:   cfg.FirebaseCredentials,
			ProjectID:     cfg.FirebaseProjectID,
			StorageBucket: cfg.FirebaseStorageBucket,
		}, logg)
		if err != nil {
			return err
		}

		if verifier, err = firebase.NewTokenVerifier(ctx, app); err != nil {
			return err
		}

		if cfg.FirebaseStorageBucket != "" {
			bucket, err := firebase.NewStorageClient(ctx, app, cfg.FirebaseStorageBucket, logg)
			if err != nil {
				return err
			}
			storage = bucket
		}

		if cfg.CatalogSource == config.CatalogFirestore {
			client, err := app.Firestore(ctx)
			if err != nil {
				return fmt.Errorf("firestore client: %w", err)
			}
			defer client.Close()

			products = catalog.New()
			watcher := catalog.NewFirestoreWatcher(client, cfg.StoreID, products, logg, recorder)
			go watcher.Run(ctx)
		}
	}
	if cfg.FunctionsBaseURL != "" {
		functions = firebase.NewFunctionsClient(cfg.FunctionsBaseURL, nil)
	}
	if products == nil {
		products = catalog.NewStatic(catalog.StaticProducts())
	}

	carts := cart.NewRegistry(opener, cart.WithLogger(logg), cart.WithObserver(recorder))
	go carts.RunEviction(ctx, time.Minute, cfg.CartIdleTTL)

	customOrderLimiter := middleware.NewRateLimiter(5, time.Minute)
	go customOrderLimiter.RunCleanup(ctx, 5*time.Minute, 10*time.Minute)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recoverer(logg), middleware.RequestLogger(logg))
	r.MaxMultipartMemory = 10 << 20

	origins := []string{"http://localhost:5173"}
	if cfg.FrontendURL != "" {
		origins = []string{cfg.FrontendURL}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
	}))

	routes.SetupRoutes(r, routes.Dependencies{
		StoreID:  cfg.StoreID,
		Bucket:   cfg.FirebaseStorageBucket,
		Log:      logg,
		Catalog:  products,
		Registry: carts,
		Session: middleware.SessionConfig{
			Secret: cfg.SessionSecret,
			TTL:    cfg.SessionTTL,
			Secure: cfg.Env == "production",
		},
		Verifier:           verifier,
		Functions:          functions,
		Storage:            storage,
		CustomOrderLimiter: customOrderLimiter,
		Metrics:            promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(logg.WithFields(ctx, map[string]any{
			"port":          cfg.Port,
			"cart_storage":  cfg.CartStorage,
			"catalog":       cfg.CatalogSource,
			"admin_enabled": verifier != nil,
		}), "server.starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}
	logg.Info(context.Background(), "server.shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logg.Info(context.Background(), "server.stopped")
	return nil
}

// openSlots builds the durable slot backend chosen by CART_STORAGE.
func openSlots(ctx context.Context, cfg *config.Config, logg *logger.Logger) (cart.SlotOpener, func(), error) {
	switch cfg.CartStorage {
	case config.StorageRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		logg.Info(ctx, "cart.storage_redis")
		return slots.RedisOpener{Client: client, TTL: cfg.CartRedisTTL}, func() { client.Close() }, nil

	case config.StorageSQL:
		db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			database.Close(db)
			return nil, nil, err
		}
		logg.Info(logg.WithField(ctx, "driver", cfg.DatabaseDriver), "cart.storage_sql")
		return slots.SQLOpener{DB: db}, func() {
			if err := database.Close(db); err != nil {
				logg.Error(context.Background(), "database.close_failed", err)
			}
		}, nil

	default:
		if err := os.MkdirAll(cfg.CartStorageDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create cart storage dir: %w", err)
		}
		logg.Info(logg.WithField(ctx, "dir", cfg.CartStorageDir), "cart.storage_file")
		return slots.FileOpener{Dir: cfg.CartStorageDir}, func() {}, nil
	}
}
