package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plantstore-be/internal/cache"
	"plantstore-be/internal/config"
	"plantstore-be/internal/customer"
	"plantstore-be/internal/db"
	"plantstore-be/internal/feed"
	"plantstore-be/internal/httpx"
	"plantstore-be/internal/logger"
	"plantstore-be/internal/notification"
	"plantstore-be/internal/order"
	"plantstore-be/internal/product"
	"plantstore-be/internal/stats"
	"plantstore-be/internal/storage"
	"plantstore-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	user.SetJWTSecret(cfg.JWTSecret)

	database := db.InitDB(cfg)
	defer database.Close()

	// Redis is an accelerator; the store runs without it.
	var redisCache *cache.Cache
	if cfg.RedisAddr != "" {
		c, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			log.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			redisCache = c
			defer redisCache.Close()
		}
	}

	store, err := storage.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err))
	}

	userSvc := user.NewService(user.NewRepository(database))
	productSvc := product.NewService(product.NewRepository(database), store, cfg.MaxImageBytes)
	customerSvc := customer.NewService(customer.NewRepository(database))
	notificationSvc := notification.NewService(notification.NewRepository(database))
	// a nil *cache.Cache must not end up as a non-nil interface value
	var statsCache stats.DashboardCache
	if redisCache != nil {
		statsCache = redisCache
	}
	statsSvc := stats.NewService(stats.NewRepository(database), statsCache, cfg.LowStockLimit)
	orderSvc := order.NewService(
		order.NewRepository(database),
		productSvc,
		customerSvc,
		order.NewTrackingGenerator(cfg.StorePrefix),
		cfg.MaxOrderQty,
	)

	bootstrapAdmin(ctx, userSvc)

	hub := feed.NewHub()
	listener := feed.NewListener(db.DSN(cfg), hub, redisCache, notificationSvc, statsSvc)
	go func() {
		if err := listener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("change feed stopped", zap.Error(err))
		}
	}()

	router := httpx.NewRouter(httpx.Deps{
		Users:         userSvc,
		Products:      productSvc,
		Orders:        orderSvc,
		Customers:     customerSvc,
		Notifications: notificationSvc,
		Stats:         statsSvc,
		Hub:           hub,
		MaxImageBytes: cfg.MaxImageBytes,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("server listening", zap.String("port", cfg.AppPort))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server failed", zap.Error(err))
	}
	log.Info("server stopped")
}

// bootstrapAdmin creates the initial admin account from the environment
// so a fresh deployment has a login without a register endpoint.
func bootstrapAdmin(ctx context.Context, users user.Service) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	_, _, err := users.Register(ctx, email, password)
	if errors.Is(err, user.ErrEmailExists) {
		return
	}
	if err != nil {
		logger.L().Warn("could not bootstrap admin user", zap.String("email", email), zap.Error(err))
		return
	}
	logger.L().Info("bootstrapped admin user", zap.String("email", email))
}
