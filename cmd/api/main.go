package main

import (
	"context"
	"log"
	"time"

	"order-service/internal/core/config"
	"order-service/internal/core/eventbus"
	"order-service/internal/core/logger"
	"order-service/internal/core/metrics"
	"order-service/internal/core/server"
	"order-service/internal/core/storage"
	"order-service/internal/features/orders/adapters"
	"order-service/internal/features/orders/domain"
	orderevents "order-service/internal/features/orders/events"
	orderhandler "order-service/internal/features/orders/handler"
	orderservice "order-service/internal/features/orders/service"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// @title Order Service API
// @version 1.0
// @description Order management API with coupon discounts, stock reservation, and tier-based pricing.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /api
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Order store
	store, err := storage.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer store.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		l.Fatal("Redis ping failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// External service clients
	timeout := time.Duration(cfg.Services.TimeoutSeconds) * time.Second
	productClient := adapters.NewHTTPProductClient(cfg.Services.ProductURL, timeout)
	customerClient := adapters.NewHTTPCustomerClient(cfg.Services.CustomerURL, timeout)
	couponClient := adapters.NewHTTPCouponClient(cfg.Services.CouponURL, timeout)

	healthCtx, cancelHealth := context.WithTimeout(context.Background(), timeout)
	defer cancelHealth()
	if err := productClient.HealthCheck(healthCtx); err != nil {
		l.Fatal("Product service health check failed", zap.Error(err))
	}
	l.Info("Product service connection verified")

	// Event bus and metrics
	bus := eventbus.New(l)
	defer bus.Close()

	orderMetrics := metrics.NewOrderMetrics(prometheus.DefaultRegisterer)

	router, err := orderevents.NewRouter(bus.Subscriber(), orderMetrics, l)
	if err != nil {
		l.Fatal("Failed to build event router", zap.Error(err))
	}
	go func() {
		if err := router.Run(context.Background()); err != nil {
			l.Error("Event router stopped", zap.Error(err))
		}
	}()

	// Domain rules with configured tier thresholds
	vipThreshold, err := domain.NewMoneyFromInt(cfg.Discount.VIPThreshold)
	if err != nil {
		l.Fatal("Invalid VIP threshold", zap.Error(err))
	}
	premiumThreshold, err := domain.NewMoneyFromInt(cfg.Discount.PremiumThreshold)
	if err != nil {
		l.Fatal("Invalid premium threshold", zap.Error(err))
	}
	policy := domain.DefaultDiscountPolicy()
	policy.VIPThreshold = vipThreshold
	policy.PremiumThreshold = premiumThreshold

	// Order workflow
	repo := adapters.NewRedisOrderRepository(store)
	publisher := adapters.NewWatermillEventPublisher(bus.Publisher())
	orderService := orderservice.NewOrderService(
		repo,
		domain.NewOrderDomainService(policy),
		productClient,
		customerClient,
		couponClient,
		publisher,
	)
	orderHandler := orderhandler.NewOrderHandler(orderService)

	srv := server.New(cfg, metrics.Handler())
	orderHandler.RegisterRoutes(srv.App.Group("/api"))

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
