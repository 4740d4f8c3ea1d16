package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"storefront-commerce/internal/client"
	"storefront-commerce/internal/config"
	"storefront-commerce/internal/repository"
	"storefront-commerce/internal/server"
	"storefront-commerce/internal/service"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// .env then .env.local on top; both are optional
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		slog.Error("failed to parse config", "error", err)
		os.Exit(1)
	}

	logger := client.NewLogger(&cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	ctx := context.Background()
	store, err := client.InitStore(ctx, &cfg.Database, client.NewGormLogger(logger, cfg.Environment.Name))
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.Database.ResolvedDriver(), "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if !cfg.JWT.Configured() {
		logger.Warn("JWT_SECRET is not set, using the development secret")
	}

	itemRepo := repository.NewItemRepository(store)
	productRepo := repository.NewManualProductRepository(store)
	customerRepo := repository.NewCustomerRepository(store)
	favoriteRepo := repository.NewFavoriteRepository(store)
	cartRepo := repository.NewCartRepository(store)
	orderRepo := repository.NewOrderRepository(store)
	reviewRepo := repository.NewReviewRepository(store)

	tokens := service.NewTokenService(&cfg.JWT)
	hasher := service.NewPasswordHasher(service.DefaultBcryptCost)
	etsyClient := client.NewEtsyClient(&cfg.Etsy)

	services := &server.Services{
		Tokens:   tokens,
		Accounts: service.NewAccountService(&cfg.Admin, tokens, hasher, customerRepo),
		Catalog:  service.NewCatalogService(etsyClient, itemRepo, productRepo),
		Customers: service.NewCustomerService(
			store,
			customerRepo,
			favoriteRepo,
			cartRepo,
			orderRepo,
			itemRepo,
			productRepo,
		),
		Reviews: service.NewReviewService(orderRepo, reviewRepo),
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	srv := server.NewServer(cfg, logger, services)

	logger.Info("starting HTTP server", "addr", serverAddr, "env", cfg.Environment.Name)
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
}
