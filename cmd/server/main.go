package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"borsa-dashboard-go/internal/api"
	"borsa-dashboard-go/internal/auth"
	"borsa-dashboard-go/internal/autotrader"
	"borsa-dashboard-go/internal/catalog"
	"borsa-dashboard-go/internal/config"
	"borsa-dashboard-go/internal/content"
	"borsa-dashboard-go/internal/database"
	"borsa-dashboard-go/internal/i18n"
	"borsa-dashboard-go/internal/logger"
	"borsa-dashboard-go/internal/market"
	"borsa-dashboard-go/internal/provider"
	"borsa-dashboard-go/internal/subscription"
	"go.uber.org/zap"
)

func main() {
	// Load application configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connection successful and schema migrated.", zap.String("driver", cfg.Database.Driver))

	cat := catalog.Default()

	// Upstream providers
	coingecko := provider.NewCoinGecko(&cfg.Providers, log)
	yahoo := provider.NewYahoo(&cfg.Providers, log)
	simulated := provider.NewSimulated(cat)

	board := market.NewBoard(cat, map[catalog.Category]*market.Poller{
		catalog.Equity: market.NewPoller("equity", yahoo, cat.Symbols(catalog.Equity), cfg.Polling.Category, log),
		catalog.Crypto: market.NewPoller("crypto", coingecko, cat.Symbols(catalog.Crypto), cfg.Polling.Prices, log),
	})
	prices := market.NewPriceProxy(map[catalog.Category]market.QuoteSource{
		catalog.Equity: yahoo,
		catalog.Crypto: coingecko,
	}, simulated, log)
	news := market.NewNewsFeed(provider.NewHeadlines(), cfg.Polling.News, log)

	// Domain services
	workflow := subscription.NewWorkflow(db, &cfg.Subscription, log)
	authService := auth.NewService(db, &cfg.Auth, auth.NewLogMailer(log), log)
	wishlist, err := content.NewStore(db, content.Wishlist, cat)
	if err != nil {
		log.Fatal("Failed to create wishlist store", zap.Error(err))
	}
	notifications, err := content.NewStore(db, content.Notifications, cat)
	if err != nil {
		log.Fatal("Failed to create notification store", zap.Error(err))
	}
	traderService := autotrader.NewService(db, &cfg.Trader, logger.Component(log, "trader"))
	engine := autotrader.NewEngine(logger.Component(log, "trader-engine"), &cfg.Trader, board, db)

	server := api.NewServer(&cfg.Server, api.Deps{
		Catalog:       cat,
		Board:         board,
		Prices:        prices,
		News:          news,
		Auth:          authService,
		Subscription:  workflow,
		Wishlist:      wishlist,
		Notifications: notifications,
		Trader:        traderService,
		Localizer:     i18n.New(),
	}, log)

	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	board.Start(ctx)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		engine.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		workflow.RunExpirySweeper(ctx, cfg.Subscription.ExpirySweep)
	}()

	server.Start()

	<-ctx.Done()
	log.Info("Shutdown signal received, gracefully shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("API server shutdown failed", zap.Error(err))
	}
	board.Stop()
	wg.Wait()

	log.Info("Dashboard has been shut down.")
}
