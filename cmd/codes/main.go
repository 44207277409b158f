package main

import (
	"context"
	"fmt"
	"os"

	"borsa-dashboard-go/internal/config"
	"borsa-dashboard-go/internal/database"
	"borsa-dashboard-go/internal/logger"
	"borsa-dashboard-go/internal/models"
	"borsa-dashboard-go/internal/subscription"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	var (
		configDir  = flag.StringP("config", "c", "./configs", "directory holding config.yml")
		count      = flag.IntP("count", "n", 1, "number of codes to mint")
		tierName   = flag.StringP("tier", "t", "pro", "tier granted by the codes (pro or ultimate)")
		adminGrant = flag.Bool("admin", false, "codes also grant the admin role")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	tier, err := models.ParseTier(*tierName)
	if err != nil || !tier.Paid() {
		fmt.Fprintf(os.Stderr, "Invalid tier %q: must be pro or ultimate\n", *tierName)
		os.Exit(2)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	workflow := subscription.NewWorkflow(db, &cfg.Subscription, log)
	codes, err := workflow.MintCodes(context.Background(), *count, tier, *adminGrant)
	if err != nil {
		log.Fatal("Failed to mint access codes", zap.Error(err))
	}

	log.Info("Minted access codes", zap.Int("count", len(codes)), zap.String("tier", string(tier)), zap.Bool("admin", *adminGrant))
	for _, c := range codes {
		fmt.Println(c.Code)
	}
}
