package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/0PeterAdel/Money-Management/internal/auth"
	"github.com/0PeterAdel/Money-Management/internal/config"
	"github.com/0PeterAdel/Money-Management/internal/handler"
	"github.com/0PeterAdel/Money-Management/internal/router"
	"github.com/0PeterAdel/Money-Management/internal/service"
	"github.com/0PeterAdel/Money-Management/internal/storage/sqlite"
	"github.com/0PeterAdel/Money-Management/pkg/logging"
)

func main() {
	// Setup structured logging
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	// Services
	ledger := service.NewLedgerService(store)
	actions := service.NewActionService(store, ledger)
	settlements := service.NewSettlementService(store)
	users := service.NewUserService(store)
	groups := service.NewGroupService(store)

	if err := groups.SeedCategories(context.Background()); err != nil {
		slog.Error("Failed to seed categories", "error", err)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	h := handler.New(users, groups, ledger, actions, settlements, jwtManager)
	r := router.Setup(cfg, h, jwtManager)

	slog.Info("Server starting", "address", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
