package main

import (
	"fmt"
	"log"

	"it-inventory/internal/config"
	"it-inventory/internal/database"
	"it-inventory/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Init(cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	r := server.NewRouter(cfg, logger, db)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
