package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tawhidislam22/business-management/internal/config"
	"github.com/tawhidislam22/business-management/internal/database"
	"github.com/tawhidislam22/business-management/internal/server"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()
	database.Init(cfg.DBDSN)

	r := server.NewRouter(cfg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
