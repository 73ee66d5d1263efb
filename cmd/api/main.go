package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/sefazor/crowdfunding-backend/internal/config"
	"github.com/sefazor/crowdfunding-backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load .env, the environment wins when the file is missing
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg := config.LoadConfig()

	zapLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	if err := cfg.Validate(); err != nil {
		zapLogger.Fatal("invalid configuration", zap.Error(err))
	}

	app, err := InitializeAPI(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize API", zap.Error(err))
	}

	zapLogger.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
