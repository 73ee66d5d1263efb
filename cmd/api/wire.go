//go:build wireinject

package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	"github.com/sefazor/crowdfunding-backend/internal/config"
	"go.uber.org/zap"
)

func InitializeAPI(cfg *config.Config, logger *zap.Logger) (*fiber.App, error) {
	wire.Build(providerSet)
	return nil, nil
}
