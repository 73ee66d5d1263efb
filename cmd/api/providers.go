package main

import (
	"github.com/google/wire"
	"github.com/sefazor/crowdfunding-backend/internal/config"
	"github.com/sefazor/crowdfunding-backend/internal/controller"
	"github.com/sefazor/crowdfunding-backend/internal/handler"
	"github.com/sefazor/crowdfunding-backend/internal/i18n"
	"github.com/sefazor/crowdfunding-backend/internal/middleware"
	"github.com/sefazor/crowdfunding-backend/internal/repository"
	"github.com/sefazor/crowdfunding-backend/internal/service"
	"github.com/sefazor/crowdfunding-backend/pkg/captcha"
	"github.com/sefazor/crowdfunding-backend/pkg/database"
	"github.com/sefazor/crowdfunding-backend/pkg/email"
	"github.com/sefazor/crowdfunding-backend/pkg/payment"
	"github.com/sefazor/crowdfunding-backend/pkg/qrcode"
	"github.com/sefazor/crowdfunding-backend/pkg/storage"
	"github.com/sefazor/crowdfunding-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var providerSet = wire.NewSet(
	// Storage
	provideDatabase,
	repository.NewStore,
	wire.Bind(new(repository.Store), new(*repository.GormStore)),
	storage.NewCloudflareStorage,
	provideReceiptArchive,

	// Adapters
	payment.NewSigner,
	email.NewEmailService,
	wire.Bind(new(service.SignInNotifier), new(*email.EmailService)),
	provideQRService,
	provideTurnstile,
	wire.Bind(new(handler.CaptchaVerifier), new(*captcha.Turnstile)),
	provideBundle,
	wire.Bind(new(middleware.TranslatorSource), new(*i18n.Bundle)),

	// Services
	service.NewAliasManager,
	service.NewUserResolver,
	service.NewReducedPledgeGuard,
	service.NewPledgeService,
	service.NewPackageService,

	// Controllers
	controller.NewPledgeController,
	controller.NewPackageController,

	// Validator
	utils.NewValidator,

	// Handlers
	handler.NewPledgeHandler,
	handler.NewPackageHandler,

	// App
	handler.NewFiberApp,
)

func provideDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return database.NewDatabase(cfg.DatabaseURL, logger)
}

// provideReceiptArchive keeps a disabled archive a nil interface.
func provideReceiptArchive(s storage.StorageService) service.ReceiptArchive {
	if s == nil {
		return nil
	}
	return s
}

func provideQRService(cfg *config.Config) *qrcode.QRService {
	return qrcode.NewQRService(cfg.FrontendURL + "/pledge/payment/")
}

func provideTurnstile(cfg *config.Config) *captcha.Turnstile {
	return captcha.NewTurnstile(cfg.TurnstileSecret)
}

func provideBundle(cfg *config.Config) (*i18n.Bundle, error) {
	return i18n.NewBundle(cfg.DefaultLocale)
}
