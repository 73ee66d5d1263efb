package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sefazor/crowdfunding-backend/internal/config"
	"github.com/sefazor/crowdfunding-backend/internal/i18n"
	"github.com/sefazor/crowdfunding-backend/internal/middleware"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"go.uber.org/zap"
)

func NewFiberApp(
	cfg *config.Config,
	logger *zap.Logger,
	translators middleware.TranslatorSource,
	pledgeHandler *PledgeHandler,
	packageHandler *PackageHandler,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			rc := middleware.GetRequestContext(c)
			if e, ok := err.(*fiber.Error); ok && e.Code < fiber.StatusInternalServerError {
				return c.Status(e.Code).JSON(models.ErrorResponse(rc.Translator.T(i18n.KeyInvalidRequest), i18n.KeyInvalidRequest))
			}
			rc.Logger.Error("unhandled error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(rc.Translator.T(i18n.KeyUnexpected), i18n.KeyUnexpected))
		},
	})

	app.Use(requestid.New())
	// fiber refuses credentials for wildcard origins
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Accept-Language, Authorization",
		AllowMethods:     "GET, POST",
		AllowCredentials: !cfg.WildcardOrigins(),
	}))
	if cfg.Env != "test" {
		app.Use(fiberlogger.New())
	}
	app.Use(middleware.RequestContext(translators, logger))
	app.Use(middleware.OptionalAuth(cfg.JWTSecret))

	api := app.Group("/api")

	// Public catalog
	api.Get("/packages", packageHandler.GetAllPackages)
	api.Get("/packages/:id", packageHandler.GetPackageByID)

	// Pledge submission works with and without a session
	api.Post("/pledges", limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}), pledgeHandler.SubmitPledge)

	// Protected routes
	requireAuth := middleware.RequireAuth()
	api.Get("/pledges", requireAuth, pledgeHandler.GetMyPledges)
	api.Get("/pledges/:id/payment", requireAuth, pledgeHandler.ResumePayment)
	api.Get("/pledges/:id/payment/qr", requireAuth, pledgeHandler.GetPaymentQR)

	return app
}
