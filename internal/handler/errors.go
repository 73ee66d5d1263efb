package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"github.com/sefazor/crowdfunding-backend/internal/service"
	"go.uber.org/zap"
)

func statusFor(err error) int {
	switch {
	case service.IsValidationError(err),
		errors.Is(err, service.ErrMissingReductionReason),
		errors.Is(err, service.ErrReducedPledgeAlreadyUsed),
		errors.Is(err, service.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrIdentityMismatch):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrPledgeNotFound), errors.Is(err, service.ErrPackageNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrPledgeAlreadyPaid):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the translated message for err. Details stay in the log.
func respondError(c *fiber.Ctx, rc *service.RequestContext, err error) error {
	status := statusFor(err)
	key := service.MessageKey(err)

	if status >= fiber.StatusInternalServerError {
		rc.Logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	} else {
		rc.Logger.Info("request rejected", zap.String("path", c.Path()), zap.Int("status", status), zap.Error(err))
	}

	return c.Status(status).JSON(models.ErrorResponse(rc.Translator.T(key), key))
}
