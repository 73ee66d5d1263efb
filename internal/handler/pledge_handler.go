package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/controller"
	"github.com/sefazor/crowdfunding-backend/internal/i18n"
	"github.com/sefazor/crowdfunding-backend/internal/middleware"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"github.com/sefazor/crowdfunding-backend/internal/service"
	"github.com/sefazor/crowdfunding-backend/pkg/utils"
	"go.uber.org/zap"
)

const (
	defaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
)

type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

type PledgeHandler struct {
	pledgeController *controller.PledgeController
	captcha          CaptchaVerifier
	validator        *utils.Validator
}

func NewPledgeHandler(pledgeController *controller.PledgeController, captcha CaptchaVerifier, validator *utils.Validator) *PledgeHandler {
	return &PledgeHandler{
		pledgeController: pledgeController,
		captcha:          captcha,
		validator:        validator,
	}
}

func (h *PledgeHandler) SubmitPledge(c *fiber.Ctx) error {
	rc := middleware.GetRequestContext(c)

	var req models.SubmitPledgeRequest
	if err := c.BodyParser(&req); err != nil {
		return h.invalidRequest(c, rc, err)
	}
	if err := h.validator.Struct(req.Pledge); err != nil {
		return h.invalidRequest(c, rc, err)
	}

	// Signed-in users already passed a challenge at sign-in.
	if rc.Session == nil {
		ok, err := h.captcha.Verify(c.UserContext(), req.CaptchaToken, c.IP())
		if err != nil || !ok {
			rc.Logger.Info("captcha rejected", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(rc.Translator.T(i18n.KeyCaptchaInvalid), i18n.KeyCaptchaInvalid))
		}
	}

	resp, err := h.pledgeController.SubmitPledge(c.UserContext(), rc, req.Pledge)
	if err != nil {
		return respondError(c, rc, err)
	}

	if resp.EmailVerify {
		return c.JSON(models.SuccessResponse(resp, rc.Translator.T(i18n.KeyEmailVerifyRequired)))
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(resp, rc.Translator.T(i18n.KeyPledgeSubmitted)))
}

func (h *PledgeHandler) GetMyPledges(c *fiber.Ctx) error {
	rc := middleware.GetRequestContext(c)

	pledges, err := h.pledgeController.ListMyPledges(c.UserContext(), rc)
	if err != nil {
		return respondError(c, rc, err)
	}

	return c.JSON(models.SuccessResponse(pledges, ""))
}

func (h *PledgeHandler) ResumePayment(c *fiber.Ctx) error {
	rc := middleware.GetRequestContext(c)

	pledgeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, rc, service.ErrPledgeNotFound)
	}

	resp, err := h.pledgeController.ResumePayment(c.UserContext(), rc, pledgeID)
	if err != nil {
		return respondError(c, rc, err)
	}

	return c.JSON(models.SuccessResponse(resp, rc.Translator.T(i18n.KeyPledgePaymentResumed)))
}

func (h *PledgeHandler) GetPaymentQR(c *fiber.Ctx) error {
	rc := middleware.GetRequestContext(c)

	pledgeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, rc, service.ErrPledgeNotFound)
	}

	size := c.QueryInt("size", defaultQRSize)
	size = min(max(size, minQRSize), maxQRSize)

	png, err := h.pledgeController.PaymentQR(c.UserContext(), rc, pledgeID, size)
	if err != nil {
		return respondError(c, rc, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func (h *PledgeHandler) invalidRequest(c *fiber.Ctx, rc *service.RequestContext, err error) error {
	rc.Logger.Info("invalid pledge request", zap.Error(err))
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(rc.Translator.T(i18n.KeyInvalidRequest), i18n.KeyInvalidRequest))
}
