package controller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"github.com/sefazor/crowdfunding-backend/internal/service"
	"github.com/sefazor/crowdfunding-backend/pkg/utils"
)

type PledgeController struct {
	pledgeService *service.PledgeService
}

func NewPledgeController(pledgeService *service.PledgeService) *PledgeController {
	return &PledgeController{
		pledgeService: pledgeService,
	}
}

func (c *PledgeController) SubmitPledge(ctx context.Context, rc *service.RequestContext, req models.PledgeRequest) (*models.SubmitPledgeResponse, error) {
	input, err := toPledgeInput(req)
	if err != nil {
		return nil, err
	}

	result, err := c.pledgeService.SubmitPledge(ctx, rc, input)
	if err != nil {
		return nil, err
	}
	return toSubmitResponse(result), nil
}

func (c *PledgeController) ResumePayment(ctx context.Context, rc *service.RequestContext, pledgeID uuid.UUID) (*models.SubmitPledgeResponse, error) {
	result, err := c.pledgeService.ResumePayment(ctx, rc, pledgeID)
	if err != nil {
		return nil, err
	}
	return toSubmitResponse(result), nil
}

func (c *PledgeController) PaymentQR(ctx context.Context, rc *service.RequestContext, pledgeID uuid.UUID, size int) ([]byte, error) {
	return c.pledgeService.PaymentQR(ctx, rc, pledgeID, size)
}

func (c *PledgeController) ListMyPledges(ctx context.Context, rc *service.RequestContext) ([]models.Pledge, error) {
	return c.pledgeService.ListMyPledges(ctx, rc)
}

// toPledgeInput converts an already validated request into workflow input.
func toPledgeInput(req models.PledgeRequest) (service.PledgeInput, error) {
	input := service.PledgeInput{
		Total:  req.Total,
		Reason: req.Reason,
		User: service.ContactInput{
			Email:     req.User.Email,
			FirstName: req.User.FirstName,
			LastName:  req.User.LastName,
		},
		Options: make([]models.PledgeOptionInput, 0, len(req.Options)),
	}

	if birthday := strings.TrimSpace(req.User.Birthday); birthday != "" {
		date, err := time.Parse(utils.BirthdayLayout, birthday)
		if err != nil {
			return service.PledgeInput{}, fmt.Errorf("%w: birthday %q", service.ErrInvalidInput, birthday)
		}
		input.User.Birthday = &date
	}

	for _, opt := range req.Options {
		templateID, err := uuid.Parse(opt.TemplateID)
		if err != nil {
			return service.PledgeInput{}, fmt.Errorf("%w: template id %q", service.ErrInvalidInput, opt.TemplateID)
		}
		input.Options = append(input.Options, models.PledgeOptionInput{
			TemplateID: templateID,
			Amount:     opt.Amount,
			Price:      opt.Price,
		})
	}

	return input, nil
}

func toSubmitResponse(result *service.SubmitResult) *models.SubmitPledgeResponse {
	if result.EmailVerify {
		return &models.SubmitPledgeResponse{EmailVerify: true}
	}
	pledgeID, userID := result.PledgeID, result.UserID
	return &models.SubmitPledgeResponse{
		PledgeID:         &pledgeID,
		UserID:           &userID,
		PaymentSignature: result.PaymentSignature,
		PaymentAlias:     result.PaymentAlias,
	}
}
