package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"github.com/sefazor/crowdfunding-backend/internal/repository"
	"github.com/sefazor/crowdfunding-backend/pkg/payment"
	"github.com/sefazor/crowdfunding-backend/pkg/qrcode"
	"go.uber.org/zap"
)

// ReceiptArchive stores a copy of every committed pledge.
type ReceiptArchive interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
}

// SignInNotifier tells the owner of an existing account to sign in before pledging.
type SignInNotifier interface {
	SendPledgeSignInNotice(ctx context.Context, email, firstName string) error
}

type PledgeInput struct {
	Total   int
	Reason  string
	User    ContactInput
	Options []models.PledgeOptionInput
}

type SubmitResult struct {
	PledgeID         uuid.UUID
	UserID           uuid.UUID
	PaymentSignature string
	PaymentAlias     string
	EmailVerify      bool
}

type PledgeService struct {
	store    repository.Store
	signer   payment.Signer
	aliases  *AliasManager
	users    *UserResolver
	guard    *ReducedPledgeGuard
	archive  ReceiptArchive
	notifier SignInNotifier
	qr       *qrcode.QRService
}

// NewPledgeService wires the submission workflow. archive and notifier may be nil.
func NewPledgeService(
	store repository.Store,
	signer payment.Signer,
	aliases *AliasManager,
	users *UserResolver,
	guard *ReducedPledgeGuard,
	archive ReceiptArchive,
	notifier SignInNotifier,
	qr *qrcode.QRService,
) *PledgeService {
	return &PledgeService{
		store:    store,
		signer:   signer,
		aliases:  aliases,
		users:    users,
		guard:    guard,
		archive:  archive,
		notifier: notifier,
		qr:       qr,
	}
}

// SubmitPledge validates and stores a pledge in one transaction and signs
// the committed order for payment.
func (s *PledgeService) SubmitPledge(ctx context.Context, rc *RequestContext, input PledgeInput) (*SubmitResult, error) {
	log := rc.logger().With(zap.String("op", "submitPledge"))

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}

	pricing, err := s.price(tx, input)
	if err != nil {
		return nil, s.rollback(tx, log, err)
	}

	resolution, err := s.users.Resolve(tx, rc.session(), input.User)
	if err != nil {
		return nil, s.rollback(tx, log, err)
	}
	if resolution.EmailVerificationRequired {
		if err := s.rollback(tx, log, nil); err != nil {
			return nil, err
		}
		s.notifySignIn(ctx, log, input.User)
		return &SubmitResult{EmailVerify: true}, nil
	}
	user := resolution.User
	log = log.With(zap.String("userId", user.ID.String()))

	if err := s.users.SyncProfile(tx, user, input.User); err != nil {
		return nil, s.rollback(tx, log, err)
	}

	alias, err := s.aliases.Resolve(tx, user.ID, resolution.FromSession)
	if err != nil {
		return nil, s.rollback(tx, log, err)
	}

	if pricing.Donation < 0 {
		if err := s.guard.Check(tx, user.ID); err != nil {
			return nil, s.rollback(tx, log, err)
		}
	}

	pledge := &models.Pledge{
		UserID:    user.ID,
		PackageID: pricing.PackageID,
		Total:     input.Total,
		Donation:  pricing.Donation,
		Reason:    strings.TrimSpace(input.Reason),
		Status:    models.PledgeStatusDraft,
	}
	if err := tx.CreatePledge(pledge); err != nil {
		return nil, s.rollback(tx, log, fmt.Errorf("create pledge: %w", err))
	}

	options := make([]models.PledgeOption, 0, len(input.Options))
	for _, in := range input.Options {
		options = append(options, models.PledgeOption{
			PledgeID:   pledge.ID,
			TemplateID: in.TemplateID,
			Amount:     in.Amount,
			Price:      in.Price,
		})
	}
	if err := tx.CreatePledgeOptions(options); err != nil {
		return nil, s.rollback(tx, log, fmt.Errorf("create pledge options: %w", err))
	}
	pledge.Options = options

	if err := tx.Commit(); err != nil {
		log.Error("pledge commit failed", zap.Error(err))
		return nil, fmt.Errorf("commit pledge: %w", err)
	}
	log.Info("pledge committed",
		zap.String("pledgeId", pledge.ID.String()),
		zap.Int("total", pledge.Total),
		zap.Int("donation", pledge.Donation),
		zap.Bool("userCreated", resolution.Created),
	)

	signature, err := s.signer.Sign(ctx, payment.SignRequest{
		OrderID: pledge.ID.String(),
		Amount:  pledge.Total,
		Alias:   alias,
		UserID:  user.ID.String(),
	})
	if err != nil {
		log.Error("payment signature failed, pledge stays in draft",
			zap.String("pledgeId", pledge.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("sign pledge %s: %w", pledge.ID, err)
	}

	s.archiveReceipt(ctx, log, pledge)

	return &SubmitResult{
		PledgeID:         pledge.ID,
		UserID:           user.ID,
		PaymentSignature: signature,
		PaymentAlias:     alias,
	}, nil
}

func (s *PledgeService) price(tx repository.Tx, input PledgeInput) (*PricingResult, error) {
	templates, err := tx.FindPackageOptions(DistinctTemplateIDs(input.Options))
	if err != nil {
		return nil, fmt.Errorf("load package options: %w", err)
	}

	pricing, err := ValidatePricing(input.Total, input.Options, templates)
	if err != nil {
		return nil, err
	}
	if pricing.Donation < 0 && strings.TrimSpace(input.Reason) == "" {
		return nil, ErrMissingReductionReason
	}
	return pricing, nil
}

// rollback ends tx and returns cause. A failing rollback is returned
// together with cause.
func (s *PledgeService) rollback(tx repository.Tx, log *zap.Logger, cause error) error {
	if cause != nil {
		log.Warn("rolling back pledge", zap.Error(cause))
	}
	if err := tx.Rollback(); err != nil {
		log.Error("pledge rollback failed", zap.Error(err), zap.NamedError("cause", cause))
		return errors.Join(fmt.Errorf("rollback pledge: %w", err), cause)
	}
	return cause
}

func (s *PledgeService) notifySignIn(ctx context.Context, log *zap.Logger, contact ContactInput) {
	if s.notifier == nil {
		return
	}
	email := models.NormalizeEmail(contact.Email)
	if err := s.notifier.SendPledgeSignInNotice(ctx, email, contact.FirstName); err != nil {
		log.Warn("sign-in notice not sent", zap.String("email", email), zap.Error(err))
	}
}

type pledgeReceipt struct {
	PledgeID  uuid.UUID             `json:"pledgeId"`
	UserID    uuid.UUID             `json:"userId"`
	PackageID uuid.UUID             `json:"packageId"`
	Total     int                   `json:"total"`
	Donation  int                   `json:"donation"`
	Reason    string                `json:"reason,omitempty"`
	Options   []models.PledgeOption `json:"options"`
	CreatedAt time.Time             `json:"createdAt"`
}

// ReceiptKey is the object key the receipt of a pledge is archived under.
func ReceiptKey(pledge *models.Pledge) string {
	return fmt.Sprintf("receipts/%s/%s.json", pledge.UserID, pledge.ID)
}

func (s *PledgeService) archiveReceipt(ctx context.Context, log *zap.Logger, pledge *models.Pledge) {
	if s.archive == nil {
		return
	}

	body, err := json.Marshal(pledgeReceipt{
		PledgeID:  pledge.ID,
		UserID:    pledge.UserID,
		PackageID: pledge.PackageID,
		Total:     pledge.Total,
		Donation:  pledge.Donation,
		Reason:    pledge.Reason,
		Options:   pledge.Options,
		CreatedAt: pledge.CreatedAt,
	})
	if err != nil {
		log.Warn("encode pledge receipt", zap.Error(err))
		return
	}

	if err := s.archive.Upload(ctx, ReceiptKey(pledge), "application/json", bytes.NewReader(body)); err != nil {
		log.Warn("archive pledge receipt", zap.String("pledgeId", pledge.ID.String()), zap.Error(err))
	}
}

// ResumePayment signs a draft pledge of the session user again so its
// payment can be retried.
func (s *PledgeService) ResumePayment(ctx context.Context, rc *RequestContext, pledgeID uuid.UUID) (*SubmitResult, error) {
	pledge, err := s.PayablePledge(ctx, rc, pledgeID)
	if err != nil {
		return nil, err
	}

	reader := s.store.Read(ctx)
	alias, err := s.aliases.Resolve(reader, pledge.UserID, true)
	if err != nil {
		return nil, err
	}

	signature, err := s.signer.Sign(ctx, payment.SignRequest{
		OrderID: pledge.ID.String(),
		Amount:  pledge.Total,
		Alias:   alias,
		UserID:  pledge.UserID.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("sign pledge %s: %w", pledge.ID, err)
	}

	rc.logger().Info("pledge payment resumed", zap.String("pledgeId", pledge.ID.String()))
	return &SubmitResult{
		PledgeID:         pledge.ID,
		UserID:           pledge.UserID,
		PaymentSignature: signature,
		PaymentAlias:     alias,
	}, nil
}

// PayablePledge loads a pledge of the session user that still awaits payment.
func (s *PledgeService) PayablePledge(ctx context.Context, rc *RequestContext, pledgeID uuid.UUID) (*models.Pledge, error) {
	session := rc.session()
	if session == nil {
		return nil, ErrUnauthorized
	}

	pledge, err := s.store.Read(ctx).GetPledge(pledgeID)
	if err != nil {
		return nil, notFound(err, ErrPledgeNotFound)
	}
	if pledge.UserID != session.ID {
		return nil, ErrUnauthorized
	}
	if !pledge.Status.Payable() {
		return nil, ErrPledgeAlreadyPaid
	}
	return pledge, nil
}

// PaymentQR renders a PNG QR code linking to the payment page of a payable pledge.
func (s *PledgeService) PaymentQR(ctx context.Context, rc *RequestContext, pledgeID uuid.UUID, size int) ([]byte, error) {
	pledge, err := s.PayablePledge(ctx, rc, pledgeID)
	if err != nil {
		return nil, err
	}
	return s.qr.GenerateQRCode(pledge.ID.String(), size)
}

func (s *PledgeService) ListMyPledges(ctx context.Context, rc *RequestContext) ([]models.Pledge, error) {
	session := rc.session()
	if session == nil {
		return nil, ErrUnauthorized
	}
	return s.store.Read(ctx).ListPledgesByUser(session.ID)
}
