package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"github.com/sefazor/crowdfunding-backend/internal/service"
	"github.com/sefazor/crowdfunding-backend/internal/testutil"
	"github.com/sefazor/crowdfunding-backend/pkg/payment"
	"github.com/sefazor/crowdfunding-backend/pkg/qrcode"
	"go.uber.org/zap"
)

var errBoom = errors.New("boom")

type fakeSigner struct {
	mu    sync.Mutex
	calls []payment.SignRequest
	err   error
}

func (f *fakeSigner) Sign(_ context.Context, req payment.SignRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return "", f.err
	}
	return "sig-" + req.OrderID, nil
}

type fakeArchive struct {
	keys   []string
	bodies [][]byte
	err    error
}

func (f *fakeArchive) Upload(_ context.Context, key, contentType string, body io.Reader) error {
	data, _ := io.ReadAll(body)
	f.keys = append(f.keys, key)
	f.bodies = append(f.bodies, data)
	return f.err
}

type fakeNotifier struct {
	emails []string
	err    error
}

func (f *fakeNotifier) SendPledgeSignInNotice(_ context.Context, email, firstName string) error {
	f.emails = append(f.emails, email)
	return f.err
}

type fixture struct {
	store    *testutil.MemoryStore
	signer   *fakeSigner
	archive  *fakeArchive
	notifier *fakeNotifier
	svc      *service.PledgeService

	membershipReward uuid.UUID
	abo              models.Package
	// optA carries the membership reward and allows a reduced price of 800.
	optA models.PackageOption
	// optB has no reward.
	optB  models.PackageOption
	other models.PackageOption
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewMemoryStore()
	rewardID := store.AddReward(models.RewardTypeMembershipType)
	abo := store.AddPackage("ABO",
		models.PackageOption{RewardID: &rewardID, MinAmount: 1, MaxAmount: 5, Price: 1000, UserPrice: true, MinUserPrice: 800},
		models.PackageOption{MinAmount: 1, MaxAmount: 3, Price: 500},
	)
	other := store.AddPackage("DONATE", models.PackageOption{MinAmount: 1, MaxAmount: 1, Price: 0})

	var n int
	aliases := service.NewAliasManagerWithGenerator(func() string {
		n++
		return fmt.Sprintf("alias-%d", n)
	})

	f := &fixture{
		store:            store,
		signer:           &fakeSigner{},
		archive:          &fakeArchive{},
		notifier:         &fakeNotifier{},
		membershipReward: rewardID,
		abo:              abo,
		optA:             abo.Options[0],
		optB:             abo.Options[1],
		other:            other.Options[0],
	}
	f.svc = service.NewPledgeService(
		store,
		f.signer,
		aliases,
		service.NewUserResolver(),
		service.NewReducedPledgeGuard(),
		f.archive,
		f.notifier,
		qrcode.NewQRService("https://example.org/pledge/payment/"),
	)
	return f
}

func anonymous() *service.RequestContext {
	return &service.RequestContext{Logger: zap.NewNop()}
}

func signedIn(user models.User) *service.RequestContext {
	return &service.RequestContext{
		Session: &models.SessionUser{ID: user.ID, Email: user.Email},
		Logger:  zap.NewNop(),
	}
}

func contact(email string) service.ContactInput {
	return service.ContactInput{Email: email, FirstName: "Anna", LastName: "Muster"}
}

// regularInput is the worked example: 3 x A and 1 x B, regular total 3500.
func (f *fixture) regularInput(email string, total int) service.PledgeInput {
	return service.PledgeInput{
		Total: total,
		User:  contact(email),
		Options: []models.PledgeOptionInput{
			{TemplateID: f.optA.ID, Amount: 3, Price: 1000},
			{TemplateID: f.optB.ID, Amount: 1, Price: 500},
		},
	}
}

func (f *fixture) rewardedPledge(userID uuid.UUID) models.Pledge {
	return f.store.AddPledge(models.Pledge{
		UserID:    userID,
		PackageID: f.abo.ID,
		Total:     1000,
		Status:    models.PledgeStatusSuccessful,
		Options:   []models.PledgeOption{{TemplateID: f.optA.ID, Amount: 1, Price: 1000}},
	})
}
