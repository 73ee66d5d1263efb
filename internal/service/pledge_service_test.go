package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"github.com/sefazor/crowdfunding-backend/internal/service"
	"github.com/sefazor/crowdfunding-backend/pkg/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitPledge_NewAnonymousUser(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.SubmitPledge(context.Background(), anonymous(), f.regularInput("Anna@Example.org ", 3500))
	require.NoError(t, err)
	assert.False(t, result.EmailVerify)
	assert.Equal(t, "alias-1", result.PaymentAlias)
	assert.Equal(t, "sig-"+result.PledgeID.String(), result.PaymentSignature)

	users := f.store.Users()
	require.Len(t, users, 1)
	assert.Equal(t, result.UserID, users[0].ID)
	assert.Equal(t, "anna@example.org", users[0].Email)
	assert.Equal(t, "Anna", users[0].FirstName)

	pledges := f.store.Pledges()
	require.Len(t, pledges, 1)
	pledge := pledges[0]
	assert.Equal(t, result.PledgeID, pledge.ID)
	assert.Equal(t, models.PledgeStatusDraft, pledge.Status)
	assert.Equal(t, f.abo.ID, pledge.PackageID)
	assert.Equal(t, 3500, pledge.Total)
	assert.Equal(t, 0, pledge.Donation)
	require.Len(t, pledge.Options, 2)

	require.Len(t, f.signer.calls, 1)
	assert.Equal(t, payment.SignRequest{
		OrderID: pledge.ID.String(),
		Amount:  3500,
		Alias:   "alias-1",
		UserID:  result.UserID.String(),
	}, f.signer.calls[0])

	assert.Equal(t, 1, f.store.Commits)
	assert.Equal(t, 0, f.store.Rollbacks)
}

func TestSubmitPledge_DonationIsTotalMinusRegular(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SubmitPledge(context.Background(), anonymous(), f.regularInput("anna@example.org", 5000))
	require.NoError(t, err)

	pledges := f.store.Pledges()
	require.Len(t, pledges, 1)
	assert.Equal(t, 1500, pledges[0].Donation)
}

func TestSubmitPledge_ArchivesReceipt(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.SubmitPledge(context.Background(), anonymous(), f.regularInput("anna@example.org", 3500))
	require.NoError(t, err)

	require.Len(t, f.archive.keys, 1)
	assert.Equal(t, "receipts/"+result.UserID.String()+"/"+result.PledgeID.String()+".json", f.archive.keys[0])

	var receipt map[string]interface{}
	require.NoError(t, json.Unmarshal(f.archive.bodies[0], &receipt))
	assert.Equal(t, result.PledgeID.String(), receipt["pledgeId"])
	assert.EqualValues(t, 3500, receipt["total"])
}

func TestSubmitPledge_ArchiveFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.archive.err = errBoom

	result, err := f.svc.SubmitPledge(context.Background(), anonymous(), f.regularInput("anna@example.org", 3500))
	require.NoError(t, err)
	assert.NotEmpty(t, result.PaymentSignature)
}

func TestSubmitPledge_ExistingEmailWithPledgesRequiresVerification(t *testing.T) {
	f := newFixture(t)
	user := f.store.AddUser(models.User{Email: "anna@example.org", FirstName: "Anna", LastName: "Alt"})
	f.rewardedPledge(user.ID)

	result, err := f.svc.SubmitPledge(context.Background(), anonymous(), f.regularInput("ANNA@example.org", 3500))
	require.NoError(t, err)
	assert.True(t, result.EmailVerify)
	assert.Equal(t, uuid.Nil, result.PledgeID)
	assert.Empty(t, result.PaymentSignature)

	assert.Len(t, f.store.Pledges(), 1)
	assert.Equal(t, "Alt", f.store.Users()[0].LastName)
	assert.Empty(t, f.signer.calls)
	assert.Equal(t, 1, f.store.Rollbacks)
	assert.Equal(t, []string{"anna@example.org"}, f.notifier.emails)
}

func TestSubmitPledge_ExistingEmailWithoutPledgesIsAdopted(t *testing.T) {
	f := newFixture(t)
	user := f.store.AddUser(models.User{Email: "anna@example.org", FirstName: "Anne", LastName: "Muster"})

	result, err := f.svc.SubmitPledge(context.Background(), anonymous(), f.regularInput("anna@example.org", 3500))
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.UserID)

	users := f.store.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "Anna", users[0].FirstName)
	// Anonymous users never reuse a stored alias.
	assert.Equal(t, "alias-1", result.PaymentAlias)
}

func TestSubmitPledge_SessionEmailMismatch(t *testing.T) {
	f := newFixture(t)
	user := f.store.AddUser(models.User{Email: "anna@example.org", FirstName: "Anna", LastName: "Muster"})

	_, err := f.svc.SubmitPledge(context.Background(), signedIn(user), f.regularInput("other@example.org", 3500))
	assert.ErrorIs(t, err, service.ErrIdentityMismatch)
	assert.Empty(t, f.store.Pledges())
	assert.Equal(t, 1, f.store.Rollbacks)
}

func TestSubmitPledge_SessionUserReusesAlias(t *testing.T) {
	f := newFixture(t)
	user := f.store.AddUser(models.User{Email: "anna@example.org", FirstName: "Anna", LastName: "Muster"})
	f.store.AddPaymentSource(user.ID, models.PaymentMethodPostFinanceCard, "stored-alias")

	result, err := f.svc.SubmitPledge(context.Background(), signedIn(user), f.regularInput("Anna@example.org", 3500))
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.UserID)
	assert.Equal(t, "stored-alias", result.PaymentAlias)
	assert.Equal(t, "stored-alias", f.signer.calls[0].Alias)
}

func TestSubmitPledge_SessionUserWithoutSourceGetsNewAlias(t *testing.T) {
	f := newFixture(t)
	user := f.store.AddUser(models.User{Email: "anna@example.org", FirstName: "Anna", LastName: "Muster"})
	f.rewardedPledge(user.ID)

	result, err := f.svc.SubmitPledge(context.Background(), signedIn(user), f.regularInput("anna@example.org", 3500))
	require.NoError(t, err)
	assert.Equal(t, "alias-1", result.PaymentAlias)
	assert.Len(t, f.store.Pledges(), 2)
}

func TestSubmitPledge_ReducedRequiresReason(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SubmitPledge(context.Background(), anonymous(), f.regularInput("anna@example.org", 3000))
	assert.ErrorIs(t, err, service.ErrMissingReductionReason)
	assert.Empty(t, f.store.Pledges())
	assert.Empty(t, f.store.Users())
}

func TestSubmitPledge_ReducedWithReason(t *testing.T) {
	f := newFixture(t)
	input := f.regularInput("anna@example.org", 3000)
	input.Reason = "  Studentin  "

	_, err := f.svc.SubmitPledge(context.Background(), anonymous(), input)
	require.NoError(t, err)

	pledges := f.store.Pledges()
	require.Len(t, pledges, 1)
	assert.Equal(t, -500, pledges[0].Donation)
	assert.Equal(t, "Studentin", pledges[0].Reason)
}

func TestSubmitPledge_SecondReducedPledgeAfterReward(t *testing.T) {
	f := newFixture(t)
	user := f.store.AddUser(models.User{Email: "anna@example.org", FirstName: "Anna", LastName: "Muster"})
	f.rewardedPledge(user.ID)

	input := f.regularInput("anna@example.org", 3000)
	input.Reason = "Studentin"

	_, err := f.svc.SubmitPledge(context.Background(), signedIn(user), input)
	assert.ErrorIs(t, err, service.ErrReducedPledgeAlreadyUsed)
	assert.Equal(t, "api/membership/reduced/alreadyHas", service.MessageKey(err))
	assert.Len(t, f.store.Pledges(), 1)
}

func TestSubmitPledge_ReducedAllowedAfterDonationOnlyPledge(t *testing.T) {
	f := newFixture(t)
	user := f.store.AddUser(models.User{Email: "anna@example.org", FirstName: "Anna", LastName: "Muster"})
	f.store.AddPledge(models.Pledge{
		UserID:    user.ID,
		PackageID: f.abo.ID,
		Total:     500,
		Options:   []models.PledgeOption{{TemplateID: f.optB.ID, Amount: 1, Price: 500}},
	})

	input := f.regularInput("anna@example.org", 3000)
	input.Reason = "Studentin"

	_, err := f.svc.SubmitPledge(context.Background(), signedIn(user), input)
	require.NoError(t, err)
	assert.Len(t, f.store.Pledges(), 2)
}

func TestSubmitPledge_RemovedRewardCountsAsUnredeemed(t *testing.T) {
	f := newFixture(t)
	user := f.store.AddUser(models.User{Email: "anna@example.org", FirstName: "Anna", LastName: "Muster"})
	f.rewardedPledge(user.ID)
	f.store.RemoveReward(f.membershipReward)

	input := f.regularInput("anna@example.org", 3000)
	input.Reason = "Studentin"

	_, err := f.svc.SubmitPledge(context.Background(), signedIn(user), input)
	assert.NoError(t, err)
}

func TestSubmitPledge_ValidationFailuresRollBack(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		options []models.PledgeOptionInput
		total   int
		want    error
	}{
		{
			name:    "unknown template",
			options: []models.PledgeOptionInput{{TemplateID: uuid.New(), Amount: 1}},
			total:   1000,
			want:    service.ErrInvalidTemplateReference,
		},
		{
			name: "repeated template",
			options: []models.PledgeOptionInput{
				{TemplateID: f.optB.ID, Amount: 1, Price: 500},
				{TemplateID: f.optB.ID, Amount: 1, Price: 500},
			},
			total: 1000,
			want:  service.ErrInvalidTemplateReference,
		},
		{
			name: "cross package",
			options: []models.PledgeOptionInput{
				{TemplateID: f.optA.ID, Amount: 1, Price: 1000},
				{TemplateID: f.other.ID, Amount: 1},
			},
			total: 1000,
			want:  service.ErrCrossPackageSelection,
		},
		{
			name:    "amount above max",
			options: []models.PledgeOptionInput{{TemplateID: f.optB.ID, Amount: 4, Price: 500}},
			total:   2000,
			want:    service.ErrAmountOutOfRange,
		},
		{
			name:    "total below minimum",
			options: []models.PledgeOptionInput{{TemplateID: f.optA.ID, Amount: 2, Price: 1000}},
			total:   1599,
			want:    service.ErrTotalBelowMinimum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := service.PledgeInput{Total: tt.total, User: contact("anna@example.org"), Options: tt.options}
			_, err := f.svc.SubmitPledge(context.Background(), anonymous(), input)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, service.IsValidationError(err))
			assert.Equal(t, "api/unexpected", service.MessageKey(err))
		})
	}

	assert.Empty(t, f.store.Pledges())
	assert.Empty(t, f.store.Users())
	assert.Equal(t, len(tests), f.store.Rollbacks)
}

func TestSubmitPledge_FailureAfterPledgeInsertRollsBackEverything(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn("CreatePledgeOptions", errBoom)

	_, err := f.svc.SubmitPledge(context.Background(), anonymous(), f.regularInput("anna@example.org", 3500))
	assert.ErrorIs(t, err, errBoom)

	assert.Empty(t, f.store.Pledges())
	assert.Zero(t, f.store.PledgeOptionCount())
	assert.Empty(t, f.store.Users())
	assert.Equal(t, 0, f.store.Commits)
	assert.Equal(t, 1, f.store.Rollbacks)
	assert.Empty(t, f.signer.calls)
}

func TestSubmitPledge_RollbackFailureIsReturned(t *testing.T) {
	f := newFixture(t)
	rollbackErr := context.DeadlineExceeded
	f.store.RollbackErr = rollbackErr

	_, err := f.svc.SubmitPledge(context.Background(), anonymous(), f.regularInput("anna@example.org", 1))
	assert.ErrorIs(t, err, rollbackErr)
	assert.ErrorIs(t, err, service.ErrTotalBelowMinimum)
}

func TestSubmitPledge_SignatureFailureKeepsDraft(t *testing.T) {
	f := newFixture(t)
	f.signer.err = errBoom

	_, err := f.svc.SubmitPledge(context.Background(), anonymous(), f.regularInput("anna@example.org", 3500))
	assert.ErrorIs(t, err, errBoom)

	pledges := f.store.Pledges()
	require.Len(t, pledges, 1)
	assert.Equal(t, models.PledgeStatusDraft, pledges[0].Status)
	assert.Len(t, pledges[0].Options, 2)
	assert.Empty(t, f.archive.keys)
}

func TestSubmitPledge_BeginFailure(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn("Begin", errBoom)

	_, err := f.svc.SubmitPledge(context.Background(), anonymous(), f.regularInput("anna@example.org", 3500))
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, f.store.Rollbacks)
}

func TestResumePayment(t *testing.T) {
	f := newFixture(t)
	owner := f.store.AddUser(models.User{Email: "anna@example.org"})
	stranger := f.store.AddUser(models.User{Email: "max@example.org"})
	f.store.AddPaymentSource(owner.ID, models.PaymentMethodPostFinanceCard, "stored-alias")

	draft := f.store.AddPledge(models.Pledge{UserID: owner.ID, PackageID: f.abo.ID, Total: 3500})
	paid := f.store.AddPledge(models.Pledge{UserID: owner.ID, PackageID: f.abo.ID, Total: 3500, Status: models.PledgeStatusSuccessful})

	t.Run("owner", func(t *testing.T) {
		result, err := f.svc.ResumePayment(context.Background(), signedIn(owner), draft.ID)
		require.NoError(t, err)
		assert.Equal(t, draft.ID, result.PledgeID)
		assert.Equal(t, "stored-alias", result.PaymentAlias)
		assert.Equal(t, "sig-"+draft.ID.String(), result.PaymentSignature)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := f.svc.ResumePayment(context.Background(), anonymous(), draft.ID)
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("not the owner", func(t *testing.T) {
		_, err := f.svc.ResumePayment(context.Background(), signedIn(stranger), draft.ID)
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("already paid", func(t *testing.T) {
		_, err := f.svc.ResumePayment(context.Background(), signedIn(owner), paid.ID)
		assert.ErrorIs(t, err, service.ErrPledgeAlreadyPaid)
		assert.Equal(t, "api/pledge/alreadyPaid", service.MessageKey(err))
	})

	t.Run("unknown pledge", func(t *testing.T) {
		_, err := f.svc.ResumePayment(context.Background(), signedIn(owner), uuid.New())
		assert.ErrorIs(t, err, service.ErrPledgeNotFound)
	})
}

func TestPaymentQR(t *testing.T) {
	f := newFixture(t)
	owner := f.store.AddUser(models.User{Email: "anna@example.org"})
	draft := f.store.AddPledge(models.Pledge{UserID: owner.ID, PackageID: f.abo.ID, Total: 3500})

	png, err := f.svc.PaymentQR(context.Background(), signedIn(owner), draft.ID, 256)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestListMyPledges(t *testing.T) {
	f := newFixture(t)
	owner := f.store.AddUser(models.User{Email: "anna@example.org"})
	first := f.store.AddPledge(models.Pledge{UserID: owner.ID, PackageID: f.abo.ID, Total: 1000})
	second := f.rewardedPledge(owner.ID)
	f.store.AddPledge(models.Pledge{UserID: uuid.New(), PackageID: f.abo.ID, Total: 1000})

	pledges, err := f.svc.ListMyPledges(context.Background(), signedIn(owner))
	require.NoError(t, err)
	require.Len(t, pledges, 2)
	assert.Equal(t, second.ID, pledges[0].ID)
	assert.Equal(t, first.ID, pledges[1].ID)
	assert.Len(t, pledges[0].Options, 1)

	_, err = f.svc.ListMyPledges(context.Background(), anonymous())
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}
