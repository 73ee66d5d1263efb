package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"github.com/sefazor/crowdfunding-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func template(packageID uuid.UUID, min, max, price int) models.PackageOption {
	return models.PackageOption{
		ID:        uuid.New(),
		PackageID: packageID,
		MinAmount: min,
		MaxAmount: max,
		Price:     price,
	}
}

func TestValidatePricing_WorkedExample(t *testing.T) {
	packageID := uuid.New()
	a := template(packageID, 1, 5, 1000)
	b := template(packageID, 1, 3, 500)
	inputs := []models.PledgeOptionInput{
		{TemplateID: a.ID, Amount: 3, Price: 1000},
		{TemplateID: b.ID, Amount: 1, Price: 500},
	}

	result, err := service.ValidatePricing(3500, inputs, []models.PackageOption{a, b})
	require.NoError(t, err)
	assert.Equal(t, packageID, result.PackageID)
	assert.Equal(t, 3500, result.MinTotal)
	assert.Equal(t, 3500, result.RegularTotal)
	assert.Equal(t, 0, result.Donation)

	a.UserPrice = true
	a.MinUserPrice = 800
	result, err = service.ValidatePricing(3000, inputs, []models.PackageOption{a, b})
	require.NoError(t, err)
	assert.Equal(t, 2900, result.MinTotal)
	assert.Equal(t, 3500, result.RegularTotal)
	assert.Equal(t, -500, result.Donation)
}

func TestValidatePricing_AmountBoundsAreInclusive(t *testing.T) {
	packageID := uuid.New()
	a := template(packageID, 2, 4, 1000)

	tests := []struct {
		amount  int
		wantErr bool
	}{
		{amount: 1, wantErr: true},
		{amount: 2},
		{amount: 4},
		{amount: 5, wantErr: true},
	}

	for _, tt := range tests {
		inputs := []models.PledgeOptionInput{{TemplateID: a.ID, Amount: tt.amount, Price: 1000}}
		_, err := service.ValidatePricing(tt.amount*1000, inputs, []models.PackageOption{a})
		if tt.wantErr {
			assert.ErrorIs(t, err, service.ErrAmountOutOfRange, "amount %d", tt.amount)
		} else {
			assert.NoError(t, err, "amount %d", tt.amount)
		}
	}
}

func TestValidatePricing_CrossPackageSelection(t *testing.T) {
	a := template(uuid.New(), 0, 10, 1000)
	b := template(uuid.New(), 0, 10, 500)

	for _, amounts := range [][2]int{{0, 0}, {1, 1}, {10, 10}} {
		inputs := []models.PledgeOptionInput{
			{TemplateID: a.ID, Amount: amounts[0]},
			{TemplateID: b.ID, Amount: amounts[1]},
		}
		_, err := service.ValidatePricing(1_000_000, inputs, []models.PackageOption{a, b})
		assert.ErrorIs(t, err, service.ErrCrossPackageSelection)
	}
}

func TestValidatePricing_InvalidTemplateReference(t *testing.T) {
	a := template(uuid.New(), 1, 1, 1000)

	inputs := []models.PledgeOptionInput{
		{TemplateID: a.ID, Amount: 1},
		{TemplateID: uuid.New(), Amount: 1},
	}
	_, err := service.ValidatePricing(1000, inputs, []models.PackageOption{a})
	assert.ErrorIs(t, err, service.ErrInvalidTemplateReference)

	_, err = service.ValidatePricing(1000, nil, nil)
	assert.ErrorIs(t, err, service.ErrInvalidTemplateReference)
}

func TestValidatePricing_RepeatedTemplate(t *testing.T) {
	a := template(uuid.New(), 1, 5, 1000)
	inputs := []models.PledgeOptionInput{
		{TemplateID: a.ID, Amount: 1, Price: 1000},
		{TemplateID: a.ID, Amount: 2, Price: 1000},
	}

	_, err := service.ValidatePricing(3000, inputs, []models.PackageOption{a})
	assert.ErrorIs(t, err, service.ErrInvalidTemplateReference)
}

func TestValidatePricing_TotalFloor(t *testing.T) {
	donation := template(uuid.New(), 1, 1, 0)
	inputs := []models.PledgeOptionInput{{TemplateID: donation.ID, Amount: 1}}

	_, err := service.ValidatePricing(99, inputs, []models.PackageOption{donation})
	assert.ErrorIs(t, err, service.ErrTotalBelowMinimum)

	result, err := service.ValidatePricing(100, inputs, []models.PackageOption{donation})
	require.NoError(t, err)
	assert.Equal(t, service.MinimumTotal, result.MinTotal)
	assert.Equal(t, service.MinimumTotal, result.RegularTotal)
	assert.Equal(t, 0, result.Donation)

	result, err = service.ValidatePricing(5000, inputs, []models.PackageOption{donation})
	require.NoError(t, err)
	assert.Equal(t, 4900, result.Donation)
}

func TestValidatePricing_TotalBelowMinimum(t *testing.T) {
	a := template(uuid.New(), 1, 5, 1000)
	inputs := []models.PledgeOptionInput{{TemplateID: a.ID, Amount: 2, Price: 1000}}

	_, err := service.ValidatePricing(1999, inputs, []models.PackageOption{a})
	assert.ErrorIs(t, err, service.ErrTotalBelowMinimum)
}

func TestValidatePricing_SubmittedPriceIsNotChecked(t *testing.T) {
	a := template(uuid.New(), 1, 1, 1000)
	inputs := []models.PledgeOptionInput{{TemplateID: a.ID, Amount: 1, Price: 1}}

	result, err := service.ValidatePricing(1000, inputs, []models.PackageOption{a})
	require.NoError(t, err)
	assert.Equal(t, 1000, result.RegularTotal)
}

func TestDistinctTemplateIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ids := service.DistinctTemplateIDs([]models.PledgeOptionInput{
		{TemplateID: a}, {TemplateID: b}, {TemplateID: a},
	})
	assert.Equal(t, []uuid.UUID{a, b}, ids)
}
