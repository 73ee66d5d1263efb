package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
)

// MinimumTotal is the smallest chargeable total in minor currency units.
const MinimumTotal = 100

type PricingResult struct {
	PackageID    uuid.UUID
	MinTotal     int
	RegularTotal int
	Donation     int
}

// DistinctTemplateIDs returns the referenced template ids in first-seen order.
func DistinctTemplateIDs(inputs []models.PledgeOptionInput) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(inputs))
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if _, ok := seen[in.TemplateID]; ok {
			continue
		}
		seen[in.TemplateID] = struct{}{}
		ids = append(ids, in.TemplateID)
	}
	return ids
}

// ValidatePricing checks the selected options against their catalog templates
// and prices the cart. Submitted per-option prices are kept as-is; only the
// total is checked.
func ValidatePricing(total int, inputs []models.PledgeOptionInput, templates []models.PackageOption) (*PricingResult, error) {
	ids := DistinctTemplateIDs(inputs)
	if len(ids) == 0 || len(templates) < len(ids) {
		return nil, fmt.Errorf("%w: found %d of %d", ErrInvalidTemplateReference, len(templates), len(ids))
	}
	if len(ids) != len(inputs) {
		return nil, fmt.Errorf("%w: %d options reference %d templates", ErrInvalidTemplateReference, len(inputs), len(ids))
	}

	byID := make(map[uuid.UUID]models.PackageOption, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	packageID := templates[0].PackageID
	for _, t := range templates[1:] {
		if t.PackageID != packageID {
			return nil, fmt.Errorf("%w: %s and %s", ErrCrossPackageSelection, packageID, t.PackageID)
		}
	}

	var minSum, regularSum int
	for _, in := range inputs {
		t, ok := byID[in.TemplateID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTemplateReference, in.TemplateID)
		}
		if in.Amount < t.MinAmount || in.Amount > t.MaxAmount {
			return nil, fmt.Errorf("%w: %s amount %d not in [%d, %d]",
				ErrAmountOutOfRange, t.ID, in.Amount, t.MinAmount, t.MaxAmount)
		}
		minSum += in.Amount * t.UnitMinPrice()
		regularSum += in.Amount * t.Price
	}

	result := &PricingResult{
		PackageID:    packageID,
		MinTotal:     max(MinimumTotal, minSum),
		RegularTotal: max(MinimumTotal, regularSum),
	}
	if total < result.MinTotal {
		return nil, fmt.Errorf("%w: %d < %d", ErrTotalBelowMinimum, total, result.MinTotal)
	}
	result.Donation = total - result.RegularTotal

	return result, nil
}
