package service

import (
	"fmt"

	"github.com/google/uuid"
)

type PledgeCounter interface {
	CountPledgesByUser(userID uuid.UUID) (int64, error)
	CountRewardedPledgesByUser(userID uuid.UUID) (int64, error)
}

// ReducedPledgeGuard allows a reduced pledge only to users without a
// reward-bearing pledge.
type ReducedPledgeGuard struct{}

func NewReducedPledgeGuard() *ReducedPledgeGuard {
	return &ReducedPledgeGuard{}
}

func (g *ReducedPledgeGuard) Check(counter PledgeCounter, userID uuid.UUID) error {
	pledges, err := counter.CountPledgesByUser(userID)
	if err != nil {
		return fmt.Errorf("count pledges of %s: %w", userID, err)
	}
	if pledges == 0 {
		return nil
	}

	rewarded, err := counter.CountRewardedPledgesByUser(userID)
	if err != nil {
		return fmt.Errorf("count rewarded pledges of %s: %w", userID, err)
	}
	if rewarded > 0 {
		return ErrReducedPledgeAlreadyUsed
	}
	return nil
}
