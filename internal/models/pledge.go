package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PledgeStatus string

const (
	PledgeStatusDraft             PledgeStatus = "DRAFT"
	PledgeStatusWaitingForPayment PledgeStatus = "WAITING_FOR_PAYMENT"
	PledgeStatusPaidInvestigate   PledgeStatus = "PAID_INVESTIGATE"
	PledgeStatusSuccessful        PledgeStatus = "SUCCESSFUL"
	PledgeStatusCancelled         PledgeStatus = "CANCELLED"
)

// Payable reports whether a payment may still be started for the pledge.
func (s PledgeStatus) Payable() bool {
	return s == PledgeStatusDraft || s == PledgeStatusWaitingForPayment
}

type Pledge struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index"`
	PackageID uuid.UUID      `json:"packageId" gorm:"type:uuid;not null;index"`
	Total     int            `json:"total" gorm:"not null"`
	Donation  int            `json:"donation" gorm:"not null;default:0"`
	Reason    string         `json:"reason,omitempty" gorm:"type:text"`
	Status    PledgeStatus   `json:"status" gorm:"type:varchar(32);not null;default:'DRAFT'"`
	Options   []PledgeOption `json:"options" gorm:"foreignKey:PledgeID"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (p *Pledge) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PledgeOption snapshots the amount and price of one selected package option
// at the time the pledge was submitted.
type PledgeOption struct {
	PledgeID   uuid.UUID `json:"pledgeId" gorm:"type:uuid;primaryKey"`
	TemplateID uuid.UUID `json:"templateId" gorm:"type:uuid;primaryKey"`
	Amount     int       `json:"amount" gorm:"not null"`
	Price      int       `json:"price" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PledgeOptionInput is a submitted selection of a package option.
type PledgeOptionInput struct {
	TemplateID uuid.UUID
	Amount     int
	Price      int
}
