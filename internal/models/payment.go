package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentMethodPostFinanceCard is the recurring method whose alias binds a card
// to a user across pledges.
const PaymentMethodPostFinanceCard = "POSTFINANCECARD"

type PaymentSource struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index:idx_payment_sources_user_method"`
	Method    string    `json:"method" gorm:"not null;index:idx_payment_sources_user_method"`
	PspID     string    `json:"pspId" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *PaymentSource) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
