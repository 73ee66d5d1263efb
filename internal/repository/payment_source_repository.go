package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"gorm.io/gorm"
)

type PaymentSourceRepository struct {
	db *gorm.DB
}

func NewPaymentSourceRepository(db *gorm.DB) *PaymentSourceRepository {
	return &PaymentSourceRepository{db: db}
}

func (r *PaymentSourceRepository) GetByUserAndMethod(userID uuid.UUID, method string) (*models.PaymentSource, error) {
	var source models.PaymentSource
	err := r.db.
		Where("user_id = ? AND method = ?", userID, method).
		Order("created_at DESC").
		First(&source).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &source, nil
}
