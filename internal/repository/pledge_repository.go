package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"gorm.io/gorm"
)

type PledgeRepository struct {
	db *gorm.DB
}

func NewPledgeRepository(db *gorm.DB) *PledgeRepository {
	return &PledgeRepository{
		db: db,
	}
}

func (r *PledgeRepository) Create(pledge *models.Pledge) error {
	return r.db.Omit("Options").Create(pledge).Error
}

func (r *PledgeRepository) CreateOptions(options []models.PledgeOption) error {
	if len(options) == 0 {
		return nil
	}
	return r.db.Create(&options).Error
}

func (r *PledgeRepository) GetByID(id uuid.UUID) (*models.Pledge, error) {
	var pledge models.Pledge
	err := r.db.Preload("Options").Where("id = ?", id).First(&pledge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pledge, nil
}

func (r *PledgeRepository) GetUserPledges(userID uuid.UUID) ([]models.Pledge, error) {
	var pledges []models.Pledge
	err := r.db.Preload("Options").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&pledges).Error
	return pledges, err
}

func (r *PledgeRepository) CountByUser(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Pledge{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountRewardedByUser counts the user's pledges through which at least one
// reward is still reachable. Options whose template or reward no longer
// exists drop out of the inner joins.
func (r *PledgeRepository) CountRewardedByUser(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Pledge{}).
		Joins("JOIN pledge_options ON pledge_options.pledge_id = pledges.id").
		Joins("JOIN package_options ON package_options.id = pledge_options.template_id").
		Joins("JOIN rewards ON rewards.id = package_options.reward_id").
		Where("pledges.user_id = ?", userID).
		Distinct("pledges.id").
		Count(&count).Error
	return count, err
}
