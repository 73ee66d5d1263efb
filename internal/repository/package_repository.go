package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"gorm.io/gorm"
)

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{
		db: db,
	}
}

func (r *PackageRepository) GetByID(id uuid.UUID) (*models.Package, error) {
	var pkg models.Package
	err := r.withOptions().Where("id = ?", id).First(&pkg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *PackageRepository) GetAll() ([]models.Package, error) {
	var packages []models.Package
	err := r.withOptions().Order("name ASC").Find(&packages).Error
	return packages, err
}

// GetOptionsByIDs returns the templates that still exist for ids. Missing ids
// are silently skipped; callers compare counts.
func (r *PackageRepository) GetOptionsByIDs(ids []uuid.UUID) ([]models.PackageOption, error) {
	var options []models.PackageOption
	if len(ids) == 0 {
		return options, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&options).Error
	return options, err
}

func (r *PackageRepository) withOptions() *gorm.DB {
	return r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("package_options.price DESC")
		}).
		Preload("Options.Reward.Goodie").
		Preload("Options.Reward.MembershipType")
}
