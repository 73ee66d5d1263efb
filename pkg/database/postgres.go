package database

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase(databaseURL string, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	if err := SeedCatalog(db, logger); err != nil {
		return nil, err
	}

	return db, nil
}

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Reward{},
		&models.Goodie{},
		&models.MembershipType{},
		&models.Package{},
		&models.PackageOption{},
		&models.User{},
		&models.Pledge{},
		&models.PledgeOption{},
		&models.PaymentSource{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

type seedOption struct {
	reward        *models.Reward
	minAmount     int
	maxAmount     int
	defaultAmount int
	price         int
	userPrice     bool
	minUserPrice  int
}

// SeedCatalog adds the default packages unless a package of the same name exists.
func SeedCatalog(db *gorm.DB, logger *zap.Logger) error {
	membership := &models.Reward{
		Type:           models.RewardTypeMembershipType,
		MembershipType: &models.MembershipType{Name: "ABO", IntervalCount: 1},
	}
	notebook := &models.Reward{
		Type:   models.RewardTypeGoodie,
		Goodie: &models.Goodie{Name: "NOTEBOOK"},
	}

	catalog := map[string][]seedOption{
		"ABO": {
			{reward: membership, minAmount: 1, maxAmount: 1, defaultAmount: 1, price: 24000, userPrice: true, minUserPrice: 1000},
		},
		"BENEFACTOR": {
			{reward: membership, minAmount: 1, maxAmount: 1, defaultAmount: 1, price: 100000},
			{reward: notebook, minAmount: 0, maxAmount: 1, defaultAmount: 1, price: 0},
		},
		"DONATE": {
			{minAmount: 1, maxAmount: 1, defaultAmount: 1, price: 0},
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range []string{"ABO", "BENEFACTOR", "DONATE"} {
			var count int64
			if err := tx.Model(&models.Package{}).Where("name = ?", name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			pkg := models.Package{Name: name}
			for _, opt := range catalog[name] {
				option := models.PackageOption{
					MinAmount:     opt.minAmount,
					MaxAmount:     opt.maxAmount,
					DefaultAmount: opt.defaultAmount,
					Price:         opt.price,
					UserPrice:     opt.userPrice,
					MinUserPrice:  opt.minUserPrice,
				}
				if opt.reward != nil {
					if err := ensureReward(tx, opt.reward); err != nil {
						return err
					}
					option.RewardID = &opt.reward.ID
				}
				pkg.Options = append(pkg.Options, option)
			}

			if err := tx.Create(&pkg).Error; err != nil {
				return fmt.Errorf("failed to add package %s: %w", name, err)
			}
			logger.Info("seeded package", zap.String("name", name), zap.Int("options", len(pkg.Options)))
		}
		return nil
	})
}

// ensureReward loads the reward by its goodie or membership type name, creating it if missing.
func ensureReward(tx *gorm.DB, reward *models.Reward) error {
	if reward.ID != uuid.Nil {
		return nil
	}

	var existing models.Reward
	query := tx.Model(&models.Reward{})
	switch {
	case reward.Goodie != nil:
		query = query.Joins("JOIN goodies ON goodies.reward_id = rewards.id").Where("goodies.name = ?", reward.Goodie.Name)
	case reward.MembershipType != nil:
		query = query.Joins("JOIN membership_types ON membership_types.reward_id = rewards.id").Where("membership_types.name = ?", reward.MembershipType.Name)
	}
	err := query.First(&existing).Error
	if err == nil {
		reward.ID = existing.ID
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return tx.Create(reward).Error
}
