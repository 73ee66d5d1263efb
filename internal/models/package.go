package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Package is a campaign offer grouping the options a pledge can combine.
type Package struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string          `json:"name" gorm:"not null;unique"`
	Options   []PackageOption `json:"options" gorm:"foreignKey:PackageID"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (p *Package) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PackageOption is the catalog template a pledge option references.
// Amounts are quantities, prices are in minor currency units.
type PackageOption struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	PackageID     uuid.UUID  `json:"packageId" gorm:"type:uuid;not null;index"`
	RewardID      *uuid.UUID `json:"rewardId,omitempty" gorm:"type:uuid"`
	Reward        *Reward    `json:"reward,omitempty" gorm:"foreignKey:RewardID"`
	MinAmount     int        `json:"minAmount" gorm:"not null;default:0"`
	MaxAmount     int        `json:"maxAmount" gorm:"not null"`
	DefaultAmount int        `json:"defaultAmount" gorm:"not null;default:0"`
	Price         int        `json:"price" gorm:"not null"`
	UserPrice     bool       `json:"userPrice" gorm:"not null;default:false"`
	MinUserPrice  int        `json:"minUserPrice" gorm:"not null;default:0"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (o *PackageOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// UnitMinPrice is the lowest price per unit a pledger may pay for this option.
func (o PackageOption) UnitMinPrice() int {
	if o.UserPrice {
		return o.MinUserPrice
	}
	return o.Price
}
