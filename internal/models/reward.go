package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RewardType string

const (
	RewardTypeGoodie         RewardType = "Goodie"
	RewardTypeMembershipType RewardType = "MembershipType"
)

// Reward is the shared identity of everything a package option can hand out.
type Reward struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Type           RewardType      `json:"type" gorm:"not null"`
	Goodie         *Goodie         `json:"goodie,omitempty" gorm:"foreignKey:RewardID"`
	MembershipType *MembershipType `json:"membershipType,omitempty" gorm:"foreignKey:RewardID"`
}

func (r *Reward) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Goodie struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	RewardID uuid.UUID `json:"rewardId" gorm:"type:uuid;not null;unique"`
	Name     string    `json:"name" gorm:"not null;unique"`
}

func (g *Goodie) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

type MembershipType struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	RewardID      uuid.UUID `json:"rewardId" gorm:"type:uuid;not null;unique"`
	Name          string    `json:"name" gorm:"not null;unique"`
	IntervalCount int       `json:"intervalCount" gorm:"not null;default:1"`
}

func (m *MembershipType) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
