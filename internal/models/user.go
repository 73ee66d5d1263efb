package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string          `json:"email" gorm:"unique;not null"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Birthday  *datatypes.Date `json:"birthday,omitempty"`
	Verified  bool            `json:"verified" gorm:"not null;default:false"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SessionUser is the identity attached to an authenticated request.
type SessionUser struct {
	ID    uuid.UUID
	Email string
}
