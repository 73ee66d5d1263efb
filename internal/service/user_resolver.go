package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sefazor/crowdfunding-backend/internal/models"
	"github.com/sefazor/crowdfunding-backend/internal/repository"
	"gorm.io/datatypes"
)

// ContactInput is the contact block of a pledge submission.
type ContactInput struct {
	Email     string
	FirstName string
	LastName  string
	Birthday  *time.Time
}

type UserResolution struct {
	User                      *models.User
	FromSession               bool
	Created                   bool
	EmailVerificationRequired bool
}

type UserResolver struct{}

func NewUserResolver() *UserResolver {
	return &UserResolver{}
}

// Resolve settles the acting user of a submission. When the submitted email
// already owns pledges and nobody is signed in, the resolution only carries
// EmailVerificationRequired and nothing is written.
func (r *UserResolver) Resolve(tx repository.Tx, session *models.SessionUser, contact ContactInput) (*UserResolution, error) {
	email := models.NormalizeEmail(contact.Email)

	if session != nil {
		if !strings.EqualFold(strings.TrimSpace(session.Email), email) {
			return nil, ErrIdentityMismatch
		}
		user, err := tx.FindUserByID(session.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUnauthorized
			}
			return nil, fmt.Errorf("load session user: %w", err)
		}
		return &UserResolution{User: user, FromSession: true}, nil
	}

	user, err := tx.FindUserByEmail(email)
	switch {
	case err == nil:
		pledges, err := tx.CountPledgesByUser(user.ID)
		if err != nil {
			return nil, fmt.Errorf("count pledges of %s: %w", user.ID, err)
		}
		if pledges > 0 {
			return &UserResolution{EmailVerificationRequired: true}, nil
		}
		return &UserResolution{User: user}, nil
	case errors.Is(err, repository.ErrNotFound):
	default:
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	user = &models.User{
		Email:     email,
		FirstName: strings.TrimSpace(contact.FirstName),
		LastName:  strings.TrimSpace(contact.LastName),
	}
	if contact.Birthday != nil {
		birthday := datatypes.Date(*contact.Birthday)
		user.Birthday = &birthday
	}
	if err := tx.CreateUser(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &UserResolution{User: user, Created: true}, nil
}

// SyncProfile copies the submitted name onto the user when it changed.
func (r *UserResolver) SyncProfile(tx repository.Tx, user *models.User, contact ContactInput) error {
	firstName := strings.TrimSpace(contact.FirstName)
	lastName := strings.TrimSpace(contact.LastName)
	if user.FirstName == firstName && user.LastName == lastName {
		return nil
	}

	if err := tx.UpdateUserName(user.ID, firstName, lastName); err != nil {
		return fmt.Errorf("update name of %s: %w", user.ID, err)
	}
	user.FirstName = firstName
	user.LastName = lastName
	return nil
}
