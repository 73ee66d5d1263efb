package models

import "github.com/google/uuid"

type SubmitPledgeRequest struct {
	Pledge       PledgeRequest `json:"pledge"`
	CaptchaToken string        `json:"captchaToken"`
}

type PledgeRequest struct {
	Total   int                   `json:"total" validate:"gte=0"`
	Reason  string                `json:"reason" validate:"max=2000"`
	User    PledgeUserRequest     `json:"user"`
	Options []PledgeOptionRequest `json:"options" validate:"required,min=1,dive"`
}

type PledgeUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,max=255"`
	LastName  string `json:"lastName" validate:"required,max=255"`
	Birthday  string `json:"birthday" validate:"omitempty,birthday"`
}

type PledgeOptionRequest struct {
	TemplateID string `json:"templateId" validate:"required,uuid"`
	Amount     int    `json:"amount" validate:"gte=0"`
	Price      int    `json:"price" validate:"gte=0"`
}

type SubmitPledgeResponse struct {
	PledgeID         *uuid.UUID `json:"pledgeId,omitempty"`
	UserID           *uuid.UUID `json:"userId,omitempty"`
	PaymentSignature string     `json:"paymentSignature,omitempty"`
	PaymentAlias     string     `json:"paymentAlias,omitempty"`
	EmailVerify      bool       `json:"emailVerify,omitempty"`
}
