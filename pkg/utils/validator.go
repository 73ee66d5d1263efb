package utils

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// BirthdayLayout is the date format birthdays are submitted in.
const BirthdayLayout = "2006-01-02"

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Custom validations
	v.RegisterValidation("birthday", validateBirthday)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// A birthday is a YYYY-MM-DD date in the past.
func validateBirthday(fl validator.FieldLevel) bool {
	date, err := time.Parse(BirthdayLayout, fl.Field().String())
	if err != nil {
		return false
	}
	return date.Before(time.Now())
}
