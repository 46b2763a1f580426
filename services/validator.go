package services

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RegisterRequest carries the trimmed registration form. Phone format is not
// enforced beyond presence: numbers arrive in whatever shape the user typed
// them and act as opaque lookup keys.
type RegisterRequest struct {
	Name     string `validate:"required"`
	Phone    string `validate:"required"`
	Password string `validate:"required"`
}

func ValidateRegister(req RegisterRequest) error {
	return validate.Struct(req)
}
