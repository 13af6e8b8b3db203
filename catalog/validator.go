package catalog

import (
	"github.com/boredclicker/bored"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("activity_key", validateKey)
	_ = v.RegisterValidation("activity_type", validateType)
	return v
}

// validateKey accepts exactly seven digits without a leading zero, 1000000-9999999.
func validateKey(fl validator.FieldLevel) bool {
	key := fl.Field().String()
	if len(key) != 7 || key[0] == '0' {
		return false
	}
	for _, c := range key {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func validateType(fl validator.FieldLevel) bool {
	return bored.Type(fl.Field().String()).Known()
}
