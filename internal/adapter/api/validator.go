package api

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts validator/v10 to echo's Validator interface and
// registers the campus_email rule used by signup.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(allowedDomain string) *CustomValidator {
	v := validator.New()

	overrides := []string{"calebuniversity.edu.ng"}

	v.RegisterValidation("campus_email", func(fl validator.FieldLevel) bool {
		addr := strings.ToLower(strings.TrimSpace(fl.Field().String()))
		at := strings.LastIndex(addr, "@")
		if at < 0 {
			return false
		}
		domain := addr[at+1:]

		if strings.HasSuffix(domain, allowedDomain) {
			return true
		}
		for _, override := range overrides {
			if domain == override {
				return true
			}
		}
		return false
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
