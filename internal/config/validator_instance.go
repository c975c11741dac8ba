package config

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	componentNamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9 ._:/-]{0,126}[A-Za-z0-9._:/-])?$`)
	contentTypePattern   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.+_-]{0,63}$`)
	rolePattern          = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)
	versionPattern       = regexp.MustCompile(`^\d+\.\d+$`)
)

// validatorInstance configures and returns the shared validator instance used across partwire.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("component_name", func(fl validator.FieldLevel) bool {
			return componentNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("content_type_name", func(fl validator.FieldLevel) bool {
			return contentTypePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("role_name", func(fl validator.FieldLevel) bool {
			return rolePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("manifest_version", func(fl validator.FieldLevel) bool {
			return versionPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidateStruct validates s with the shared validator and normalizes the error.
func ValidateStruct(s any) error {
	return convertValidationError(validatorInstance().Struct(s))
}
