package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	partwireerrors "github.com/alexisbeaulieu97/partwire/pkg/errors"
)

// convertValidationError normalizes validator errors into partwire validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return partwireerrors.NewValidationError(field, msg, err)
	}

	return partwireerrors.NewValidationError("manifest", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldForContract(index int, field string) string {
	return fmt.Sprintf("contracts[%d].%s", index, field)
}

func fieldForListener(index int, field string) string {
	return fmt.Sprintf("listeners[%d].%s", index, field)
}

func fieldForContentType(index int, field string) string {
	return fmt.Sprintf("content_types[%d].%s", index, field)
}
