package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mspsec/riskboard/pkg/errors"
)

var defaultValidator *validator.Validate

func init() {
	defaultValidator = validator.New()
	defaultValidator.RegisterValidation("uuid", validateUUID)
}

// ValidateStruct validates a struct using the default validator.
// It returns a validation AppError with per-field details on failure.
func ValidateStruct(s any) *errors.AppError {
	if err := defaultValidator.Struct(s); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return errors.ErrInvalidRequest(err.Error())
		}
		details := make(map[string]string, len(validationErrors))
		for _, fe := range validationErrors {
			details[toSnakeCase(fe.Field())] = formatValidationError(fe)
		}
		return errors.ErrValidation(details)
	}
	return nil
}

func validateUUID(fl validator.FieldLevel) bool {
	_, err := uuid.Parse(fl.Field().String())
	return err == nil
}

// formatValidationError creates a user-friendly message for a field error.
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' tag", fe.Tag())
	}
}

var (
	matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
	matchAllCap   = regexp.MustCompile("([a-z0-9])([A-Z])")
)

// toSnakeCase converts a CamelCase field name to snake_case for responses.
func toSnakeCase(str string) string {
	snake := matchFirstCap.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToLower(snake)
}

// ValidateEmail checks if a string is a valid email address.
func ValidateEmail(email string) bool {
	return defaultValidator.Var(email, "email") == nil
}
