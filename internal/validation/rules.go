// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/drive-proxy/internal/errors"
)

var (
	// fileIDRegex matches Drive file identifiers.
	fileIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// FileID validates that a string looks like a Drive file identifier
var FileID = validation.NewStringRuleWithError(
	func(s string) bool {
		return fileIDRegex.MatchString(s)
	},
	validation.NewError("validation_file_id", "must be a valid file id"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
