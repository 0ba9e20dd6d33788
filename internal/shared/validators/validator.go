package validators

import (
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TagRelPath validates that a string is a relative, non-escaping file path.
const TagRelPath = "relpath"

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// New creates a new validator instance with the project's custom tags registered.
func New() *Validate {
	v := validator.New()
	_ = v.RegisterValidation(TagRelPath, func(fl validator.FieldLevel) bool {
		return IsRelPath(fl.Field().String())
	})
	return v
}

// IsRelPath reports whether p is a non-empty relative path that stays inside its root.
func IsRelPath(p string) bool {
	if p == "" || filepath.IsAbs(p) {
		return false
	}
	clean := filepath.Clean(p)
	if clean == "." || clean == ".." {
		return false
	}
	return !strings.HasPrefix(clean, ".."+string(filepath.Separator))
}
