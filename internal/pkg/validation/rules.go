package validation

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Tag names of the custom rules
const (
	// NotBlankTag rejects strings made only of whitespace
	NotBlankTag = "notblank"
)

// NotBlank is a field-level rule for string fields
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Register adds the custom rules to v
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(NotBlankTag, NotBlank); err != nil {
		return fmt.Errorf("failed to register %s rule: %w", NotBlankTag, err)
	}
	return nil
}

// RegisterWithGin adds the custom rules to gin's binding validator
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return Register(v)
}
