package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	_ = validate.RegisterValidation("formattype", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", FormatAuto, FormatJSON, FormatYAML, FormatXML, FormatText, FormatConfig:
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		var messages []string
		for _, e := range errs {
			msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", e.StructNamespace(), e.Tag())
			if e.Param() != "" {
				msg += fmt.Sprintf(" (expected: %s)", e.Param())
			}
			if e.Value() != nil && e.Value() != "" {
				msg += fmt.Sprintf(", actual: '%v'", e.Value())
			}
			messages = append(messages, msg)
		}
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return fmt.Errorf("configuration validation error: %w", err)
}
