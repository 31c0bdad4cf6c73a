package config

import (
	"errors"
	"fmt"
	"strings"

	"depthcharge/internal/common/errorwrapper"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "debug", "info", "warn", "error", "fatal":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("reportformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "json":
			return true
		default:
			return false
		}
	})

	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			messages := make([]string, 0, len(errs))
			for _, e := range errs {
				messages = append(messages, fmt.Sprintf("field '%s' failed '%s' validation", e.StructNamespace(), e.Tag()))
			}
			return errorwrapper.WrapError(errorwrapper.ErrInvalidConfiguration, strings.Join(messages, "; "))
		}
		return errorwrapper.WrapError(err, "config validation")
	}

	if cfg.RepoConfig.Path != "" && cfg.RepoConfig.URL != "" {
		return errorwrapper.NewValidationError("repo_config", cfg.RepoConfig, "path and url are mutually exclusive")
	}

	if cfg.DetectorConfig.Entropy.Enabled && len(cfg.DetectorConfig.Entropy.Charsets) == 0 {
		return errorwrapper.NewValidationError("detector_config.entropy.charsets", nil, "entropy detection enabled with no charsets")
	}

	return nil
}
