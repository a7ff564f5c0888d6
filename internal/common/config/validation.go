package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Validate checks c against its `validate` struct tags.
func Validate(c interface{}) error {
	return validator.New().Struct(c)
}

// LogValidationErrors logs one line per field that failed validation. Other errors are logged as they are.
func LogValidationErrors(err error) {
	if err == nil {
		return
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		log.Errorf("ConfigError: %s", err)
		return
	}
	for _, err := range validationErrs {
		fieldName := stripPrefix(err.Namespace())
		tag := err.Tag()
		switch tag {
		case "required":
			log.Errorf("ConfigError: Field %s is required but was not found", fieldName)
		default:
			log.Errorf("ConfigError: Field %s has invalid value %v: %s", fieldName, err.Value(), describeTag(tag, err.Param()))
		}
	}
}

func describeTag(tag string, param string) string {
	if param == "" {
		return tag
	}
	return tag + "=" + param
}

func stripPrefix(s string) string {
	if idx := strings.Index(s, "."); idx != -1 {
		return s[idx+1:]
	}
	return s
}
