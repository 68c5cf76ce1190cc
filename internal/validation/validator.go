// Package validation wraps a process-wide go-playground validator and turns
// its field errors into *Error values that match common.ErrValidation.
//
// Field names are reported by their json tag, so a failure on
//
//	Name string `json:"name" validate:"required"`
//
// surfaces as Field "name".
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dmitrijs2005/odyssey/internal/common"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Error is the first failing field of a validated struct.
type Error struct {
	Field   string
	Tag     string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap lets errors.Is(err, common.ErrValidation) match.
func (e *Error) Unwrap() error {
	return common.ErrValidation
}

// New builds an Error for field without going through the validator.
func New(field, tag string) *Error {
	return &Error{Field: field, Tag: tag, Message: message(field, tag, "")}
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})

	return validate
}

// ValidateStruct returns nil when s passes, otherwise an *Error for the first
// failing field.
func ValidateStruct(s any) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}

	fe := fieldErrs[0]
	return &Error{
		Field:   fe.Field(),
		Tag:     fe.Tag(),
		Message: message(fe.Field(), fe.Tag(), fe.Param()),
	}
}

func message(field, tag, param string) string {
	switch tag {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "latitude":
		return field + " must be between -90 and 90"
	case "longitude":
		return field + " must be between -180 and 180"
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
