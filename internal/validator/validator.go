// Package validator provides the shared struct validator with the custom
// tags used by service inputs.
package validator

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Get returns the shared validator, registering custom validators on first use.
func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		Register(validate)
	})
	return validate
}

// Register registers all custom validators with v.
func Register(v *validator.Validate) {
	// Field errors report the label tag when present.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})

	_ = v.RegisterValidation("notblank", validateNotBlank)
	_ = v.RegisterValidation("payment_method", validatePaymentMethod)
	_ = v.RegisterValidation("movement_type", validateMovementType)
	_ = v.RegisterValidation("dpos", validateDecimalPositive)
	_ = v.RegisterValidation("dgte", validateDecimalNonNegative)
	_ = v.RegisterValidation("qty", validateQuantity)
}

// Struct validates s and converts the first failure into an ErrInvalidInput
// AppError with a readable message.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, message(fieldErrs[0]))
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "payment_method":
		return fmt.Sprintf("%s must be one of cash, card, credit, cheque", field)
	case "movement_type":
		return fmt.Sprintf("%s must be in or out", field)
	case "dpos", "gt":
		return fmt.Sprintf("%s must be greater than zero", field)
	case "dgte", "gte":
		return fmt.Sprintf("%s must not be negative", field)
	case "qty":
		return fmt.Sprintf("%s must be a number not below zero", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	return models.PaymentMethod(fl.Field().String()).Valid()
}

func validateMovementType(fl validator.FieldLevel) bool {
	switch models.MovementType(fl.Field().String()) {
	case models.MovementIn, models.MovementOut:
		return true
	}
	return false
}

func validateDecimalPositive(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && d.IsPositive()
}

func validateDecimalNonNegative(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && !d.IsNegative()
}

// validateQuantity accepts finite, non-negative stock quantities.
func validateQuantity(fl validator.FieldLevel) bool {
	q := fl.Field().Float()
	return !math.IsNaN(q) && !math.IsInf(q, 0) && q >= 0
}
