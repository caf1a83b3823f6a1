// Package validation configures the validator/v10 engine used by gin request
// binding and by services validating commands.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once   sync.Once
	engine *validator.Validate
)

// Engine returns gin's validator with the custom types and tags registered.
func Engine() *validator.Validate {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			v = validator.New()
			v.SetTagName("binding")
		}
		register(v)
		engine = v
	})
	return engine
}

func register(v *validator.Validate) {
	// Amounts are validated on their numeric value, so "gt=0" works on decimals.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("month", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01", fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(domain.DateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.TransactionCategory(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("tender", func(fl validator.FieldLevel) bool {
		return domain.Tender(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("purpose", func(fl validator.FieldLevel) bool {
		return domain.TransactionPurpose(fl.Field().String()).IsValid()
	})
}

// Struct validates s and wraps failures in apperrors.ErrValidation with a
// readable "field: rule" summary.
func Struct(s any) error {
	err := Engine().Struct(s)
	if err == nil {
		return nil
	}
	if fields := FieldErrors(err); len(fields) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, summarize(fields))
	}
	return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
}

// FieldErrors maps each failing field to the rule it broke. It returns nil
// when err is not a validation error.
func FieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	out := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out[fe.Field()] = rule
	}
	return out
}

func summarize(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for f, rule := range fields {
		parts = append(parts, f+": "+rule)
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
