package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"lifex.health/application/constants"
	"lifex.health/infrastructure/biometric"
)

var validate = validator.New()

func validateStruct(payload interface{}) *[]error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	invalidErr, ok := err.(*validator.InvalidValidationError)
	if ok {
		errs := []error{fmt.Errorf("invalid payload: %s", invalidErr.Error())}
		return &errs
	}

	var errs []error
	for _, fieldErr := range err.(validator.ValidationErrors) {
		errs = append(errs, fmt.Errorf("%s failed validation on rule %s", toSnakeCase(fieldErr.Field()), fieldErr.Tag()))
	}
	return &errs
}

func validateField(value any, rules string) error {
	return validate.Var(value, rules)
}

// validateFrameCount bounds liveness frame uploads.
func validateFrameCount(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	count := field.Len()
	return count >= biometric.MinLivenessFrames && count <= constants.MaxLivenessUploadFrames
}

func toSnakeCase(field string) string {
	var out strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out.WriteByte('_')
			}
			out.WriteRune(r - 'A' + 'a')
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}
