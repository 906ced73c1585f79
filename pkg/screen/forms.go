package screen

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/go-playground/validator/v10"
)

var (
	formValidator     *validator.Validate
	formValidatorOnce sync.Once
)

func getFormValidator() *validator.Validate {
	formValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			label := field.Tag.Get("label")
			if label != "" {
				return label
			}

			return field.Name
		})

		formValidator = v
	})

	return formValidator
}

// ValidateForm checks the validate tags of form and returns a local failure
// naming the first offending field by its label tag.
func ValidateForm(form interface{}) error {
	err := getFormValidator().Struct(form)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return bookhub.LocalFailure("form is required")
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		return bookhub.LocalFailure(fieldMessage(fieldErrors[0]))
	}

	return bookhub.LocalFailure(err.Error())
}

func fieldMessage(fieldError validator.FieldError) string {
	field := fieldError.Field()

	switch fieldError.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fieldError.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fieldError.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fieldError.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fieldError.Param(), " ", ", "))
	default:
		return field + " is invalid"
	}
}
