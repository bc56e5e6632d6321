package api

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"event-registration/internal/apperr"

	"github.com/go-playground/validator/v10"
)

var (
	tenDigits    = regexp.MustCompile(`^\d{10}$`)
	twelveDigits = regexp.MustCompile(`^\d{12}$`)
)

// CustomValidator wraps go-playground/validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("digits10", func(fl validator.FieldLevel) bool {
		return tenDigits.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("digits12", func(fl validator.FieldLevel) bool {
		return twelveDigits.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate 回傳 apperr.Validation，訊息取第一個失敗欄位
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return &apperr.Error{Kind: apperr.Validation, Message: "Invalid request.", Err: err}
	}
	return &apperr.Error{Kind: apperr.Validation, Message: fieldMessage(ves[0]), Err: err}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "email":
		return "Invalid email address."
	case "digits10":
		return "Invalid phone number! Must be 10 digits."
	case "digits12":
		return "Invalid transaction ID!"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Invalid %s.", fe.Field())
	}
}
