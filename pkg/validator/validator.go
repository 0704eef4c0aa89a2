package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Имена полей в ошибках берём из json-тегов
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Время слота: "10:00", "10:00:00", "10:00 AM"
	_ = validate.RegisterValidation("slot_time", func(fl validator.FieldLevel) bool {
		_, err := types.NormalizeTime(fl.Field().String())
		return err == nil
	})
}

// Validate проверяет структуру и возвращает ошибки по полям (nil, если всё корректно)
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"_": err.Error()}
	}

	fieldErrors := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			fieldErrors[field] = "This field is required"
		case "uuid", "uuid4":
			fieldErrors[field] = "Invalid UUID"
		case "datetime":
			fieldErrors[field] = "Invalid date, expected " + fe.Param()
		case "slot_time":
			fieldErrors[field] = "Invalid time, expected HH:MM or hh:MM AM"
		case "oneof":
			fieldErrors[field] = "Must be one of: " + fe.Param()
		case "gte":
			fieldErrors[field] = "Value must be at least " + fe.Param()
		case "lte":
			fieldErrors[field] = "Value must be at most " + fe.Param()
		default:
			fieldErrors[field] = "Invalid value"
		}
	}

	return fieldErrors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
