package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct проверяет структуру по validate-тегам.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// FormatErrors превращает ошибки валидатора в карту "поле → сообщение".
func FormatErrors(err error) map[string]string {
	fields := make(map[string]string)

	var verrs validator.ValidationErrors
	if errs, ok := err.(validator.ValidationErrors); ok {
		verrs = errs
	} else {
		return fields
	}

	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			fields[field] = "обязательное поле"
		case "email":
			fields[field] = "некорректный email"
		case "min":
			fields[field] = fmt.Sprintf("минимум %s символов", e.Param())
		case "max":
			fields[field] = fmt.Sprintf("максимум %s символов", e.Param())
		case "gte":
			fields[field] = fmt.Sprintf("значение должно быть не меньше %s", e.Param())
		case "lte":
			fields[field] = fmt.Sprintf("значение должно быть не больше %s", e.Param())
		case "oneof":
			fields[field] = fmt.Sprintf("допустимые значения: %s", e.Param())
		case "url":
			fields[field] = "некорректный URL"
		case "datetime":
			fields[field] = fmt.Sprintf("ожидается дата в формате %s", e.Param())
		default:
			fields[field] = "недопустимое значение"
		}
	}

	return fields
}
