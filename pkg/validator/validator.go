package validator

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// В сообщениях используем имена полей из json-тегов
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
	// Время в формате HH:MM
	_ = validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := types.ParseTimeOfDay(fl.Field().String())
		return err == nil
	})

	// Дата в формате YYYY-MM-DD
	_ = validate.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := types.ParseDate(fl.Field().String())
		return err == nil
	})

	// Тип ценового правила
	_ = validate.RegisterValidation("rule_type", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "recurring", "date":
			return true
		}
		return false
	})
}

// Validate проверяет структуру и возвращает ошибки по полям (nil, если ошибок нет)
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"_": err.Error()}
	}

	result := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			result[field] = "обязательное поле"
		case "min":
			result[field] = "значение слишком короткое (минимум: " + fe.Param() + ")"
		case "max":
			result[field] = "значение слишком длинное (максимум: " + fe.Param() + ")"
		case "gte":
			result[field] = "значение должно быть не меньше " + fe.Param()
		case "gt":
			result[field] = "значение должно быть больше " + fe.Param()
		case "lte":
			result[field] = "значение должно быть не больше " + fe.Param()
		case "oneof":
			result[field] = "допустимые значения: " + fe.Param()
		case "hhmm":
			result[field] = "время должно быть в формате HH:MM"
		case "date":
			result[field] = "дата должна быть в формате YYYY-MM-DD"
		case "rule_type":
			result[field] = "тип правила должен быть recurring или date"
		default:
			result[field] = "недопустимое значение"
		}
	}

	return result
}

// FirstError возвращает одно сообщение в виде "поле: ошибка" для ответа API
func FirstError(errs map[string]string) string {
	if len(errs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0] + ": " + errs[keys[0]]
}
