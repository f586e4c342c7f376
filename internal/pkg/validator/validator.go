package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"canvas/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// В деталях ошибки отдаём имена полей так, как их видит клиент.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = validate.RegisterValidation("visibility", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return v == "" || domain.Visibility(v).Valid()
	})
	_ = validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return domain.UserRole(fl.Field().String()).Valid()
	})
}

// Validate проверяет структуру и возвращает ошибки в виде поле -> правило.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// Var проверяет одиночное значение по тегу, например "email".
func Var(value any, tag string) bool {
	return validate.Var(value, tag) == nil
}
