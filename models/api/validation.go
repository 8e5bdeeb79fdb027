package apimodels

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/pkg/errors"
)

var (
	emailRegexp   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	formValidator = newFormValidator()
)

// IsEmail формат почты, который принимает бэкенд
func IsEmail(email string) bool {
	return emailRegexp.MatchString(strings.TrimSpace(email))
}

// FormErrors ошибки валидации по полям формы, ключ - имя поля в json
type FormErrors map[string]string

func (e FormErrors) Error() string {
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, e[key])
	}
	return strings.Join(parts, "; ")
}

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("portal_email", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	return v
}

// RegisterRule правило для форм пакета моделей, вызывается из init
func RegisterRule(tag string, fn validator.Func) {
	if err := formValidator.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// RegisterRuleCtx правило, которому нужны данные из контекста проверки
func RegisterRuleCtx(tag string, fn validator.FuncCtx) {
	if err := formValidator.RegisterValidationCtx(tag, fn); err != nil {
		panic(err)
	}
}

// ValidateForm messages: "ПолеСтруктуры.тег" -> текст ошибки, на поле остается первая ошибка
func ValidateForm(ctx context.Context, form interface{}, messages map[string]string) error {
	err := formValidator.StructCtx(ctx, form)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errors.Wrap(err, "ошибка валидации формы")
	}
	result := FormErrors{}
	for _, fieldErr := range validationErrors {
		if _, exist := result[fieldErr.Field()]; exist {
			continue
		}
		message, ok := messages[fmt.Sprintf("%v.%v", fieldErr.StructField(), fieldErr.Tag())]
		if !ok {
			message = fmt.Sprintf("%v is invalid", fieldErr.Field())
		}
		result[fieldErr.Field()] = message
	}
	return result
}
