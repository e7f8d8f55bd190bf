package validator

import (
	"reflect"
	"regexp"
	"strings"

	"freelance_backend/internal/logger"
	"freelance_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	tinRe  = regexp.MustCompile(`^[A-Za-z0-9-]{3,20}$`)
)

// registerCustomRules регистрирует все кастомные функции валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Приложение не должно запускаться без правил валидации
			logger.Fatal("Failed to register custom validation tag", "tag", tag, "error", err)
		}
	}

	// 'is-business-type': Individual | Corporate
	mustRegister("is-business-type", validateBusinessType)

	// 'slug': латиница в нижнем регистре, цифры, дефисы
	mustRegister("slug", validateSlug)

	// 'tin': налоговый номер, не длиннее колонки tin
	mustRegister("tin", validateTIN)

	// 'not-blank': строка не из одних пробелов
	mustRegister("not-blank", validateNotBlank)
}

// --- Функции валидации ---

func validateBusinessType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Не проверяем пустые значения, для этого есть 'required'
	}
	return models.BusinessType(value).IsValid()
}

func validateSlug(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return slugRe.MatchString(value)
}

func validateTIN(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return tinRe.MatchString(value)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() == reflect.String {
		return strings.TrimSpace(fl.Field().String()) != ""
	}
	return true
}
