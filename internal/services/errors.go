package services

import (
	"errors"

	"freelance_backend/internal/repositories"
	"freelance_backend/internal/validator"
	"freelance_backend/pkg/apperrors"
)

// repoErrors сопоставляет ошибки репозиториев с AppError
var repoErrors = map[error]*apperrors.AppError{
	repositories.ErrUserNotFound:          apperrors.ErrUserNotFound,
	repositories.ErrUserAlreadyExists:     apperrors.ErrEmailAlreadyExists,
	repositories.ErrUsernameTaken:         apperrors.ErrUsernameTaken,
	repositories.ErrCategoryNotFound:      apperrors.ErrCategoryNotFound,
	repositories.ErrSpecialtyNotFound:     apperrors.ErrSpecialtyNotFound,
	repositories.ErrLangTypeNotFound:      apperrors.ErrLangTypeNotFound,
	repositories.ErrSlugAlreadyExists:     apperrors.ErrSlugTaken,
	repositories.ErrProfileNotFound:       apperrors.ErrProfileNotFound,
	repositories.ErrProfileAlreadyExists:  apperrors.ErrProfileAlreadyExists,
	repositories.ErrCertNotFound:          apperrors.ErrCertNotFound,
	repositories.ErrEmploymentNotFound:    apperrors.ErrEmploymentNotFound,
	repositories.ErrLangNotFound:          apperrors.ErrLangNotFound,
	repositories.ErrTaxNotFound:           apperrors.ErrTaxNotFound,
	repositories.ErrTaxAlreadyExists:      apperrors.ErrTaxAlreadyExists,
	repositories.ErrIdentityNotFound:      apperrors.ErrIdentityNotFound,
	repositories.ErrIdentityAlreadyExists: apperrors.ErrIdentityAlreadyExists,
	repositories.ErrBusinessNotFound:      apperrors.ErrBusinessNotFound,
	repositories.ErrBadgeNotFound:         apperrors.ErrBadgeNotFound,
	repositories.ErrBadgeAlreadyExists:    apperrors.ErrBadgeAlreadyExists,
	repositories.ErrPointNotFound:         apperrors.ErrPointNotFound,
	repositories.ErrPointAlreadyExists:    apperrors.ErrPointAlreadyExists,
}

// handleRepoError переводит ошибку репозитория или драйвера в AppError.
func handleRepoError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	for sentinel, appErr := range repoErrors {
		if errors.Is(err, sentinel) {
			return appErr.WithError(err)
		}
	}
	return apperrors.FromDB(err)
}

// validateRequest прогоняет DTO через валидатор и возвращает VALIDATION_FAILED с деталями.
func validateRequest(v *validator.Validator, req interface{}) error {
	if err := v.Validate(req); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			return apperrors.ValidationError(vErr.Errors)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// fieldError - ошибка валидации одного поля, найденная вне валидатора
func fieldError(field, message string) error {
	return apperrors.ValidationError(map[string]string{field: message})
}
