package services_test

import (
	"testing"

	"freelance_backend/internal/models"
	"freelance_backend/internal/services"
	"freelance_backend/internal/validator"
	"freelance_backend/pkg/apperrors"
	"freelance_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// setup открывает откатываемую транзакцию и собирает сервисы.
func setup(t *testing.T) (*gorm.DB, *services.ServiceContainer) {
	t.Helper()
	tx := helpers.BeginTransaction(t)
	return tx, services.NewServiceContainer(validator.New())
}

func newUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return helpers.CreateUser(t, db, &models.User{Freelancer: true})
}

func assertAppError(t *testing.T, err error, expected *apperrors.AppError) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, apperrors.Is(err, expected), "expected %s, got %v", expected.Code, err)
	}
}

func assertValidationError(t *testing.T, err error, field string) {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	if assert.True(t, ok, "expected AppError, got %v", err) {
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
		if field != "" {
			assert.Contains(t, appErr.Details, field)
		}
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
