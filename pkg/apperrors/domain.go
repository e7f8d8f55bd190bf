package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для ошибок бизнес-логики.
*/

// =========================================================================
// Фабричные ФУНКЦИИ
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория должна быть преобразована в AppError.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ
// =========================================================================

// --- Users ---

var ErrUserNotFound = New(CodeNotFound, DomainUser, "User not found", http.StatusNotFound)

var ErrEmailAlreadyExists = New("USER_ALREADY_EXISTS", DomainUser, "User with this email already exists", http.StatusConflict)

var ErrUsernameTaken = New(CodeAlreadyExists, DomainUser, "Username is already taken", http.StatusConflict)

var ErrEmailRequired = New(CodeValidationFailed, DomainUser, "The given email must be set", http.StatusBadRequest)

// ErrSuperuserFlags - суперпользователь обязан иметь is_staff и is_superuser.
var ErrSuperuserFlags = New(CodeInvalidOperation, DomainUser, "Superuser must have is_staff=true and is_superuser=true", http.StatusBadRequest)

// ErrPrivilegedFlags - права персонала выдает только CreateSuperuser.
var ErrPrivilegedFlags = New(CodeInvalidOperation, DomainUser, "Regular user cannot have is_staff or is_superuser", http.StatusBadRequest)

var ErrWeakPassword = New(CodeValidationFailed, DomainValidation, "Password must be between 8 and 72 characters", http.StatusBadRequest)

// --- Catalog ---

var ErrCategoryNotFound = New(CodeNotFound, DomainCatalog, "Category not found", http.StatusNotFound)

var ErrSpecialtyNotFound = New(CodeNotFound, DomainCatalog, "Specialty not found", http.StatusNotFound)

var ErrLangTypeNotFound = New(CodeNotFound, DomainCatalog, "Language not found", http.StatusNotFound)

var ErrSlugTaken = New(CodeAlreadyExists, DomainCatalog, "Slug is already in use", http.StatusConflict)

// --- Profile ---

var ErrProfileNotFound = New(CodeNotFound, DomainProfile, "Profile not found", http.StatusNotFound)

var ErrProfileAlreadyExists = New(CodeAlreadyExists, DomainProfile, "Profile already exists for this user", http.StatusConflict)

var ErrCertNotFound = New(CodeNotFound, DomainProfile, "Certificate not found", http.StatusNotFound)

var ErrEmploymentNotFound = New(CodeNotFound, DomainProfile, "Employment not found", http.StatusNotFound)

var ErrLangNotFound = New(CodeNotFound, DomainProfile, "Spoken language entry not found", http.StatusNotFound)

var ErrInvalidDateRange = New(CodeValidationFailed, DomainProfile, "End date must not be before start date", http.StatusBadRequest)

// --- Verification ---

var ErrTaxNotFound = New(CodeNotFound, DomainVerification, "Tax record not found", http.StatusNotFound)

var ErrTaxAlreadyExists = New(CodeAlreadyExists, DomainVerification, "Tax record already exists for this user", http.StatusConflict)

var ErrIdentityNotFound = New(CodeNotFound, DomainVerification, "Identity record not found", http.StatusNotFound)

var ErrIdentityAlreadyExists = New(CodeAlreadyExists, DomainVerification, "Identity record already exists for this user", http.StatusConflict)

var ErrBusinessNotFound = New(CodeNotFound, DomainVerification, "Business record not found", http.StatusNotFound)

var ErrBadgeNotFound = New(CodeNotFound, DomainVerification, "Badge not found", http.StatusNotFound)

var ErrBadgeAlreadyExists = New(CodeAlreadyExists, DomainVerification, "Badge already exists for this user", http.StatusConflict)

// --- Points ---

var ErrPointNotFound = New(CodeNotFound, DomainPoints, "Point account not found", http.StatusNotFound)

var ErrPointAlreadyExists = New(CodeAlreadyExists, DomainPoints, "Point account already exists for this user", http.StatusConflict)

var ErrInsufficientPoints = New(CodeInsufficientPoints, DomainPoints, "Not enough points", http.StatusConflict)

var ErrInvalidPointAmount = New(CodeValidationFailed, DomainPoints, "Amount must be positive", http.StatusBadRequest)

var ErrPointsOverflow = New(CodeValidationFailed, DomainPoints, "Balance would exceed the maximum allowed value", http.StatusBadRequest)

// --- System ---

var ErrDatabaseUnavailable = New(CodeDatabaseError, DomainSystem, "Database is unavailable", http.StatusServiceUnavailable)
