package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие, не-доменные коды ошибок
const (
	// Системные и неизвестные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
	CodeUnknownError  ErrorCode = "UNKNOWN_ERROR"

	// Общие ошибки бизнес-логики (используются фабриками)
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Ограничения БД
	CodeReferenceNotFound ErrorCode = "REFERENCE_NOT_FOUND"
	CodeRequiredField     ErrorCode = "REQUIRED_FIELD"
	CodeCheckViolation    ErrorCode = "CHECK_VIOLATION"

	// Баллы
	CodeInsufficientPoints ErrorCode = "INSUFFICIENT_POINTS"
)

// Домены ошибок
const (
	DomainUser         = "user"
	DomainCatalog      = "catalog"
	DomainProfile      = "profile"
	DomainVerification = "verification"
	DomainPoints       = "points"
	DomainDatabase     = "database"
	DomainValidation   = "validation"
	DomainSystem       = "system"
)
