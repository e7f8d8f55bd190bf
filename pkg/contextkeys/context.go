package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - ключ, по которому хранится *gorm.DB в context
	DBContextKey = contextKey("db")
	// RequestIDKey - ключ для X-Request-ID
	RequestIDKey = contextKey("request_id")
)
