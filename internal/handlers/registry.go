package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	HealthHandler *HealthHandler
}

func NewAppHandlers() *AppHandlers {
	base := NewBaseHandler()
	return &AppHandlers{
		HealthHandler: NewHealthHandler(base, SQLPinger{}),
	}
}
