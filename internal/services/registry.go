package services

import (
	"freelance_backend/internal/repositories"
	"freelance_backend/internal/validator"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	UserService         UserService
	CatalogService      CatalogService
	ProfileService      ProfileService
	VerificationService VerificationService
	PointService        PointService
}

// NewServiceContainer собирает репозитории и сервисы с общим валидатором.
func NewServiceContainer(v *validator.Validator) *ServiceContainer {
	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository()
	catalogRepo := repositories.NewCatalogRepository()
	profileRepo := repositories.NewProfileRepository()
	verificationRepo := repositories.NewVerificationRepository()
	pointRepo := repositories.NewPointRepository()

	// --- Инициализация сервисов ---
	return &ServiceContainer{
		UserService:         NewUserService(userRepo, v),
		CatalogService:      NewCatalogService(catalogRepo, v),
		ProfileService:      NewProfileService(profileRepo, userRepo, catalogRepo, v),
		VerificationService: NewVerificationService(verificationRepo, userRepo, v),
		PointService:        NewPointService(pointRepo, userRepo, v),
	}
}
