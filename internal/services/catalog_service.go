package services

import (
	"fmt"
	"strings"

	"freelance_backend/internal/logger"
	"freelance_backend/internal/models"
	"freelance_backend/internal/repositories"
	"freelance_backend/internal/services/dto"
	"freelance_backend/internal/utils"
	"freelance_backend/internal/validator"

	"gorm.io/gorm"
)

// maxSlugAttempts - сколько суффиксов -2, -3, ... пробуем для автоматического slug
const maxSlugAttempts = 50

type CatalogService interface {
	// Category
	CreateCategory(db *gorm.DB, req *dto.CreateCategoryRequest) (*models.Category, error)
	GetCategory(db *gorm.DB, id string) (*models.Category, error)
	GetCategoryBySlug(db *gorm.DB, slug string) (*models.Category, error)
	ListCategories(db *gorm.DB) ([]models.Category, error)
	UpdateCategory(db *gorm.DB, id string, req *dto.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(db *gorm.DB, id string) error

	// Specialty
	CreateSpecialty(db *gorm.DB, req *dto.CreateSpecialtyRequest) (*models.Specialty, error)
	GetSpecialty(db *gorm.DB, id string) (*models.Specialty, error)
	ListSpecialties(db *gorm.DB, categoryID string) ([]models.Specialty, error)
	UpdateSpecialty(db *gorm.DB, id string, req *dto.UpdateSpecialtyRequest) (*models.Specialty, error)
	DeleteSpecialty(db *gorm.DB, id string) error

	// LangType
	CreateLangType(db *gorm.DB, req *dto.CreateLangTypeRequest) (*models.LangType, error)
	GetLangType(db *gorm.DB, id string) (*models.LangType, error)
	ListLangTypes(db *gorm.DB) ([]models.LangType, error)
	UpdateLangType(db *gorm.DB, id string, req *dto.UpdateLangTypeRequest) (*models.LangType, error)
	DeleteLangType(db *gorm.DB, id string) error
}

type CatalogServiceImpl struct {
	catalogRepo repositories.CatalogRepository
	validator   *validator.Validator
}

func NewCatalogService(catalogRepo repositories.CatalogRepository, v *validator.Validator) CatalogService {
	return &CatalogServiceImpl{
		catalogRepo: catalogRepo,
		validator:   v,
	}
}

// ==========================
// Category
// ==========================

func (s *CatalogServiceImpl) CreateCategory(db *gorm.DB, req *dto.CreateCategoryRequest) (*models.Category, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	category := &models.Category{Name: strings.TrimSpace(req.Name)}
	err := db.Transaction(func(tx *gorm.DB) error {
		slug, err := s.resolveSlug(tx, &models.Category{}, req.Slug, category.Name)
		if err != nil {
			return err
		}
		category.Slug = slug
		return s.catalogRepo.CreateCategory(tx, category)
	})
	if err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(db.Statement.Context, "category created", "category_id", category.ID, "slug", category.Slug)
	return category, nil
}

func (s *CatalogServiceImpl) GetCategory(db *gorm.DB, id string) (*models.Category, error) {
	category, err := s.catalogRepo.FindCategoryByID(db, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return category, nil
}

func (s *CatalogServiceImpl) GetCategoryBySlug(db *gorm.DB, slug string) (*models.Category, error) {
	category, err := s.catalogRepo.FindCategoryBySlug(db, slug)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return category, nil
}

func (s *CatalogServiceImpl) ListCategories(db *gorm.DB) ([]models.Category, error) {
	categories, err := s.catalogRepo.FindAllCategories(db)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return categories, nil
}

func (s *CatalogServiceImpl) UpdateCategory(db *gorm.DB, id string, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	var category *models.Category
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.catalogRepo.UpdateCategory(tx, id, nameSlugUpdates(req.Name, req.Slug)); err != nil {
			return err
		}
		var err error
		category, err = s.catalogRepo.FindCategoryByID(tx, id)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return category, nil
}

func (s *CatalogServiceImpl) DeleteCategory(db *gorm.DB, id string) error {
	if err := s.catalogRepo.DeleteCategory(db, id); err != nil {
		return handleRepoError(err)
	}
	logger.CtxInfo(db.Statement.Context, "category deleted", "category_id", id)
	return nil
}

// ==========================
// Specialty
// ==========================

func (s *CatalogServiceImpl) CreateSpecialty(db *gorm.DB, req *dto.CreateSpecialtyRequest) (*models.Specialty, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	specialty := &models.Specialty{
		CategoryID: req.CategoryID,
		Name:       strings.TrimSpace(req.Name),
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		slug, err := s.resolveSlug(tx, &models.Specialty{}, req.Slug, specialty.Name)
		if err != nil {
			return err
		}
		specialty.Slug = slug
		return s.catalogRepo.CreateSpecialty(tx, specialty)
	})
	if err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(db.Statement.Context, "specialty created",
		"specialty_id", specialty.ID, "category_id", specialty.CategoryID)
	return specialty, nil
}

func (s *CatalogServiceImpl) GetSpecialty(db *gorm.DB, id string) (*models.Specialty, error) {
	specialty, err := s.catalogRepo.FindSpecialtyByID(db, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return specialty, nil
}

// ListSpecialties: пустой categoryID - все специальности.
// Для несуществующей категории возвращается CATALOG NOT_FOUND, а не пустой список.
func (s *CatalogServiceImpl) ListSpecialties(db *gorm.DB, categoryID string) ([]models.Specialty, error) {
	if categoryID != "" {
		ok, err := s.catalogRepo.CategoryExists(db, categoryID)
		if err != nil {
			return nil, handleRepoError(err)
		}
		if !ok {
			return nil, handleRepoError(repositories.ErrCategoryNotFound)
		}
	}
	specialties, err := s.catalogRepo.FindSpecialties(db, categoryID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return specialties, nil
}

func (s *CatalogServiceImpl) UpdateSpecialty(db *gorm.DB, id string, req *dto.UpdateSpecialtyRequest) (*models.Specialty, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	updates := nameSlugUpdates(req.Name, req.Slug)
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}

	var specialty *models.Specialty
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.catalogRepo.UpdateSpecialty(tx, id, updates); err != nil {
			return err
		}
		var err error
		specialty, err = s.catalogRepo.FindSpecialtyByID(tx, id)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return specialty, nil
}

func (s *CatalogServiceImpl) DeleteSpecialty(db *gorm.DB, id string) error {
	if err := s.catalogRepo.DeleteSpecialty(db, id); err != nil {
		return handleRepoError(err)
	}
	return nil
}

// ==========================
// LangType
// ==========================

func (s *CatalogServiceImpl) CreateLangType(db *gorm.DB, req *dto.CreateLangTypeRequest) (*models.LangType, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	langType := &models.LangType{Name: strings.TrimSpace(req.Name)}
	err := db.Transaction(func(tx *gorm.DB) error {
		slug, err := s.resolveSlug(tx, &models.LangType{}, req.Slug, langType.Name)
		if err != nil {
			return err
		}
		langType.Slug = slug
		return s.catalogRepo.CreateLangType(tx, langType)
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return langType, nil
}

func (s *CatalogServiceImpl) GetLangType(db *gorm.DB, id string) (*models.LangType, error) {
	langType, err := s.catalogRepo.FindLangTypeByID(db, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return langType, nil
}

func (s *CatalogServiceImpl) ListLangTypes(db *gorm.DB) ([]models.LangType, error) {
	langTypes, err := s.catalogRepo.FindAllLangTypes(db)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return langTypes, nil
}

func (s *CatalogServiceImpl) UpdateLangType(db *gorm.DB, id string, req *dto.UpdateLangTypeRequest) (*models.LangType, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	var langType *models.LangType
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.catalogRepo.UpdateLangType(tx, id, nameSlugUpdates(req.Name, req.Slug)); err != nil {
			return err
		}
		var err error
		langType, err = s.catalogRepo.FindLangTypeByID(tx, id)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return langType, nil
}

func (s *CatalogServiceImpl) DeleteLangType(db *gorm.DB, id string) error {
	if err := s.catalogRepo.DeleteLangType(db, id); err != nil {
		return handleRepoError(err)
	}
	return nil
}

// ==========================
// Helpers
// ==========================

// resolveSlug: явный slug используется как есть (занятость проверит репозиторий),
// иначе slug строится из name и при коллизии получает суффикс -2, -3, ...
func (s *CatalogServiceImpl) resolveSlug(db *gorm.DB, model interface{}, explicit, name string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	base := utils.Slugify(name)
	if base == "" {
		return "", fieldError("slug", "Could not be derived from name, please provide it explicitly")
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		taken, err := s.catalogRepo.SlugExists(db, model, candidate, "")
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		suffix := fmt.Sprintf("-%d", i)
		trimmed := base
		if len(trimmed)+len(suffix) > utils.MaxSlugLength {
			trimmed = trimmed[:utils.MaxSlugLength-len(suffix)]
		}
		candidate = trimmed + suffix
	}
	return "", repositories.ErrSlugAlreadyExists
}

func nameSlugUpdates(name, slug *string) map[string]interface{} {
	updates := make(map[string]interface{})
	if name != nil {
		updates["name"] = strings.TrimSpace(*name)
	}
	if slug != nil {
		updates["slug"] = *slug
	}
	return updates
}
