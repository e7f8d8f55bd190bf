package repositories

import (
	"errors"

	"freelance_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrSpecialtyNotFound = errors.New("specialty not found")
	ErrLangTypeNotFound  = errors.New("language type not found")
	ErrSlugAlreadyExists = errors.New("slug already exists")
)

type CatalogRepository interface {
	// Category operations
	CreateCategory(db *gorm.DB, category *models.Category) error
	FindCategoryByID(db *gorm.DB, id string) (*models.Category, error)
	FindCategoryBySlug(db *gorm.DB, slug string) (*models.Category, error)
	FindAllCategories(db *gorm.DB) ([]models.Category, error)
	UpdateCategory(db *gorm.DB, id string, updates map[string]interface{}) error
	DeleteCategory(db *gorm.DB, id string) error
	CategoryExists(db *gorm.DB, id string) (bool, error)

	// Specialty operations
	CreateSpecialty(db *gorm.DB, specialty *models.Specialty) error
	FindSpecialtyByID(db *gorm.DB, id string) (*models.Specialty, error)
	FindSpecialties(db *gorm.DB, categoryID string) ([]models.Specialty, error)
	FindSpecialtiesByIDs(db *gorm.DB, ids []string) ([]models.Specialty, error)
	UpdateSpecialty(db *gorm.DB, id string, updates map[string]interface{}) error
	DeleteSpecialty(db *gorm.DB, id string) error

	// LangType operations
	CreateLangType(db *gorm.DB, langType *models.LangType) error
	FindLangTypeByID(db *gorm.DB, id string) (*models.LangType, error)
	FindAllLangTypes(db *gorm.DB) ([]models.LangType, error)
	FindLangTypesByIDs(db *gorm.DB, ids []string) ([]models.LangType, error)
	UpdateLangType(db *gorm.DB, id string, updates map[string]interface{}) error
	DeleteLangType(db *gorm.DB, id string) error

	// Slug helpers
	SlugExists(db *gorm.DB, model interface{}, slug, excludeID string) (bool, error)
}

type CatalogRepositoryImpl struct{}

func NewCatalogRepository() CatalogRepository {
	return &CatalogRepositoryImpl{}
}

// Category operations

func (r *CatalogRepositoryImpl) CreateCategory(db *gorm.DB, category *models.Category) error {
	taken, err := r.SlugExists(db, &models.Category{}, category.Slug, "")
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugAlreadyExists
	}
	return db.Omit("Specialties").Create(category).Error
}

func (r *CatalogRepositoryImpl) FindCategoryByID(db *gorm.DB, id string) (*models.Category, error) {
	var category models.Category
	err := first(db.Preload("Specialties", orderByName), &category, ErrCategoryNotFound, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CatalogRepositoryImpl) FindCategoryBySlug(db *gorm.DB, slug string) (*models.Category, error) {
	var category models.Category
	err := first(db.Preload("Specialties", orderByName), &category, ErrCategoryNotFound, "slug = ?", slug)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CatalogRepositoryImpl) FindAllCategories(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := db.Preload("Specialties", orderByName).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CatalogRepositoryImpl) UpdateCategory(db *gorm.DB, id string, updates map[string]interface{}) error {
	if slug, ok := updates["slug"].(string); ok {
		taken, err := r.SlugExists(db, &models.Category{}, slug, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugAlreadyExists
		}
	}
	return updateWhere(db, &models.Category{}, updates, ErrCategoryNotFound, "id = ?", id)
}

// DeleteCategory удаляет категорию вместе с ее специальностями
// и их связями с профилями.
func (r *CatalogRepositoryImpl) DeleteCategory(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		ok, err := r.CategoryExists(tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCategoryNotFound
		}

		if err := tx.Exec(
			"DELETE FROM profile_specialties WHERE specialty_id IN (SELECT id FROM specialties WHERE category_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.Specialty{}).Error; err != nil {
			return err
		}
		return deleteWhere(tx, &models.Category{}, ErrCategoryNotFound, "id = ?", id)
	})
}

func (r *CatalogRepositoryImpl) CategoryExists(db *gorm.DB, id string) (bool, error) {
	return exists(db, &models.Category{}, "id = ?", id)
}

// Specialty operations

func (r *CatalogRepositoryImpl) CreateSpecialty(db *gorm.DB, specialty *models.Specialty) error {
	ok, err := r.CategoryExists(db, specialty.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}

	taken, err := r.SlugExists(db, &models.Specialty{}, specialty.Slug, "")
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugAlreadyExists
	}
	return db.Create(specialty).Error
}

func (r *CatalogRepositoryImpl) FindSpecialtyByID(db *gorm.DB, id string) (*models.Specialty, error) {
	var specialty models.Specialty
	if err := first(db, &specialty, ErrSpecialtyNotFound, "id = ?", id); err != nil {
		return nil, err
	}
	return &specialty, nil
}

// FindSpecialties - все специальности или только одной категории
func (r *CatalogRepositoryImpl) FindSpecialties(db *gorm.DB, categoryID string) ([]models.Specialty, error) {
	var specialties []models.Specialty
	query := db.Order("name ASC")
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	err := query.Find(&specialties).Error
	return specialties, err
}

// FindSpecialtiesByIDs возвращает ErrSpecialtyNotFound, если хотя бы одного id нет.
func (r *CatalogRepositoryImpl) FindSpecialtiesByIDs(db *gorm.DB, ids []string) ([]models.Specialty, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []models.Specialty{}, nil
	}
	var specialties []models.Specialty
	if err := db.Where("id IN ?", ids).Order("name ASC").Find(&specialties).Error; err != nil {
		return nil, err
	}
	if len(specialties) != len(ids) {
		return nil, ErrSpecialtyNotFound
	}
	return specialties, nil
}

func (r *CatalogRepositoryImpl) UpdateSpecialty(db *gorm.DB, id string, updates map[string]interface{}) error {
	if categoryID, ok := updates["category_id"].(string); ok {
		found, err := r.CategoryExists(db, categoryID)
		if err != nil {
			return err
		}
		if !found {
			return ErrCategoryNotFound
		}
	}
	if slug, ok := updates["slug"].(string); ok {
		taken, err := r.SlugExists(db, &models.Specialty{}, slug, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugAlreadyExists
		}
	}
	return updateWhere(db, &models.Specialty{}, updates, ErrSpecialtyNotFound, "id = ?", id)
}

func (r *CatalogRepositoryImpl) DeleteSpecialty(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM profile_specialties WHERE specialty_id = ?", id).Error; err != nil {
			return err
		}
		return deleteWhere(tx, &models.Specialty{}, ErrSpecialtyNotFound, "id = ?", id)
	})
}

// LangType operations

func (r *CatalogRepositoryImpl) CreateLangType(db *gorm.DB, langType *models.LangType) error {
	taken, err := r.SlugExists(db, &models.LangType{}, langType.Slug, "")
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugAlreadyExists
	}
	return db.Create(langType).Error
}

func (r *CatalogRepositoryImpl) FindLangTypeByID(db *gorm.DB, id string) (*models.LangType, error) {
	var langType models.LangType
	if err := first(db, &langType, ErrLangTypeNotFound, "id = ?", id); err != nil {
		return nil, err
	}
	return &langType, nil
}

func (r *CatalogRepositoryImpl) FindAllLangTypes(db *gorm.DB) ([]models.LangType, error) {
	var langTypes []models.LangType
	err := db.Order("name ASC").Find(&langTypes).Error
	return langTypes, err
}

func (r *CatalogRepositoryImpl) FindLangTypesByIDs(db *gorm.DB, ids []string) ([]models.LangType, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []models.LangType{}, nil
	}
	var langTypes []models.LangType
	if err := db.Where("id IN ?", ids).Order("name ASC").Find(&langTypes).Error; err != nil {
		return nil, err
	}
	if len(langTypes) != len(ids) {
		return nil, ErrLangTypeNotFound
	}
	return langTypes, nil
}

func (r *CatalogRepositoryImpl) UpdateLangType(db *gorm.DB, id string, updates map[string]interface{}) error {
	if slug, ok := updates["slug"].(string); ok {
		taken, err := r.SlugExists(db, &models.LangType{}, slug, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugAlreadyExists
		}
	}
	return updateWhere(db, &models.LangType{}, updates, ErrLangTypeNotFound, "id = ?", id)
}

func (r *CatalogRepositoryImpl) DeleteLangType(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM lang_lang_types WHERE lang_type_id = ?", id).Error; err != nil {
			return err
		}
		return deleteWhere(tx, &models.LangType{}, ErrLangTypeNotFound, "id = ?", id)
	})
}

// SlugExists проверяет занятость slug в таблице model, не считая записи excludeID.
func (r *CatalogRepositoryImpl) SlugExists(db *gorm.DB, model interface{}, slug, excludeID string) (bool, error) {
	if excludeID == "" {
		return exists(db, model, "slug = ?", slug)
	}
	return exists(db, model, "slug = ? AND id <> ?", slug, excludeID)
}

func orderByName(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
