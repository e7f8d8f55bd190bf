package repositories

import (
	"errors"

	"freelance_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this user")
	ErrCertNotFound         = errors.New("certificate not found")
	ErrEmploymentNotFound   = errors.New("employment not found")
	ErrLangNotFound         = errors.New("spoken language entry not found")
)

type ProfileRepository interface {
	// Profile operations
	CreateProfile(db *gorm.DB, profile *models.Profile) error
	FindProfileByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	UpdateProfile(db *gorm.DB, userID string, updates map[string]interface{}) error
	ReplaceProfileSpecialties(db *gorm.DB, profile *models.Profile, specialties []models.Specialty) error
	DeleteProfile(db *gorm.DB, userID string) error

	// Cert operations
	CreateCert(db *gorm.DB, cert *models.Cert) error
	FindCertByID(db *gorm.DB, id string) (*models.Cert, error)
	FindCertsByUser(db *gorm.DB, userID string) ([]models.Cert, error)
	UpdateCert(db *gorm.DB, id string, updates map[string]interface{}) error
	DeleteCert(db *gorm.DB, id string) error

	// Employment operations
	CreateEmployment(db *gorm.DB, employment *models.Employment) error
	FindEmploymentByID(db *gorm.DB, id string) (*models.Employment, error)
	FindEmploymentsByUser(db *gorm.DB, userID string) ([]models.Employment, error)
	UpdateEmployment(db *gorm.DB, id string, updates map[string]interface{}) error
	DeleteEmployment(db *gorm.DB, id string) error

	// Lang operations
	CreateLang(db *gorm.DB, lang *models.Lang) error
	FindLangByID(db *gorm.DB, id string) (*models.Lang, error)
	FindLangsByUser(db *gorm.DB, userID string) ([]models.Lang, error)
	ReplaceLangTypes(db *gorm.DB, lang *models.Lang, langTypes []models.LangType) error
	DeleteLang(db *gorm.DB, id string) error
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

// Profile operations

func (r *ProfileRepositoryImpl) CreateProfile(db *gorm.DB, profile *models.Profile) error {
	found, err := exists(db, &models.Profile{}, "user_id = ?", profile.UserID)
	if err != nil {
		return err
	}
	if found {
		return ErrProfileAlreadyExists
	}
	// Специальности уже существуют: пишем только строки связи
	return db.Omit("Specialties.*").Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindProfileByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := first(db.Preload("Specialties", orderByName), &profile, ErrProfileNotFound, "user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateProfile(db *gorm.DB, userID string, updates map[string]interface{}) error {
	return updateWhere(db, &models.Profile{}, updates, ErrProfileNotFound, "user_id = ?", userID)
}

func (r *ProfileRepositoryImpl) ReplaceProfileSpecialties(db *gorm.DB, profile *models.Profile, specialties []models.Specialty) error {
	if len(specialties) == 0 {
		return db.Model(profile).Association("Specialties").Clear()
	}
	return db.Model(profile).Association("Specialties").Replace(specialties)
}

func (r *ProfileRepositoryImpl) DeleteProfile(db *gorm.DB, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM profile_specialties WHERE profile_id IN (SELECT id FROM profiles WHERE user_id = ?)", userID,
		).Error; err != nil {
			return err
		}
		return deleteWhere(tx, &models.Profile{}, ErrProfileNotFound, "user_id = ?", userID)
	})
}

// Cert operations

func (r *ProfileRepositoryImpl) CreateCert(db *gorm.DB, cert *models.Cert) error {
	return db.Create(cert).Error
}

func (r *ProfileRepositoryImpl) FindCertByID(db *gorm.DB, id string) (*models.Cert, error) {
	var cert models.Cert
	if err := first(db, &cert, ErrCertNotFound, "id = ?", id); err != nil {
		return nil, err
	}
	return &cert, nil
}

// FindCertsByUser - новые сертификаты первыми
func (r *ProfileRepositoryImpl) FindCertsByUser(db *gorm.DB, userID string) ([]models.Cert, error) {
	var certs []models.Cert
	err := db.Where("user_id = ?", userID).Order("date DESC").Order("created_at DESC").Find(&certs).Error
	return certs, err
}

func (r *ProfileRepositoryImpl) UpdateCert(db *gorm.DB, id string, updates map[string]interface{}) error {
	return updateWhere(db, &models.Cert{}, updates, ErrCertNotFound, "id = ?", id)
}

func (r *ProfileRepositoryImpl) DeleteCert(db *gorm.DB, id string) error {
	return deleteWhere(db, &models.Cert{}, ErrCertNotFound, "id = ?", id)
}

// Employment operations

func (r *ProfileRepositoryImpl) CreateEmployment(db *gorm.DB, employment *models.Employment) error {
	return db.Create(employment).Error
}

func (r *ProfileRepositoryImpl) FindEmploymentByID(db *gorm.DB, id string) (*models.Employment, error) {
	var employment models.Employment
	if err := first(db, &employment, ErrEmploymentNotFound, "id = ?", id); err != nil {
		return nil, err
	}
	return &employment, nil
}

func (r *ProfileRepositoryImpl) FindEmploymentsByUser(db *gorm.DB, userID string) ([]models.Employment, error) {
	var employments []models.Employment
	err := db.Where("user_id = ?", userID).Order("start_date DESC").Find(&employments).Error
	return employments, err
}

func (r *ProfileRepositoryImpl) UpdateEmployment(db *gorm.DB, id string, updates map[string]interface{}) error {
	return updateWhere(db, &models.Employment{}, updates, ErrEmploymentNotFound, "id = ?", id)
}

func (r *ProfileRepositoryImpl) DeleteEmployment(db *gorm.DB, id string) error {
	return deleteWhere(db, &models.Employment{}, ErrEmploymentNotFound, "id = ?", id)
}

// Lang operations

func (r *ProfileRepositoryImpl) CreateLang(db *gorm.DB, lang *models.Lang) error {
	return db.Omit("LangTypes.*").Create(lang).Error
}

func (r *ProfileRepositoryImpl) FindLangByID(db *gorm.DB, id string) (*models.Lang, error) {
	var lang models.Lang
	if err := first(db.Preload("LangTypes", orderByName), &lang, ErrLangNotFound, "id = ?", id); err != nil {
		return nil, err
	}
	return &lang, nil
}

func (r *ProfileRepositoryImpl) FindLangsByUser(db *gorm.DB, userID string) ([]models.Lang, error) {
	var langs []models.Lang
	err := db.Preload("LangTypes", orderByName).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&langs).Error
	return langs, err
}

func (r *ProfileRepositoryImpl) ReplaceLangTypes(db *gorm.DB, lang *models.Lang, langTypes []models.LangType) error {
	if len(langTypes) == 0 {
		return db.Model(lang).Association("LangTypes").Clear()
	}
	return db.Model(lang).Association("LangTypes").Replace(langTypes)
}

func (r *ProfileRepositoryImpl) DeleteLang(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM lang_lang_types WHERE lang_id = ?", id).Error; err != nil {
			return err
		}
		return deleteWhere(tx, &models.Lang{}, ErrLangNotFound, "id = ?", id)
	})
}
