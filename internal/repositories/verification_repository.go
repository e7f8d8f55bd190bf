package repositories

import (
	"errors"

	"freelance_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTaxNotFound           = errors.New("tax record not found")
	ErrTaxAlreadyExists      = errors.New("tax record already exists for this user")
	ErrIdentityNotFound      = errors.New("identity record not found")
	ErrIdentityAlreadyExists = errors.New("identity record already exists for this user")
	ErrBusinessNotFound      = errors.New("business record not found")
	ErrBadgeNotFound         = errors.New("badge not found")
	ErrBadgeAlreadyExists    = errors.New("badge already exists for this user")
)

type VerificationRepository interface {
	// Tax operations
	CreateTax(db *gorm.DB, tax *models.Tax) error
	FindTaxByUserID(db *gorm.DB, userID string) (*models.Tax, error)
	UpdateTax(db *gorm.DB, userID string, updates map[string]interface{}) error
	DeleteTax(db *gorm.DB, userID string) error

	// Identity operations
	CreateIdentity(db *gorm.DB, identity *models.Identity) error
	FindIdentityByUserID(db *gorm.DB, userID string) (*models.Identity, error)
	UpdateIdentity(db *gorm.DB, userID string, updates map[string]interface{}) error
	DeleteIdentity(db *gorm.DB, userID string) error

	// Business operations
	UpsertBusiness(db *gorm.DB, business *models.Business) error
	FindBusinessByUserID(db *gorm.DB, userID string) (*models.Business, error)
	DeleteBusiness(db *gorm.DB, userID string) error

	// Badge operations
	CreateBadge(db *gorm.DB, badge *models.Badge) error
	FindBadgeByUserID(db *gorm.DB, userID string) (*models.Badge, error)
	UpdateBadge(db *gorm.DB, userID string, updates map[string]interface{}) error
	DeleteBadge(db *gorm.DB, userID string) error
}

type VerificationRepositoryImpl struct{}

func NewVerificationRepository() VerificationRepository {
	return &VerificationRepositoryImpl{}
}

// Tax operations

func (r *VerificationRepositoryImpl) CreateTax(db *gorm.DB, tax *models.Tax) error {
	found, err := exists(db, &models.Tax{}, "user_id = ?", tax.UserID)
	if err != nil {
		return err
	}
	if found {
		return ErrTaxAlreadyExists
	}
	return db.Create(tax).Error
}

func (r *VerificationRepositoryImpl) FindTaxByUserID(db *gorm.DB, userID string) (*models.Tax, error) {
	var tax models.Tax
	if err := first(db, &tax, ErrTaxNotFound, "user_id = ?", userID); err != nil {
		return nil, err
	}
	return &tax, nil
}

func (r *VerificationRepositoryImpl) UpdateTax(db *gorm.DB, userID string, updates map[string]interface{}) error {
	return updateWhere(db, &models.Tax{}, updates, ErrTaxNotFound, "user_id = ?", userID)
}

func (r *VerificationRepositoryImpl) DeleteTax(db *gorm.DB, userID string) error {
	return deleteWhere(db, &models.Tax{}, ErrTaxNotFound, "user_id = ?", userID)
}

// Identity operations

func (r *VerificationRepositoryImpl) CreateIdentity(db *gorm.DB, identity *models.Identity) error {
	found, err := exists(db, &models.Identity{}, "user_id = ?", identity.UserID)
	if err != nil {
		return err
	}
	if found {
		return ErrIdentityAlreadyExists
	}
	return db.Create(identity).Error
}

func (r *VerificationRepositoryImpl) FindIdentityByUserID(db *gorm.DB, userID string) (*models.Identity, error) {
	var identity models.Identity
	if err := first(db, &identity, ErrIdentityNotFound, "user_id = ?", userID); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *VerificationRepositoryImpl) UpdateIdentity(db *gorm.DB, userID string, updates map[string]interface{}) error {
	return updateWhere(db, &models.Identity{}, updates, ErrIdentityNotFound, "user_id = ?", userID)
}

func (r *VerificationRepositoryImpl) DeleteIdentity(db *gorm.DB, userID string) error {
	return deleteWhere(db, &models.Identity{}, ErrIdentityNotFound, "user_id = ?", userID)
}

// Business operations

// UpsertBusiness создает запись или обновляет существующую по уникальному user_id.
// После вызова business содержит актуальную строку из БД.
func (r *VerificationRepositoryImpl) UpsertBusiness(db *gorm.DB, business *models.Business) error {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"biz", "biz_name", "updated_at"}),
	}).Create(business).Error
	if err != nil {
		return err
	}

	stored, err := r.FindBusinessByUserID(db, business.UserID)
	if err != nil {
		return err
	}
	*business = *stored
	return nil
}

func (r *VerificationRepositoryImpl) FindBusinessByUserID(db *gorm.DB, userID string) (*models.Business, error) {
	var business models.Business
	if err := first(db, &business, ErrBusinessNotFound, "user_id = ?", userID); err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *VerificationRepositoryImpl) DeleteBusiness(db *gorm.DB, userID string) error {
	return deleteWhere(db, &models.Business{}, ErrBusinessNotFound, "user_id = ?", userID)
}

// Badge operations

func (r *VerificationRepositoryImpl) CreateBadge(db *gorm.DB, badge *models.Badge) error {
	found, err := exists(db, &models.Badge{}, "user_id = ?", badge.UserID)
	if err != nil {
		return err
	}
	if found {
		return ErrBadgeAlreadyExists
	}
	return db.Create(badge).Error
}

func (r *VerificationRepositoryImpl) FindBadgeByUserID(db *gorm.DB, userID string) (*models.Badge, error) {
	var badge models.Badge
	if err := first(db, &badge, ErrBadgeNotFound, "user_id = ?", userID); err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *VerificationRepositoryImpl) UpdateBadge(db *gorm.DB, userID string, updates map[string]interface{}) error {
	return updateWhere(db, &models.Badge{}, updates, ErrBadgeNotFound, "user_id = ?", userID)
}

func (r *VerificationRepositoryImpl) DeleteBadge(db *gorm.DB, userID string) error {
	return deleteWhere(db, &models.Badge{}, ErrBadgeNotFound, "user_id = ?", userID)
}
