package repositories

import (
	"errors"

	"freelance_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPointNotFound      = errors.New("point account not found")
	ErrPointAlreadyExists = errors.New("point account already exists for this user")
)

type PointRepository interface {
	CreatePoint(db *gorm.DB, point *models.Point) error
	FindPointByUserID(db *gorm.DB, userID string) (*models.Point, error)
	// FindPointByUserIDForUpdate блокирует строку до конца транзакции
	FindPointByUserIDForUpdate(db *gorm.DB, userID string) (*models.Point, error)
	UpdateBalance(db *gorm.DB, pointID string, amount int64) error
	DeletePoint(db *gorm.DB, userID string) error
	// FindPointOwners - до limit значений user_id, больших afterUserID, по возрастанию
	FindPointOwners(db *gorm.DB, afterUserID string, limit int) ([]string, error)

	CreateTransaction(db *gorm.DB, transaction *models.Transaction) error
	FindTransactions(db *gorm.DB, pointID string, page Pagination) ([]models.Transaction, int64, error)
	SumTransactions(db *gorm.DB, pointID string) (int64, error)
}

type PointRepositoryImpl struct{}

func NewPointRepository() PointRepository {
	return &PointRepositoryImpl{}
}

func (r *PointRepositoryImpl) CreatePoint(db *gorm.DB, point *models.Point) error {
	found, err := exists(db, &models.Point{}, "user_id = ?", point.UserID)
	if err != nil {
		return err
	}
	if found {
		return ErrPointAlreadyExists
	}
	return db.Omit("Transactions").Create(point).Error
}

func (r *PointRepositoryImpl) FindPointByUserID(db *gorm.DB, userID string) (*models.Point, error) {
	var point models.Point
	if err := first(db, &point, ErrPointNotFound, "user_id = ?", userID); err != nil {
		return nil, err
	}
	return &point, nil
}

func (r *PointRepositoryImpl) FindPointByUserIDForUpdate(db *gorm.DB, userID string) (*models.Point, error) {
	var point models.Point
	locked := db.Clauses(clause.Locking{Strength: "UPDATE"})
	if err := first(locked, &point, ErrPointNotFound, "user_id = ?", userID); err != nil {
		return nil, err
	}
	return &point, nil
}

func (r *PointRepositoryImpl) UpdateBalance(db *gorm.DB, pointID string, amount int64) error {
	return updateWhere(db, &models.Point{}, map[string]interface{}{"amount": amount}, ErrPointNotFound, "id = ?", pointID)
}

// DeletePoint удаляет счет вместе с историей транзакций.
func (r *PointRepositoryImpl) DeletePoint(db *gorm.DB, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM transactions WHERE point_id IN (SELECT id FROM points WHERE user_id = ?)", userID,
		).Error; err != nil {
			return err
		}
		return deleteWhere(tx, &models.Point{}, ErrPointNotFound, "user_id = ?", userID)
	})
}

func (r *PointRepositoryImpl) FindPointOwners(db *gorm.DB, afterUserID string, limit int) ([]string, error) {
	var userIDs []string
	err := db.Model(&models.Point{}).
		Where("user_id > ?", afterUserID).
		Order("user_id ASC").
		Limit(limit).
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

func (r *PointRepositoryImpl) CreateTransaction(db *gorm.DB, transaction *models.Transaction) error {
	return db.Create(transaction).Error
}

// FindTransactions - история счета, новые первыми
func (r *PointRepositoryImpl) FindTransactions(db *gorm.DB, pointID string, page Pagination) ([]models.Transaction, int64, error) {
	var total int64
	if err := db.Model(&models.Transaction{}).Where("point_id = ?", pointID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []models.Transaction
	err := page.apply(db.Where("point_id = ?", pointID)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&transactions).Error
	return transactions, total, err
}

func (r *PointRepositoryImpl) SumTransactions(db *gorm.DB, pointID string) (int64, error) {
	var sum int64
	err := db.Model(&models.Transaction{}).
		Where("point_id = ?", pointID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}
