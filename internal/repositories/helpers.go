package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// Pagination - параметры выборки страницы
type Pagination struct {
	Limit  int
	Offset int
}

func (p Pagination) apply(db *gorm.DB) *gorm.DB {
	if p.Limit > 0 {
		db = db.Limit(p.Limit)
	}
	if p.Offset > 0 {
		db = db.Offset(p.Offset)
	}
	return db
}

// first загружает одну запись и переводит ErrRecordNotFound в доменную ошибку.
func first(db *gorm.DB, dest interface{}, notFound error, query string, args ...interface{}) error {
	err := db.Where(query, args...).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// exists - есть ли хотя бы одна строка, подходящая под условие.
func exists(db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.Model(model).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// updateWhere применяет частичное обновление.
// MySQL возвращает 0 затронутых строк, если значения не изменились,
// поэтому при RowsAffected == 0 наличие строки проверяется отдельно.
func updateWhere(db *gorm.DB, model interface{}, updates map[string]interface{}, notFound error, query string, args ...interface{}) error {
	if len(updates) == 0 {
		ok, err := exists(db, model, query, args...)
		if err != nil {
			return err
		}
		if !ok {
			return notFound
		}
		return nil
	}

	result := db.Model(model).Where(query, args...).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		ok, err := exists(db, model, query, args...)
		if err != nil {
			return err
		}
		if !ok {
			return notFound
		}
	}
	return nil
}

// deleteWhere удаляет строки и возвращает notFound, если ничего не удалено.
func deleteWhere(db *gorm.DB, model interface{}, notFound error, query string, args ...interface{}) error {
	result := db.Where(query, args...).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}
