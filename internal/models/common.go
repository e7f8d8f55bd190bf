package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel - общие поля всех таблиц.
// ID хранится как varchar(36), чтобы схема одинаково работала в Postgres и MySQL.
type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate проставляет UUID, если он не задан явно.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// All возвращает модели в порядке миграции (родители раньше детей).
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Specialty{},
		&LangType{},
		&User{},
		&Profile{},
		&Cert{},
		&Employment{},
		&Lang{},
		&Tax{},
		&Identity{},
		&Business{},
		&Badge{},
		&Point{},
		&Transaction{},
	}
}
