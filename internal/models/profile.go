package models

import "gorm.io/datatypes"

// Profile - публичная карточка фрилансера, не больше одной на пользователя.
// Pic хранит только путь к файлу, загрузкой занимается не этот сервис.
type Profile struct {
	BaseModel
	UserID      string      `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`
	Specialties []Specialty `gorm:"many2many:profile_specialties;constraint:OnDelete:CASCADE" json:"specialties,omitempty"`
	Pic         string      `gorm:"size:255" json:"pic"`
	Headline    *string     `gorm:"size:255" json:"headline,omitempty"`
	Overview    *string     `gorm:"type:text" json:"overview,omitempty"`
}

func (p Profile) String() string {
	if p.Headline == nil {
		return ""
	}
	return *p.Headline
}

// Cert - сертификат пользователя
type Cert struct {
	BaseModel
	UserID string         `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name   string         `gorm:"size:255;not null" json:"name"`
	Desc   string         `gorm:"type:text" json:"desc"`
	Date   datatypes.Date `gorm:"not null" json:"date"`
}

// Employment - запись об опыте работы
type Employment struct {
	BaseModel
	UserID    string         `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Position  string         `gorm:"size:255;not null" json:"position"`
	Desc      string         `gorm:"type:text" json:"desc"`
	StartDate datatypes.Date `gorm:"not null" json:"start_date"`
	EndDate   datatypes.Date `gorm:"not null" json:"end_date"`
}

// Lang - набор языков, на которых говорит пользователь
type Lang struct {
	BaseModel
	UserID    string     `gorm:"type:varchar(36);not null;index" json:"user_id"`
	LangTypes []LangType `gorm:"many2many:lang_lang_types;constraint:OnDelete:CASCADE" json:"lang_types,omitempty"`
}
