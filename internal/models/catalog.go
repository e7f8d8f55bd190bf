package models

// Category - раздел таксономии навыков фрилансеров
type Category struct {
	BaseModel
	Name string `gorm:"size:255;not null" json:"name"`
	Slug string `gorm:"size:255;not null;uniqueIndex" json:"slug"`

	// Relations
	Specialties []Specialty `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"specialties,omitempty"`
}

func (c Category) String() string {
	return c.Name
}

// Specialty всегда принадлежит ровно одной категории
type Specialty struct {
	BaseModel
	CategoryID string `gorm:"type:varchar(36);not null;index" json:"category_id"`
	Name       string `gorm:"size:255;not null" json:"name"`
	Slug       string `gorm:"size:255;not null;uniqueIndex" json:"slug"`
}

func (Specialty) TableName() string {
	return "specialties"
}

func (s Specialty) String() string {
	return s.Name
}

// LangType - справочник языков
type LangType struct {
	BaseModel
	Name string `gorm:"size:255;not null" json:"name"`
	Slug string `gorm:"size:255;not null;uniqueIndex" json:"slug"`
}

func (l LangType) String() string {
	return l.Name
}
