package models

// Tax - налоговые данные, один-к-одному с User
type Tax struct {
	BaseModel
	UserID    string `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`
	TIN       string `gorm:"column:tin;size:20;not null" json:"tin"`
	Signature string `gorm:"size:255;not null" json:"signature"`
	Status    bool   `gorm:"not null;default:false" json:"status"`
}

func (Tax) TableName() string {
	return "taxes"
}

// Identity - документ, удостоверяющий личность. IDCard - путь к скану.
type Identity struct {
	BaseModel
	UserID  string `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`
	IDCard  string `gorm:"column:id_card;size:255;not null" json:"id_card"`
	Status  bool   `gorm:"not null;default:false" json:"status"`
	Country string `gorm:"size:255;not null" json:"country"`
	State   string `gorm:"size:255;not null" json:"state"`
	Address string `gorm:"size:255;not null" json:"address"`
}

func (Identity) TableName() string {
	return "identities"
}

// Business - форма ведения деятельности
type Business struct {
	BaseModel
	UserID  string       `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`
	Biz     BusinessType `gorm:"type:varchar(20);not null;default:'Individual'" json:"biz"`
	BizName *string      `gorm:"size:255" json:"biz_name,omitempty"`
}

func (Business) TableName() string {
	return "businesses"
}

func (b Business) String() string {
	if b.BizName != nil && *b.BizName != "" {
		return *b.BizName
	}
	return string(b.Biz)
}

// Badge - маркетинговые флаги профиля
type Badge struct {
	BaseModel
	UserID     string `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`
	Avail      bool   `gorm:"not null;default:false" json:"avail"`
	RisingStar bool   `gorm:"not null;default:false" json:"rising_star"`
	TopRated   bool   `gorm:"not null;default:false" json:"top_rated"`
	Plus       bool   `gorm:"not null;default:false" json:"plus"`
}
