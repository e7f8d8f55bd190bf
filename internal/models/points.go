package models

// Point - баланс баллов пользователя
type Point struct {
	BaseModel
	UserID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`
	Amount int64  `gorm:"not null;default:0" json:"amount"`

	// Relations
	Transactions []Transaction `gorm:"foreignKey:PointID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}

// Transaction - движение по счету баллов. Amount со знаком:
// положительный - начисление, отрицательный - списание.
type Transaction struct {
	BaseModel
	PointID string `gorm:"type:varchar(36);not null;index" json:"point_id"`
	Amount  int64  `gorm:"not null" json:"amount"`
	Reason  string `gorm:"size:255" json:"reason"`
}
