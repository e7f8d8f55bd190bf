package models

// User - учетная запись. Email - идентификатор для входа.
// Значения по умолчанию для Status/IsActive (true) выставляет сервис:
// gorm пропускает нулевые bool при вставке и подставил бы default из БД.
type User struct {
	BaseModel
	Email        string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	FirstName    string  `gorm:"size:200;not null" json:"first_name"`
	LastName     string  `gorm:"size:200;not null" json:"last_name"`
	Username     *string `gorm:"size:255;uniqueIndex" json:"username,omitempty"`
	Client       bool    `gorm:"not null" json:"client"`
	Freelancer   bool    `gorm:"not null" json:"freelancer"`
	Status       bool    `gorm:"not null" json:"status"`
	IsActive     bool    `gorm:"not null" json:"is_active"`
	IsStaff      bool    `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser  bool    `gorm:"not null;default:false" json:"is_superuser"`

	// Relations
	Profile     *Profile     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Certs       []Cert       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"certs,omitempty"`
	Employments []Employment `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"employments,omitempty"`
	Langs       []Lang       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"langs,omitempty"`
	Tax         *Tax         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"tax,omitempty"`
	Identity    *Identity    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"identity,omitempty"`
	Business    *Business    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"business,omitempty"`
	Badge       *Badge       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"badge,omitempty"`
	Point       *Point       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"point,omitempty"`
}

func (u User) String() string {
	return u.FirstName + " " + u.LastName
}
