package dto

// CreateUserRequest - данные новой учетной записи.
// Password == nil создает пользователя без пароля (войти с ним нельзя).
type CreateUserRequest struct {
	Email       string  `json:"email" validate:"required,email,max=255"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	FirstName   string  `json:"first_name" validate:"required,not-blank,max=200"`
	LastName    string  `json:"last_name" validate:"required,not-blank,max=200"`
	Username    *string `json:"username,omitempty" validate:"omitempty,not-blank,max=255"`
	Client      bool    `json:"client"`
	Freelancer  bool    `json:"freelancer"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsStaff     *bool   `json:"is_staff,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
}

type UpdateUserRequest struct {
	Email      *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	FirstName  *string `json:"first_name,omitempty" validate:"omitempty,not-blank,max=200"`
	LastName   *string `json:"last_name,omitempty" validate:"omitempty,not-blank,max=200"`
	Username   *string `json:"username,omitempty" validate:"omitempty,not-blank,max=255"`
	Client     *bool   `json:"client,omitempty"`
	Freelancer *bool   `json:"freelancer,omitempty"`
	Status     *bool   `json:"status,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
	IsStaff    *bool   `json:"is_staff,omitempty"`
}

type ListUsersRequest struct {
	Client     *bool  `json:"client,omitempty" form:"client"`
	Freelancer *bool  `json:"freelancer,omitempty" form:"freelancer"`
	IsActive   *bool  `json:"is_active,omitempty" form:"is_active"`
	IsStaff    *bool  `json:"is_staff,omitempty" form:"is_staff"`
	Search     string `json:"search,omitempty" form:"search" validate:"max=255"`
	PaginationRequest
}
