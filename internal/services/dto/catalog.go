package dto

// Если slug не указан, он строится из name

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,not-blank,max=255"`
	Slug string `json:"slug" validate:"omitempty,slug,max=255"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,not-blank,max=255"`
	Slug *string `json:"slug,omitempty" validate:"omitempty,slug,max=255"`
}

type CreateSpecialtyRequest struct {
	CategoryID string `json:"category_id" validate:"required"`
	Name       string `json:"name" validate:"required,not-blank,max=255"`
	Slug       string `json:"slug" validate:"omitempty,slug,max=255"`
}

type UpdateSpecialtyRequest struct {
	CategoryID *string `json:"category_id,omitempty" validate:"omitempty,not-blank"`
	Name       *string `json:"name,omitempty" validate:"omitempty,not-blank,max=255"`
	Slug       *string `json:"slug,omitempty" validate:"omitempty,slug,max=255"`
}

type CreateLangTypeRequest struct {
	Name string `json:"name" validate:"required,not-blank,max=255"`
	Slug string `json:"slug" validate:"omitempty,slug,max=255"`
}

type UpdateLangTypeRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,not-blank,max=255"`
	Slug *string `json:"slug,omitempty" validate:"omitempty,slug,max=255"`
}
