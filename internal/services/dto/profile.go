package dto

// DateLayout - формат дат в запросах (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// ==========================
// Profile
// ==========================

type CreateProfileRequest struct {
	Pic          string   `json:"pic" validate:"max=255"`
	Headline     *string  `json:"headline,omitempty" validate:"omitempty,max=255"`
	Overview     *string  `json:"overview,omitempty"`
	SpecialtyIDs []string `json:"specialty_ids" validate:"omitempty,dive,required"`
}

// UpdateProfileRequest: SpecialtyIDs == nil - не менять, пустой срез - очистить
type UpdateProfileRequest struct {
	Pic          *string  `json:"pic,omitempty" validate:"omitempty,max=255"`
	Headline     *string  `json:"headline,omitempty" validate:"omitempty,max=255"`
	Overview     *string  `json:"overview,omitempty"`
	SpecialtyIDs []string `json:"specialty_ids,omitempty" validate:"omitempty,dive,required"`
}

// ==========================
// Cert & Employment
// ==========================

type CreateCertRequest struct {
	Name string `json:"name" validate:"required,not-blank,max=255"`
	Desc string `json:"desc"`
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type UpdateCertRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,not-blank,max=255"`
	Desc *string `json:"desc,omitempty"`
	Date *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreateEmploymentRequest struct {
	Name      string `json:"name" validate:"required,not-blank,max=255"`
	Position  string `json:"position" validate:"required,not-blank,max=255"`
	Desc      string `json:"desc"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type UpdateEmploymentRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,not-blank,max=255"`
	Position  *string `json:"position,omitempty" validate:"omitempty,not-blank,max=255"`
	Desc      *string `json:"desc,omitempty"`
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ==========================
// Lang
// ==========================

type LangRequest struct {
	LangTypeIDs []string `json:"lang_type_ids" validate:"omitempty,dive,required"`
}
