package dto

import "freelance_backend/internal/models"

type TaxRequest struct {
	TIN       string `json:"tin" validate:"required,tin"`
	Signature string `json:"signature" validate:"required,not-blank,max=255"`
}

type UpdateTaxRequest struct {
	TIN       *string `json:"tin,omitempty" validate:"omitempty,tin"`
	Signature *string `json:"signature,omitempty" validate:"omitempty,not-blank,max=255"`
}

// IdentityRequest: IDCard - путь к уже загруженному скану документа
type IdentityRequest struct {
	IDCard  string `json:"id_card" validate:"required,max=255"`
	Country string `json:"country" validate:"required,not-blank,max=255"`
	State   string `json:"state" validate:"required,not-blank,max=255"`
	Address string `json:"address" validate:"required,not-blank,max=255"`
}

type UpdateIdentityRequest struct {
	IDCard  *string `json:"id_card,omitempty" validate:"omitempty,max=255"`
	Country *string `json:"country,omitempty" validate:"omitempty,not-blank,max=255"`
	State   *string `json:"state,omitempty" validate:"omitempty,not-blank,max=255"`
	Address *string `json:"address,omitempty" validate:"omitempty,not-blank,max=255"`
}

// BusinessRequest: пустой Biz означает Individual
type BusinessRequest struct {
	Biz     string  `json:"biz" validate:"omitempty,is-business-type"`
	BizName *string `json:"biz_name,omitempty" validate:"omitempty,max=255"`
}

type UpdateBadgeRequest struct {
	Avail      *bool `json:"avail,omitempty"`
	RisingStar *bool `json:"rising_star,omitempty"`
	TopRated   *bool `json:"top_rated,omitempty"`
	Plus       *bool `json:"plus,omitempty"`
}

// VerificationSummary - сводка по проверке пользователя
type VerificationSummary struct {
	UserID            string               `json:"user_id"`
	TaxSubmitted      bool                 `json:"tax_submitted"`
	TaxVerified       bool                 `json:"tax_verified"`
	IdentitySubmitted bool                 `json:"identity_submitted"`
	IdentityVerified  bool                 `json:"identity_verified"`
	BusinessType      *models.BusinessType `json:"business_type,omitempty"`
	FullyVerified     bool                 `json:"fully_verified"`
}
