package services

import (
	"errors"

	"freelance_backend/internal/logger"
	"freelance_backend/internal/models"
	"freelance_backend/internal/repositories"
	"freelance_backend/internal/services/dto"
	"freelance_backend/internal/validator"

	"gorm.io/gorm"
)

type VerificationService interface {
	// Tax
	SubmitTax(db *gorm.DB, userID string, req *dto.TaxRequest) (*models.Tax, error)
	GetTax(db *gorm.DB, userID string) (*models.Tax, error)
	UpdateTax(db *gorm.DB, userID string, req *dto.UpdateTaxRequest) (*models.Tax, error)
	SetTaxStatus(db *gorm.DB, userID string, verified bool) (*models.Tax, error)
	DeleteTax(db *gorm.DB, userID string) error

	// Identity
	SubmitIdentity(db *gorm.DB, userID string, req *dto.IdentityRequest) (*models.Identity, error)
	GetIdentity(db *gorm.DB, userID string) (*models.Identity, error)
	UpdateIdentity(db *gorm.DB, userID string, req *dto.UpdateIdentityRequest) (*models.Identity, error)
	SetIdentityStatus(db *gorm.DB, userID string, verified bool) (*models.Identity, error)
	DeleteIdentity(db *gorm.DB, userID string) error

	// Business
	SetBusiness(db *gorm.DB, userID string, req *dto.BusinessRequest) (*models.Business, error)
	GetBusiness(db *gorm.DB, userID string) (*models.Business, error)
	DeleteBusiness(db *gorm.DB, userID string) error

	// Badge
	GetOrCreateBadge(db *gorm.DB, userID string) (*models.Badge, error)
	UpdateBadge(db *gorm.DB, userID string, req *dto.UpdateBadgeRequest) (*models.Badge, error)
	DeleteBadge(db *gorm.DB, userID string) error

	GetVerificationSummary(db *gorm.DB, userID string) (*dto.VerificationSummary, error)
}

type VerificationServiceImpl struct {
	verificationRepo repositories.VerificationRepository
	userRepo         repositories.UserRepository
	validator        *validator.Validator
}

func NewVerificationService(
	verificationRepo repositories.VerificationRepository,
	userRepo repositories.UserRepository,
	v *validator.Validator,
) VerificationService {
	return &VerificationServiceImpl{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		validator:        v,
	}
}

// ==========================
// Tax
// ==========================

// SubmitTax сохраняет налоговые данные. Новая запись всегда не проверена.
func (s *VerificationServiceImpl) SubmitTax(db *gorm.DB, userID string, req *dto.TaxRequest) (*models.Tax, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	tax := &models.Tax{
		UserID:    userID,
		TIN:       req.TIN,
		Signature: req.Signature,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(tx, userID); err != nil {
			return err
		}
		return s.verificationRepo.CreateTax(tx, tax)
	})
	if err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(db.Statement.Context, "tax record submitted", "user_id", userID)
	return tax, nil
}

func (s *VerificationServiceImpl) GetTax(db *gorm.DB, userID string) (*models.Tax, error) {
	tax, err := s.verificationRepo.FindTaxByUserID(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return tax, nil
}

// UpdateTax: смена ИНН сбрасывает статус проверки.
func (s *VerificationServiceImpl) UpdateTax(db *gorm.DB, userID string, req *dto.UpdateTaxRequest) (*models.Tax, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	var tax *models.Tax
	err := db.Transaction(func(tx *gorm.DB) error {
		current, err := s.verificationRepo.FindTaxByUserID(tx, userID)
		if err != nil {
			return err
		}

		updates := make(map[string]interface{})
		if req.Signature != nil {
			updates["signature"] = *req.Signature
		}
		if req.TIN != nil && *req.TIN != current.TIN {
			updates["tin"] = *req.TIN
			updates["status"] = false
		}

		if err := s.verificationRepo.UpdateTax(tx, userID, updates); err != nil {
			return err
		}
		tax, err = s.verificationRepo.FindTaxByUserID(tx, userID)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return tax, nil
}

func (s *VerificationServiceImpl) SetTaxStatus(db *gorm.DB, userID string, verified bool) (*models.Tax, error) {
	var tax *models.Tax
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.verificationRepo.UpdateTax(tx, userID, map[string]interface{}{"status": verified}); err != nil {
			return err
		}
		var err error
		tax, err = s.verificationRepo.FindTaxByUserID(tx, userID)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(db.Statement.Context, "tax status changed", "user_id", userID, "verified", verified)
	return tax, nil
}

func (s *VerificationServiceImpl) DeleteTax(db *gorm.DB, userID string) error {
	return handleRepoError(s.verificationRepo.DeleteTax(db, userID))
}

// ==========================
// Identity
// ==========================

func (s *VerificationServiceImpl) SubmitIdentity(db *gorm.DB, userID string, req *dto.IdentityRequest) (*models.Identity, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	identity := &models.Identity{
		UserID:  userID,
		IDCard:  req.IDCard,
		Country: req.Country,
		State:   req.State,
		Address: req.Address,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(tx, userID); err != nil {
			return err
		}
		return s.verificationRepo.CreateIdentity(tx, identity)
	})
	if err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(db.Statement.Context, "identity submitted", "user_id", userID)
	return identity, nil
}

func (s *VerificationServiceImpl) GetIdentity(db *gorm.DB, userID string) (*models.Identity, error) {
	identity, err := s.verificationRepo.FindIdentityByUserID(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return identity, nil
}

// UpdateIdentity: любое изменение документа или адреса сбрасывает статус проверки.
func (s *VerificationServiceImpl) UpdateIdentity(db *gorm.DB, userID string, req *dto.UpdateIdentityRequest) (*models.Identity, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	var identity *models.Identity
	err := db.Transaction(func(tx *gorm.DB) error {
		current, err := s.verificationRepo.FindIdentityByUserID(tx, userID)
		if err != nil {
			return err
		}

		updates := make(map[string]interface{})
		setIfChanged(updates, "id_card", req.IDCard, current.IDCard)
		setIfChanged(updates, "country", req.Country, current.Country)
		setIfChanged(updates, "state", req.State, current.State)
		setIfChanged(updates, "address", req.Address, current.Address)
		if len(updates) > 0 {
			updates["status"] = false
		}

		if err := s.verificationRepo.UpdateIdentity(tx, userID, updates); err != nil {
			return err
		}
		identity, err = s.verificationRepo.FindIdentityByUserID(tx, userID)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return identity, nil
}

func (s *VerificationServiceImpl) SetIdentityStatus(db *gorm.DB, userID string, verified bool) (*models.Identity, error) {
	var identity *models.Identity
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.verificationRepo.UpdateIdentity(tx, userID, map[string]interface{}{"status": verified}); err != nil {
			return err
		}
		var err error
		identity, err = s.verificationRepo.FindIdentityByUserID(tx, userID)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(db.Statement.Context, "identity status changed", "user_id", userID, "verified", verified)
	return identity, nil
}

func (s *VerificationServiceImpl) DeleteIdentity(db *gorm.DB, userID string) error {
	return handleRepoError(s.verificationRepo.DeleteIdentity(db, userID))
}

// ==========================
// Business
// ==========================

// SetBusiness создает или заменяет запись о форме деятельности.
func (s *VerificationServiceImpl) SetBusiness(db *gorm.DB, userID string, req *dto.BusinessRequest) (*models.Business, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	biz := models.BusinessTypeIndividual
	if req.Biz != "" {
		biz = models.BusinessType(req.Biz)
	}
	business := &models.Business{
		UserID:  userID,
		Biz:     biz,
		BizName: req.BizName,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(tx, userID); err != nil {
			return err
		}
		return s.verificationRepo.UpsertBusiness(tx, business)
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return business, nil
}

func (s *VerificationServiceImpl) GetBusiness(db *gorm.DB, userID string) (*models.Business, error) {
	business, err := s.verificationRepo.FindBusinessByUserID(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return business, nil
}

func (s *VerificationServiceImpl) DeleteBusiness(db *gorm.DB, userID string) error {
	return handleRepoError(s.verificationRepo.DeleteBusiness(db, userID))
}

// ==========================
// Badge
// ==========================

// GetOrCreateBadge возвращает бейджи пользователя, создавая пустой набор при первом обращении.
func (s *VerificationServiceImpl) GetOrCreateBadge(db *gorm.DB, userID string) (*models.Badge, error) {
	var badge *models.Badge
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		badge, err = s.verificationRepo.FindBadgeByUserID(tx, userID)
		if !errors.Is(err, repositories.ErrBadgeNotFound) {
			return err
		}
		if _, err := s.userRepo.FindByID(tx, userID); err != nil {
			return err
		}
		badge = &models.Badge{UserID: userID}
		return s.verificationRepo.CreateBadge(tx, badge)
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return badge, nil
}

func (s *VerificationServiceImpl) UpdateBadge(db *gorm.DB, userID string, req *dto.UpdateBadgeRequest) (*models.Badge, error) {
	updates := make(map[string]interface{})
	if req.Avail != nil {
		updates["avail"] = *req.Avail
	}
	if req.RisingStar != nil {
		updates["rising_star"] = *req.RisingStar
	}
	if req.TopRated != nil {
		updates["top_rated"] = *req.TopRated
	}
	if req.Plus != nil {
		updates["plus"] = *req.Plus
	}

	var badge *models.Badge
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.GetOrCreateBadge(tx, userID); err != nil {
			return err
		}
		if err := s.verificationRepo.UpdateBadge(tx, userID, updates); err != nil {
			return err
		}
		var err error
		badge, err = s.verificationRepo.FindBadgeByUserID(tx, userID)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return badge, nil
}

func (s *VerificationServiceImpl) DeleteBadge(db *gorm.DB, userID string) error {
	return handleRepoError(s.verificationRepo.DeleteBadge(db, userID))
}

// ==========================
// Summary
// ==========================

// GetVerificationSummary собирает статусы проверок. Пользователь
// считается полностью проверенным, когда подтверждены и налоговые данные, и документ.
func (s *VerificationServiceImpl) GetVerificationSummary(db *gorm.DB, userID string) (*dto.VerificationSummary, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		return nil, handleRepoError(err)
	}

	summary := &dto.VerificationSummary{UserID: userID}

	tax, err := s.verificationRepo.FindTaxByUserID(db, userID)
	switch {
	case err == nil:
		summary.TaxSubmitted = true
		summary.TaxVerified = tax.Status
	case !errors.Is(err, repositories.ErrTaxNotFound):
		return nil, handleRepoError(err)
	}

	identity, err := s.verificationRepo.FindIdentityByUserID(db, userID)
	switch {
	case err == nil:
		summary.IdentitySubmitted = true
		summary.IdentityVerified = identity.Status
	case !errors.Is(err, repositories.ErrIdentityNotFound):
		return nil, handleRepoError(err)
	}

	business, err := s.verificationRepo.FindBusinessByUserID(db, userID)
	switch {
	case err == nil:
		biz := business.Biz
		summary.BusinessType = &biz
	case !errors.Is(err, repositories.ErrBusinessNotFound):
		return nil, handleRepoError(err)
	}

	summary.FullyVerified = summary.TaxVerified && summary.IdentityVerified
	return summary, nil
}

func setIfChanged(updates map[string]interface{}, column string, value *string, current string) {
	if value != nil && *value != current {
		updates[column] = *value
	}
}
