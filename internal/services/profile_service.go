package services

import (
	"time"

	"freelance_backend/internal/logger"
	"freelance_backend/internal/models"
	"freelance_backend/internal/repositories"
	"freelance_backend/internal/services/dto"
	"freelance_backend/internal/validator"
	"freelance_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService interface {
	// Profile
	CreateProfile(db *gorm.DB, userID string, req *dto.CreateProfileRequest) (*models.Profile, error)
	GetProfile(db *gorm.DB, userID string) (*models.Profile, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.Profile, error)
	SetProfileSpecialties(db *gorm.DB, userID string, specialtyIDs []string) (*models.Profile, error)
	DeleteProfile(db *gorm.DB, userID string) error

	// Cert
	AddCert(db *gorm.DB, userID string, req *dto.CreateCertRequest) (*models.Cert, error)
	ListCerts(db *gorm.DB, userID string) ([]models.Cert, error)
	UpdateCert(db *gorm.DB, userID, certID string, req *dto.UpdateCertRequest) (*models.Cert, error)
	DeleteCert(db *gorm.DB, userID, certID string) error

	// Employment
	AddEmployment(db *gorm.DB, userID string, req *dto.CreateEmploymentRequest) (*models.Employment, error)
	ListEmployments(db *gorm.DB, userID string) ([]models.Employment, error)
	UpdateEmployment(db *gorm.DB, userID, employmentID string, req *dto.UpdateEmploymentRequest) (*models.Employment, error)
	DeleteEmployment(db *gorm.DB, userID, employmentID string) error

	// Lang
	AddLang(db *gorm.DB, userID string, req *dto.LangRequest) (*models.Lang, error)
	ListLangs(db *gorm.DB, userID string) ([]models.Lang, error)
	SetLangTypes(db *gorm.DB, userID, langID string, req *dto.LangRequest) (*models.Lang, error)
	DeleteLang(db *gorm.DB, userID, langID string) error
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	catalogRepo repositories.CatalogRepository
	validator   *validator.Validator
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	catalogRepo repositories.CatalogRepository,
	v *validator.Validator,
) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		catalogRepo: catalogRepo,
		validator:   v,
	}
}

// ==========================
// Profile
// ==========================

func (s *ProfileServiceImpl) CreateProfile(db *gorm.DB, userID string, req *dto.CreateProfileRequest) (*models.Profile, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		UserID:   userID,
		Pic:      req.Pic,
		Headline: req.Headline,
		Overview: req.Overview,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(tx, userID); err != nil {
			return err
		}
		if len(req.SpecialtyIDs) > 0 {
			specialties, err := s.catalogRepo.FindSpecialtiesByIDs(tx, req.SpecialtyIDs)
			if err != nil {
				return err
			}
			profile.Specialties = specialties
		}
		return s.profileRepo.CreateProfile(tx, profile)
	})
	if err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(db.Statement.Context, "profile created",
		"user_id", userID, "specialties", len(profile.Specialties))
	return profile, nil
}

func (s *ProfileServiceImpl) GetProfile(db *gorm.DB, userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindProfileByUserID(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return profile, nil
}

func (s *ProfileServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Pic != nil {
		updates["pic"] = *req.Pic
	}
	if req.Headline != nil {
		updates["headline"] = *req.Headline
	}
	if req.Overview != nil {
		updates["overview"] = *req.Overview
	}

	var profile *models.Profile
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.profileRepo.UpdateProfile(tx, userID, updates); err != nil {
			return err
		}
		if req.SpecialtyIDs != nil {
			if err := s.replaceSpecialties(tx, userID, req.SpecialtyIDs); err != nil {
				return err
			}
		}
		var err error
		profile, err = s.profileRepo.FindProfileByUserID(tx, userID)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return profile, nil
}

// SetProfileSpecialties заменяет набор специальностей профиля целиком.
func (s *ProfileServiceImpl) SetProfileSpecialties(db *gorm.DB, userID string, specialtyIDs []string) (*models.Profile, error) {
	var profile *models.Profile
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.replaceSpecialties(tx, userID, specialtyIDs); err != nil {
			return err
		}
		var err error
		profile, err = s.profileRepo.FindProfileByUserID(tx, userID)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return profile, nil
}

func (s *ProfileServiceImpl) replaceSpecialties(tx *gorm.DB, userID string, specialtyIDs []string) error {
	profile, err := s.profileRepo.FindProfileByUserID(tx, userID)
	if err != nil {
		return err
	}
	var specialties []models.Specialty
	if len(specialtyIDs) > 0 {
		specialties, err = s.catalogRepo.FindSpecialtiesByIDs(tx, specialtyIDs)
		if err != nil {
			return err
		}
	}
	return s.profileRepo.ReplaceProfileSpecialties(tx, profile, specialties)
}

func (s *ProfileServiceImpl) DeleteProfile(db *gorm.DB, userID string) error {
	if err := s.profileRepo.DeleteProfile(db, userID); err != nil {
		return handleRepoError(err)
	}
	return nil
}

// ==========================
// Cert
// ==========================

func (s *ProfileServiceImpl) AddCert(db *gorm.DB, userID string, req *dto.CreateCertRequest) (*models.Cert, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	cert := &models.Cert{
		UserID: userID,
		Name:   req.Name,
		Desc:   req.Desc,
		Date:   date,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(tx, userID); err != nil {
			return err
		}
		return s.profileRepo.CreateCert(tx, cert)
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return cert, nil
}

func (s *ProfileServiceImpl) ListCerts(db *gorm.DB, userID string) ([]models.Cert, error) {
	certs, err := s.profileRepo.FindCertsByUser(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return certs, nil
}

func (s *ProfileServiceImpl) UpdateCert(db *gorm.DB, userID, certID string, req *dto.UpdateCertRequest) (*models.Cert, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Desc != nil {
		updates["desc"] = *req.Desc
	}
	if req.Date != nil {
		date, err := parseDate("date", *req.Date)
		if err != nil {
			return nil, err
		}
		updates["date"] = date
	}

	var cert *models.Cert
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedCert(tx, userID, certID); err != nil {
			return err
		}
		if err := s.profileRepo.UpdateCert(tx, certID, updates); err != nil {
			return err
		}
		var err error
		cert, err = s.profileRepo.FindCertByID(tx, certID)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return cert, nil
}

func (s *ProfileServiceImpl) DeleteCert(db *gorm.DB, userID, certID string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedCert(tx, userID, certID); err != nil {
			return err
		}
		return s.profileRepo.DeleteCert(tx, certID)
	})
	return handleRepoError(err)
}

// ownedCert - чужой сертификат неотличим от несуществующего
func (s *ProfileServiceImpl) ownedCert(db *gorm.DB, userID, certID string) (*models.Cert, error) {
	cert, err := s.profileRepo.FindCertByID(db, certID)
	if err != nil {
		return nil, err
	}
	if cert.UserID != userID {
		return nil, repositories.ErrCertNotFound
	}
	return cert, nil
}

// ==========================
// Employment
// ==========================

func (s *ProfileServiceImpl) AddEmployment(db *gorm.DB, userID string, req *dto.CreateEmploymentRequest) (*models.Employment, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := checkDateRange(start, end); err != nil {
		return nil, err
	}

	employment := &models.Employment{
		UserID:    userID,
		Name:      req.Name,
		Position:  req.Position,
		Desc:      req.Desc,
		StartDate: start,
		EndDate:   end,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(tx, userID); err != nil {
			return err
		}
		return s.profileRepo.CreateEmployment(tx, employment)
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return employment, nil
}

func (s *ProfileServiceImpl) ListEmployments(db *gorm.DB, userID string) ([]models.Employment, error) {
	employments, err := s.profileRepo.FindEmploymentsByUser(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return employments, nil
}

// UpdateEmployment проверяет диапазон дат уже после слияния с текущей записью.
func (s *ProfileServiceImpl) UpdateEmployment(db *gorm.DB, userID, employmentID string, req *dto.UpdateEmploymentRequest) (*models.Employment, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	var employment *models.Employment
	err := db.Transaction(func(tx *gorm.DB) error {
		current, err := s.profileRepo.FindEmploymentByID(tx, employmentID)
		if err != nil {
			return err
		}
		if current.UserID != userID {
			return repositories.ErrEmploymentNotFound
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Position != nil {
			updates["position"] = *req.Position
		}
		if req.Desc != nil {
			updates["desc"] = *req.Desc
		}
		start, end := current.StartDate, current.EndDate
		if req.StartDate != nil {
			if start, err = parseDate("start_date", *req.StartDate); err != nil {
				return err
			}
			updates["start_date"] = start
		}
		if req.EndDate != nil {
			if end, err = parseDate("end_date", *req.EndDate); err != nil {
				return err
			}
			updates["end_date"] = end
		}
		if err := checkDateRange(start, end); err != nil {
			return err
		}

		if err := s.profileRepo.UpdateEmployment(tx, employmentID, updates); err != nil {
			return err
		}
		employment, err = s.profileRepo.FindEmploymentByID(tx, employmentID)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return employment, nil
}

func (s *ProfileServiceImpl) DeleteEmployment(db *gorm.DB, userID, employmentID string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		employment, err := s.profileRepo.FindEmploymentByID(tx, employmentID)
		if err != nil {
			return err
		}
		if employment.UserID != userID {
			return repositories.ErrEmploymentNotFound
		}
		return s.profileRepo.DeleteEmployment(tx, employmentID)
	})
	return handleRepoError(err)
}

// ==========================
// Lang
// ==========================

func (s *ProfileServiceImpl) AddLang(db *gorm.DB, userID string, req *dto.LangRequest) (*models.Lang, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	lang := &models.Lang{UserID: userID}
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(tx, userID); err != nil {
			return err
		}
		if len(req.LangTypeIDs) > 0 {
			langTypes, err := s.catalogRepo.FindLangTypesByIDs(tx, req.LangTypeIDs)
			if err != nil {
				return err
			}
			lang.LangTypes = langTypes
		}
		return s.profileRepo.CreateLang(tx, lang)
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return lang, nil
}

func (s *ProfileServiceImpl) ListLangs(db *gorm.DB, userID string) ([]models.Lang, error) {
	langs, err := s.profileRepo.FindLangsByUser(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return langs, nil
}

func (s *ProfileServiceImpl) SetLangTypes(db *gorm.DB, userID, langID string, req *dto.LangRequest) (*models.Lang, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	var lang *models.Lang
	err := db.Transaction(func(tx *gorm.DB) error {
		current, err := s.ownedLang(tx, userID, langID)
		if err != nil {
			return err
		}
		var langTypes []models.LangType
		if len(req.LangTypeIDs) > 0 {
			if langTypes, err = s.catalogRepo.FindLangTypesByIDs(tx, req.LangTypeIDs); err != nil {
				return err
			}
		}
		if err := s.profileRepo.ReplaceLangTypes(tx, current, langTypes); err != nil {
			return err
		}
		lang, err = s.profileRepo.FindLangByID(tx, langID)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return lang, nil
}

func (s *ProfileServiceImpl) DeleteLang(db *gorm.DB, userID, langID string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedLang(tx, userID, langID); err != nil {
			return err
		}
		return s.profileRepo.DeleteLang(tx, langID)
	})
	return handleRepoError(err)
}

func (s *ProfileServiceImpl) ownedLang(db *gorm.DB, userID, langID string) (*models.Lang, error) {
	lang, err := s.profileRepo.FindLangByID(db, langID)
	if err != nil {
		return nil, err
	}
	if lang.UserID != userID {
		return nil, repositories.ErrLangNotFound
	}
	return lang, nil
}

// ==========================
// Helpers
// ==========================

func parseDate(field, value string) (datatypes.Date, error) {
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return datatypes.Date{}, fieldError(field, "Must be a date in YYYY-MM-DD format")
	}
	return datatypes.Date(t), nil
}

func checkDateRange(start, end datatypes.Date) error {
	if time.Time(end).Before(time.Time(start)) {
		return apperrors.ErrInvalidDateRange
	}
	return nil
}
