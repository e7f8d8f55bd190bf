package services

import (
	"errors"
	"strings"

	"freelance_backend/internal/auth"
	"freelance_backend/internal/logger"
	"freelance_backend/internal/models"
	"freelance_backend/internal/repositories"
	"freelance_backend/internal/services/dto"
	"freelance_backend/internal/validator"
	"freelance_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(db *gorm.DB, req *dto.CreateUserRequest) (*models.User, error)
	CreateSuperuser(db *gorm.DB, req *dto.CreateUserRequest) (*models.User, error)
	GetUser(db *gorm.DB, id string) (*models.User, error)
	GetUserByEmail(db *gorm.DB, email string) (*models.User, error)
	GetUserAggregate(db *gorm.DB, id string) (*models.User, error)
	ListUsers(db *gorm.DB, req *dto.ListUsersRequest) (*dto.PaginatedResponse[models.User], error)
	UpdateUser(db *gorm.DB, id string, req *dto.UpdateUserRequest) (*models.User, error)
	SetPassword(db *gorm.DB, id, password string) error
	CheckPassword(db *gorm.DB, email, password string) (*models.User, bool, error)
	DeactivateUser(db *gorm.DB, id string) error
	DeleteUser(db *gorm.DB, id string) error
}

type UserServiceImpl struct {
	userRepo  repositories.UserRepository
	validator *validator.Validator
}

func NewUserService(userRepo repositories.UserRepository, v *validator.Validator) UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		validator: v,
	}
}

// CreateUser создает обычного пользователя: активный, без прав персонала.
// is_staff=true или is_superuser=true - ошибка.
func (s *UserServiceImpl) CreateUser(db *gorm.DB, req *dto.CreateUserRequest) (*models.User, error) {
	if (req.IsStaff != nil && *req.IsStaff) || (req.IsSuperuser != nil && *req.IsSuperuser) {
		return nil, apperrors.ErrPrivilegedFlags
	}
	return s.createUser(db, req, false)
}

// CreateSuperuser создает администратора. Явно переданные
// is_staff=false или is_superuser=false - ошибка.
func (s *UserServiceImpl) CreateSuperuser(db *gorm.DB, req *dto.CreateUserRequest) (*models.User, error) {
	if (req.IsStaff != nil && !*req.IsStaff) || (req.IsSuperuser != nil && !*req.IsSuperuser) {
		return nil, apperrors.ErrSuperuserFlags
	}
	return s.createUser(db, req, true)
}

func (s *UserServiceImpl) createUser(db *gorm.DB, in *dto.CreateUserRequest, superuser bool) (*models.User, error) {
	req := *in
	req.Email = auth.NormalizeEmail(req.Email)
	if req.Email == "" {
		return nil, apperrors.ErrEmailRequired
	}
	if err := validateRequest(s.validator, &req); err != nil {
		return nil, err
	}

	user := &models.User{
		Email:       req.Email,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Username:    req.Username,
		Client:      req.Client,
		Freelancer:  req.Freelancer,
		Status:      true,
		IsActive:    boolOr(req.IsActive, true),
		IsStaff:     superuser,
		IsSuperuser: superuser,
	}

	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, passwordError(err)
		}
		user.PasswordHash = hash
	} else {
		user.PasswordHash = auth.UnusablePassword()
	}

	if err := s.userRepo.Create(db, user); err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(db.Statement.Context, "user created",
		"user_id", user.ID,
		"superuser", user.IsSuperuser,
		"usable_password", auth.IsUsablePassword(user.PasswordHash),
	)
	return user, nil
}

func (s *UserServiceImpl) GetUser(db *gorm.DB, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(db, auth.NormalizeEmail(email))
	if err != nil {
		return nil, handleRepoError(err)
	}
	return user, nil
}

// GetUserAggregate - пользователь со всеми связанными записями
func (s *UserServiceImpl) GetUserAggregate(db *gorm.DB, id string) (*models.User, error) {
	user, err := s.userRepo.FindAggregate(db, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) ListUsers(db *gorm.DB, req *dto.ListUsersRequest) (*dto.PaginatedResponse[models.User], error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	page := req.PaginationRequest.Normalize()
	filter := repositories.UserFilter{
		Client:     req.Client,
		Freelancer: req.Freelancer,
		IsActive:   req.IsActive,
		IsStaff:    req.IsStaff,
		Search:     req.Search,
		Pagination: repositories.Pagination{Limit: page.PageSize, Offset: page.Offset()},
	}

	users, total, err := s.userRepo.FindAll(db, filter)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return dto.NewPaginatedResponse(users, total, page), nil
}

func (s *UserServiceImpl) UpdateUser(db *gorm.DB, id string, in *dto.UpdateUserRequest) (*models.User, error) {
	req := *in
	if req.Email != nil {
		email := auth.NormalizeEmail(*req.Email)
		if email == "" {
			return nil, apperrors.ErrEmailRequired
		}
		req.Email = &email
	}
	if err := validateRequest(s.validator, &req); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Client != nil {
		updates["client"] = *req.Client
	}
	if req.Freelancer != nil {
		updates["freelancer"] = *req.Freelancer
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsStaff != nil {
		updates["is_staff"] = *req.IsStaff
	}

	var user *models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		if req.Email != nil {
			email := *req.Email
			existing, err := s.userRepo.FindByEmail(tx, email)
			switch {
			case err == nil && existing.ID != id:
				return repositories.ErrUserAlreadyExists
			case err != nil && !errors.Is(err, repositories.ErrUserNotFound):
				return err
			}
			updates["email"] = email
		}

		if err := s.userRepo.Update(tx, id, updates); err != nil {
			return err
		}
		var err error
		user, err = s.userRepo.FindByID(tx, id)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) SetPassword(db *gorm.DB, id, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return passwordError(err)
	}
	if err := s.userRepo.UpdatePassword(db, id, hash); err != nil {
		return handleRepoError(err)
	}
	logger.CtxInfo(db.Statement.Context, "password changed", "user_id", id)
	return nil
}

// CheckPassword ищет пользователя по email и сверяет пароль.
// Неактивный пользователь или непригодный пароль дают false без ошибки.
func (s *UserServiceImpl) CheckPassword(db *gorm.DB, email, password string) (*models.User, bool, error) {
	user, err := s.GetUserByEmail(db, email)
	if err != nil {
		return nil, false, err
	}
	if !user.IsActive {
		return user, false, nil
	}
	return user, auth.CheckPasswordHash(password, user.PasswordHash), nil
}

func (s *UserServiceImpl) DeactivateUser(db *gorm.DB, id string) error {
	if err := s.userRepo.Update(db, id, map[string]interface{}{"is_active": false}); err != nil {
		return handleRepoError(err)
	}
	logger.CtxInfo(db.Statement.Context, "user deactivated", "user_id", id)
	return nil
}

// DeleteUser удаляет пользователя вместе со всеми зависимыми записями.
func (s *UserServiceImpl) DeleteUser(db *gorm.DB, id string) error {
	if err := s.userRepo.Delete(db, id); err != nil {
		return handleRepoError(err)
	}
	logger.CtxInfo(db.Statement.Context, "user deleted", "user_id", id)
	return nil
}

func passwordError(err error) error {
	if errors.Is(err, auth.ErrPasswordTooShort) || errors.Is(err, auth.ErrPasswordTooLong) {
		return apperrors.ErrWeakPassword.WithError(err)
	}
	return apperrors.InternalError(err)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
