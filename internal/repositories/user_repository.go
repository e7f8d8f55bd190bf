package repositories

import (
	"errors"
	"strings"

	"freelance_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	ErrUsernameTaken     = errors.New("username is already taken")
)

// UserFilter - фильтр списка пользователей, nil означает "не важно"
type UserFilter struct {
	Client     *bool
	Freelancer *bool
	IsActive   *bool
	IsStaff    *bool
	Search     string
	Pagination
}

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindAggregate(db *gorm.DB, id string) (*models.User, error)
	FindAll(db *gorm.DB, filter UserFilter) ([]models.User, int64, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	UpdatePassword(db *gorm.DB, id, passwordHash string) error
	Delete(db *gorm.DB, id string) error
	ExistsByEmail(db *gorm.DB, email string) (bool, error)
	UsernameTaken(db *gorm.DB, username, excludeID string) (bool, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	found, err := r.ExistsByEmail(db, user.Email)
	if err != nil {
		return err
	}
	if found {
		return ErrUserAlreadyExists
	}
	if user.Username != nil {
		taken, err := r.UsernameTaken(db, *user.Username, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
	}
	// Связанные записи создаются своими сервисами
	return db.Omit(userRelations...).Create(user).Error
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := first(db, &user, ErrUserNotFound, "id = ?", id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := first(db, &user, ErrUserNotFound, "email = ?", email); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAggregate загружает пользователя со всеми зависимыми записями.
func (r *UserRepositoryImpl) FindAggregate(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	query := db.
		Preload("Profile").
		Preload("Profile.Specialties", orderByName).
		Preload("Certs", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		Preload("Employments", func(db *gorm.DB) *gorm.DB { return db.Order("start_date DESC") }).
		Preload("Langs").
		Preload("Langs.LangTypes", orderByName).
		Preload("Tax").
		Preload("Identity").
		Preload("Business").
		Preload("Badge").
		Preload("Point")
	if err := first(query, &user, ErrUserNotFound, "id = ?", id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindAll(db *gorm.DB, filter UserFilter) ([]models.User, int64, error) {
	query := db.Model(&models.User{})
	if filter.Client != nil {
		query = query.Where("client = ?", *filter.Client)
	}
	if filter.Freelancer != nil {
		query = query.Where("freelancer = ?", *filter.Freelancer)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsStaff != nil {
		query = query.Where("is_staff = ?", *filter.IsStaff)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where(
			"LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := filter.Pagination.apply(query).Order("created_at DESC").Order("id DESC").Find(&users).Error
	return users, total, err
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	if username, ok := updates["username"].(string); ok {
		taken, err := r.UsernameTaken(db, username, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
	}
	return updateWhere(db, &models.User{}, updates, ErrUserNotFound, "id = ?", id)
}

func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, id, passwordHash string) error {
	return updateWhere(db, &models.User{}, map[string]interface{}{"password_hash": passwordHash}, ErrUserNotFound, "id = ?", id)
}

// Delete удаляет пользователя и все зависимые записи в одной транзакции.
// FK с ON DELETE CASCADE делают то же самое на уровне БД; явное удаление
// нужно для баз, смигрированных без ограничений.
func (r *UserRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		found, err := exists(tx, &models.User{}, "id = ?", id)
		if err != nil {
			return err
		}
		if !found {
			return ErrUserNotFound
		}

		// Сначала таблицы связей и внуки, затем прямые потомки
		steps := []struct {
			sql  string
			args []interface{}
		}{
			{"DELETE FROM transactions WHERE point_id IN (SELECT id FROM points WHERE user_id = ?)", []interface{}{id}},
			{"DELETE FROM profile_specialties WHERE profile_id IN (SELECT id FROM profiles WHERE user_id = ?)", []interface{}{id}},
			{"DELETE FROM lang_lang_types WHERE lang_id IN (SELECT id FROM langs WHERE user_id = ?)", []interface{}{id}},
		}
		for _, step := range steps {
			if err := tx.Exec(step.sql, step.args...).Error; err != nil {
				return err
			}
		}

		dependents := []interface{}{
			&models.Point{},
			&models.Profile{},
			&models.Lang{},
			&models.Cert{},
			&models.Employment{},
			&models.Tax{},
			&models.Identity{},
			&models.Business{},
			&models.Badge{},
		}
		for _, model := range dependents {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		return deleteWhere(tx, &models.User{}, ErrUserNotFound, "id = ?", id)
	})
}

func (r *UserRepositoryImpl) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	return exists(db, &models.User{}, "email = ?", email)
}

func (r *UserRepositoryImpl) UsernameTaken(db *gorm.DB, username, excludeID string) (bool, error) {
	if excludeID == "" {
		return exists(db, &models.User{}, "username = ?", username)
	}
	return exists(db, &models.User{}, "username = ? AND id <> ?", username, excludeID)
}

var userRelations = []string{
	"Profile", "Certs", "Employments", "Langs", "Tax", "Identity", "Business", "Badge", "Point",
}
