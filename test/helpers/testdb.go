package helpers

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"freelance_backend/database"
	"freelance_backend/internal/auth"
	"freelance_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Переменные окружения тестовой БД. Без TEST_DATABASE_URL интеграционные тесты пропускаются.
const (
	TestDatabaseURLEnv    = "TEST_DATABASE_URL"
	TestDatabaseDriverEnv = "TEST_DATABASE_DRIVER"
)

// TestPassword - пароль, который CreateUser ставит по умолчанию
const TestPassword = "password123"

var (
	sharedDB   *gorm.DB
	sharedErr  error
	sharedOnce sync.Once
	seq        atomic.Int64
)

// OpenTestDB возвращает общее соединение с уже смигрированной тестовой БД.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(TestDatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s is not set, skipping database test", TestDatabaseURLEnv)
	}

	sharedOnce.Do(func() {
		dialector, err := database.Dialector(os.Getenv(TestDatabaseDriverEnv), dsn)
		if err != nil {
			sharedErr = err
			return
		}
		sharedDB, err = gorm.Open(dialector, &gorm.Config{
			Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
			NowFunc: func() time.Time { return time.Now().UTC() },
		})
		if err != nil {
			sharedErr = fmt.Errorf("failed to connect to test database: %w", err)
			return
		}
		sharedErr = database.AutoMigrate(sharedDB)
	})
	require.NoError(t, sharedErr, "тестовая БД недоступна")
	return sharedDB
}

// BeginTransaction открывает транзакцию, которая откатывается в конце теста.
func BeginTransaction(t *testing.T) *gorm.DB {
	t.Helper()

	tx := OpenTestDB(t).Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() {
		tx.Rollback()
	})
	return tx
}

// uniqueSuffix не повторяется между параллельно запущенными пакетами тестов
func uniqueSuffix() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), seq.Add(1))
}

// UniqueEmail - email, не пересекающийся с другими тестами
func UniqueEmail(prefix string) string {
	return prefix + "_" + uniqueSuffix() + "@test.com"
}

// UniqueName - имя для справочников, slug от которого не пересечется с другими тестами
func UniqueName(prefix string) string {
	return prefix + " " + uniqueSuffix()
}

// CreateUser пишет пользователя напрямую в БД в обход сервиса.
// Пустой PasswordHash заменяется хешем TestPassword.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) *models.User {
	t.Helper()

	if user.Email == "" {
		user.Email = UniqueEmail("user")
	}
	if user.FirstName == "" {
		user.FirstName = "Test"
	}
	if user.LastName == "" {
		user.LastName = "User"
	}
	if user.PasswordHash == "" {
		hash, err := auth.HashPassword(TestPassword)
		require.NoError(t, err)
		user.PasswordHash = hash
	}
	// По умолчанию - активный пользователь
	user.Status = true
	user.IsActive = true

	require.NoError(t, db.Omit("Profile", "Certs", "Employments", "Langs", "Tax", "Identity", "Business", "Badge", "Point").Create(user).Error)
	return user
}

// CreateCategory создает категорию с одной специальностью.
func CreateCategory(t *testing.T, db *gorm.DB, name string) (*models.Category, *models.Specialty) {
	t.Helper()

	n := uniqueSuffix()
	category := &models.Category{Name: name, Slug: "category-" + n}
	require.NoError(t, db.Omit("Specialties").Create(category).Error)

	specialty := &models.Specialty{
		CategoryID: category.ID,
		Name:       name + " specialist",
		Slug:       "specialty-" + n,
	}
	require.NoError(t, db.Create(specialty).Error)
	return category, specialty
}

// CreateLangType создает язык справочника.
func CreateLangType(t *testing.T, db *gorm.DB, name string) *models.LangType {
	t.Helper()

	langType := &models.LangType{Name: name, Slug: "lang-" + uniqueSuffix()}
	require.NoError(t, db.Create(langType).Error)
	return langType
}

// CountRows - число строк таблицы, подходящих под условие
func CountRows(t *testing.T, db *gorm.DB, table, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Table(table).Where(query, args...).Count(&count).Error)
	return count
}
