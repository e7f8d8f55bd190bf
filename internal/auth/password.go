package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// UnusablePasswordPrefix помечает хеш, с которым нельзя войти.
// Такой хеш никогда не совпадет с bcrypt.
const UnusablePasswordPrefix = "!"

const (
	MinPasswordLength = 8
	// bcrypt игнорирует все после 72 байт
	MaxPasswordLength = 72
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes long")
)

// HashPassword создает bcrypt хеш пароля
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash проверяет пароль против хеша.
// Для непригодного пароля всегда false.
func CheckPasswordHash(password, hash string) bool {
	if !IsUsablePassword(hash) {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword проверяет длину пароля
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// UnusablePassword возвращает случайный хеш-заглушку для пользователей без пароля.
func UnusablePassword() string {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return UnusablePasswordPrefix
	}
	return UnusablePasswordPrefix + hex.EncodeToString(buf)
}

// IsUsablePassword - false для пустого хеша и для заглушки.
func IsUsablePassword(hash string) bool {
	return hash != "" && !strings.HasPrefix(hash, UnusablePasswordPrefix)
}

// NormalizeEmail обрезает пробелы и приводит домен к нижнему регистру.
// Локальная часть не трогается: по RFC она регистрозависима.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
