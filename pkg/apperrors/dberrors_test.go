package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func requireAppError(t *testing.T, err error) *AppError {
	t.Helper()
	appErr, ok := AsAppError(err)
	require.True(t, ok, "ожидался AppError, получено %T", err)
	return appErr
}

func TestFromDB_Passthrough(t *testing.T) {
	assert.NoError(t, FromDB(nil))
	assert.Same(t, ErrTaxNotFound, FromDB(ErrTaxNotFound))

	appErr := requireAppError(t, FromDB(gorm.ErrRecordNotFound))
	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)

	appErr = requireAppError(t, FromDB(errors.New("conn refused")))
	assert.Equal(t, CodeDatabaseError, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
}

func TestFromDB_Postgres(t *testing.T) {
	cases := []struct {
		name     string
		pgErr    *pgconn.PgError
		code     ErrorCode
		status   int
		contains string
	}{
		{
			name:     "unique by gorm index name",
			pgErr:    &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "idx_users_email"},
			code:     "USER_ALREADY_EXISTS",
			status:   http.StatusConflict,
			contains: "A user with this email already exists",
		},
		{
			name:     "unique by postgres key name",
			pgErr:    &pgconn.PgError{Code: "23505", TableName: "taxes", ConstraintName: "taxes_tin_key"},
			code:     "TAX_ALREADY_EXISTS",
			status:   http.StatusConflict,
			contains: "A tax with this tin already exists",
		},
		{
			name:     "foreign key",
			pgErr:    &pgconn.PgError{Code: "23503", TableName: "specialties", ColumnName: "category_id"},
			code:     CodeReferenceNotFound,
			status:   http.StatusBadRequest,
			contains: "The referenced category does not exist",
		},
		{
			name:     "not null",
			pgErr:    &pgconn.PgError{Code: "23502", TableName: "identities", ColumnName: "id_card"},
			code:     CodeRequiredField,
			status:   http.StatusBadRequest,
			contains: "The id card is required",
		},
		{
			name:   "check",
			pgErr:  &pgconn.PgError{Code: "23514", TableName: "points"},
			code:   CodeCheckViolation,
			status: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := FromDB(fmt.Errorf("insert: %w", tc.pgErr))

			appErr := requireAppError(t, err)
			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, tc.status, appErr.HTTPCode)
			if tc.contains != "" {
				assert.Equal(t, tc.contains, appErr.Message)
			}
			assert.True(t, errors.Is(err, tc.pgErr), "исходная ошибка драйвера должна оставаться в цепочке")
		})
	}
}

func TestFromDB_MySQL(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'users.idx_users_email'"}
	appErr := requireAppError(t, FromDB(dup))
	assert.Equal(t, ErrorCode("USER_ALREADY_EXISTS"), appErr.Code)
	assert.Equal(t, "A user with this email already exists", appErr.Message)

	fk := &mysql.MySQLError{
		Number:  1452,
		Message: "Cannot add or update a child row: a foreign key constraint fails (`db`.`transactions`, CONSTRAINT `fk_points_transactions` FOREIGN KEY (`point_id`) REFERENCES `points` (`id`))",
	}
	appErr = requireAppError(t, FromDB(fk))
	assert.Equal(t, CodeReferenceNotFound, appErr.Code)
	assert.Equal(t, "The referenced point does not exist", appErr.Message)

	null := &mysql.MySQLError{Number: 1048, Message: "Column 'tin' cannot be null"}
	appErr = requireAppError(t, FromDB(null))
	assert.Equal(t, CodeRequiredField, appErr.Code)
	assert.Equal(t, "The tin is required", appErr.Message)
}

func TestViolationPredicates(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))

	assert.True(t, IsForeignKeyViolation(&mysql.MySQLError{Number: 1451}))
	assert.True(t, IsForeignKeyViolation(gorm.ErrForeignKeyViolated))
	assert.False(t, IsForeignKeyViolation(errors.New("other")))
}

func TestSingular(t *testing.T) {
	assert.Equal(t, "specialty", singular("specialties"))
	assert.Equal(t, "tax", singular("taxes"))
	assert.Equal(t, "business", singular("businesses"))
	assert.Equal(t, "user", singular("users"))
}
