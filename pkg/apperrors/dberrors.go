package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE коды Postgres
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// Номера ошибок MySQL
const (
	myDuplicateEntry   uint16 = 1062
	myNoReferencedRow  uint16 = 1452
	myRowIsReferenced  uint16 = 1451
	myColumnCannotNull uint16 = 1048
	myCheckViolated    uint16 = 3819
)

type violation int

const (
	violationOther violation = iota
	violationUnique
	violationForeignKey
	violationNotNull
	violationCheck
)

// dbFailure - нормализованная ошибка драйвера (Postgres или MySQL)
type dbFailure struct {
	kind       violation
	table      string
	column     string
	constraint string
}

var (
	myColumnRe     = regexp.MustCompile(`Column '([^']+)'`)
	myKeyRe        = regexp.MustCompile(`for key '([^']+)'`)
	myFKTableRe    = regexp.MustCompile("CONSTRAINT `[^`]+` FOREIGN KEY \\(`([^`]+)`\\)")
	uniqueColumnRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
)

// FromDB переводит ошибку драйвера БД в AppError.
// Уже готовые AppError возвращаются как есть, nil остается nil.
func FromDB(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsAppError(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound(err, DomainDatabase, "Record not found")
	}

	f, ok := classify(err)
	if !ok {
		return Wrap(err, CodeDatabaseError, DomainDatabase, "Database error", http.StatusInternalServerError)
	}

	entity := entityName(f.table, f.column)
	switch f.kind {
	case violationUnique:
		field := f.column
		if field == "" {
			field = columnFromConstraint(f.constraint)
		}
		msg := fmt.Sprintf("A %s with this identifier already exists", entity)
		if field != "" {
			msg = fmt.Sprintf("A %s with this %s already exists", entity, humanize(field))
		}
		return Wrap(err, codeFor(f.table, "ALREADY_EXISTS"), DomainDatabase, msg, http.StatusConflict)
	case violationForeignKey:
		return Wrap(err, CodeReferenceNotFound, DomainDatabase,
			fmt.Sprintf("The referenced %s does not exist", entity), http.StatusBadRequest)
	case violationNotNull:
		field := humanize(f.column)
		if field == "" {
			field = "field"
		}
		return Wrap(err, CodeRequiredField, DomainDatabase, fmt.Sprintf("The %s is required", field), http.StatusBadRequest)
	case violationCheck:
		return Wrap(err, CodeCheckViolation, DomainDatabase, "One or more values do not meet required conditions", http.StatusBadRequest)
	}
	return Wrap(err, CodeDatabaseError, DomainDatabase, "Database error", http.StatusInternalServerError)
}

// IsUniqueViolation сообщает, нарушено ли ограничение уникальности.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	f, ok := classify(err)
	return ok && f.kind == violationUnique
}

// IsForeignKeyViolation сообщает, нарушен ли внешний ключ.
func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	f, ok := classify(err)
	return ok && f.kind == violationForeignKey
}

func classify(err error) (dbFailure, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		f := dbFailure{table: pgErr.TableName, column: pgErr.ColumnName, constraint: pgErr.ConstraintName}
		switch pgErr.Code {
		case pgUniqueViolation:
			f.kind = violationUnique
		case pgForeignKeyViolation:
			f.kind = violationForeignKey
		case pgNotNullViolation:
			f.kind = violationNotNull
		case pgCheckViolation:
			f.kind = violationCheck
		default:
			return f, false
		}
		return f, true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		f := dbFailure{}
		switch myErr.Number {
		case myDuplicateEntry:
			f.kind = violationUnique
			if m := myKeyRe.FindStringSubmatch(myErr.Message); len(m) > 1 {
				// MySQL 8 пишет ключ как table.index
				key := m[1]
				if i := strings.IndexByte(key, '.'); i >= 0 {
					f.table = key[:i]
					key = key[i+1:]
				}
				f.constraint = key
			}
		case myNoReferencedRow, myRowIsReferenced:
			f.kind = violationForeignKey
			if m := myFKTableRe.FindStringSubmatch(myErr.Message); len(m) > 1 {
				f.column = m[1]
			}
		case myColumnCannotNull:
			f.kind = violationNotNull
			if m := myColumnRe.FindStringSubmatch(myErr.Message); len(m) > 1 {
				f.column = m[1]
			}
		case myCheckViolated:
			f.kind = violationCheck
		default:
			return f, false
		}
		return f, true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return dbFailure{kind: violationUnique}, true
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return dbFailure{kind: violationForeignKey}, true
	}
	return dbFailure{}, false
}

// codeFor строит код вида USER_ALREADY_EXISTS из имени таблицы.
func codeFor(table, action string) ErrorCode {
	if table == "" {
		return ErrorCode("RECORD_" + action)
	}
	return ErrorCode(strings.ToUpper(singular(table)) + "_" + action)
}

func entityName(table, column string) string {
	if column != "" && strings.HasSuffix(strings.ToLower(column), "_id") {
		return humanize(strings.TrimSuffix(strings.ToLower(column), "_id"))
	}
	if table != "" {
		return humanize(singular(table))
	}
	return "record"
}

func singular(table string) string {
	switch {
	case strings.HasSuffix(table, "ies") && len(table) > 3:
		return table[:len(table)-3] + "y"
	case strings.HasSuffix(table, "xes"), strings.HasSuffix(table, "sses"):
		return strings.TrimSuffix(table, "es")
	case strings.HasSuffix(table, "s") && len(table) > 1:
		return table[:len(table)-1]
	}
	return table
}

// columnFromConstraint достает имя колонки из имен вида users_email_key
// или idx_users_email / uni_users_email (так называет индексы gorm).
func columnFromConstraint(name string) string {
	if name == "" {
		return ""
	}
	if m := uniqueColumnRe.FindStringSubmatch(name); len(m) > 1 {
		return m[1]
	}
	for _, prefix := range []string{"idx_", "uni_"} {
		if strings.HasPrefix(name, prefix) {
			parts := strings.Split(name, "_")
			return parts[len(parts)-1]
		}
	}
	return ""
}

// humanize: "id_card" -> "id card"
func humanize(text string) string {
	return strings.ToLower(strings.ReplaceAll(text, "_", " "))
}
