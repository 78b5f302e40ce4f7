package repository

import (
	"errors"
	"strings"

	"conduit/internal/models"
	"conduit/internal/validation"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// uniqueViolationField guesses which of fields a unique violation refers to.
func uniqueViolationField(err error, fields ...string) string {
	detail := strings.ToLower(err.Error())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		detail = strings.ToLower(pgErr.ConstraintName + " " + pgErr.Detail)
	}
	for _, f := range fields {
		if strings.Contains(detail, f) {
			return f
		}
	}
	if len(fields) > 0 {
		return fields[0]
	}
	return "unknown"
}

// storeError maps a GORM error to an AppError.
func storeError(err error, resource string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewInternalError(err)
}

func takenError(err error, fields ...string) error {
	return models.NewValidationError(uniqueViolationField(err, fields...), validation.MsgTaken)
}
