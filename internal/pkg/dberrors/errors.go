package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// PostgreSQL error codes the repositories care about
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// IsDuplicateKeyError checks if the error is a PostgreSQL unique violation error.
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == constraintName
}

// IsForeignKeyError checks if the error is a PostgreSQL foreign key violation.
func IsForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

// Translate turns constraint violations that slipped past service
// validation into application errors. Other errors are returned unchanged.
func Translate(err error, entity string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return apperrors.AlreadyExistsf("%s already exists (%s).", entity, pgErr.ConstraintName)
	case foreignKeyViolation:
		return apperrors.HasReferencef("%s is referenced or references a missing row (%s).", entity, pgErr.ConstraintName)
	default:
		return err
	}
}
