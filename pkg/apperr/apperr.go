package apperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors returned by stores and services. Handlers translate these
// into HTTP responses; the core never maps them to status codes itself.
var (
	// ErrMissingTenant means the caller context carried no tenant identifier.
	// Raised before any store access.
	ErrMissingTenant = errors.New("operation requires a tenant")

	// ErrNotFound means no row matched the id within the caller's tenant
	// scope. A row belonging to another tenant is indistinguishable from an
	// absent one.
	ErrNotFound = errors.New("not found")
)

// ValidationError is a domain-rule failure (bad date range, cross-tenant
// foreign key, non-positive amount). The message is always safe to show to
// the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation builds a ValidationError with the given caller-facing message.
func Validation(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConstraintError is a storage-level write rejection (uniqueness, foreign
// key, not-null) translated to a domain message.
type ConstraintError struct {
	Message string
	Code    string // postgres error code
}

func (e *ConstraintError) Error() string {
	return e.Message
}

// IsConstraint reports whether err is (or wraps) a ConstraintError.
func IsConstraint(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}

// Postgres error codes recognized by ClassifyStorage.
const (
	pgUniqueViolation   = "23505"
	pgForeignKeyMissing = "23503"
	pgNotNullViolation  = "23502"
)

// ClassifyStorage inspects a storage error and, when it is a recognized
// constraint violation, replaces it with a ConstraintError carrying a
// domain-level message. Anything else is returned unchanged and treated as
// unclassified by the handler layer.
func ClassifyStorage(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return &ConstraintError{Message: "a record with the same value already exists", Code: pgErr.Code}
	case pgForeignKeyMissing:
		return &ConstraintError{Message: "referenced record does not exist", Code: pgErr.Code}
	case pgNotNullViolation:
		return &ConstraintError{Message: "a required field is missing", Code: pgErr.Code}
	}
	return err
}
