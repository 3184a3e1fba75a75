package sqlerr

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/gestion-projet/internal/errs"
)

// ErrCode reports the Code of the first database error in err's chain.
//
// Both an already normalized *Error and a raw *pgconn.PgError are
// recognized, so repositories can return driver errors untouched.
func ErrCode(err error) Code {
	if sqlErr := AsError(err); sqlErr != nil {
		return sqlErr.Code
	}
	return Other
}

// IsIntegrityViolation reports whether err breaks a table constraint.
func IsIntegrityViolation(err error) bool {
	switch ErrCode(err) {
	case UniqueViolation, ForeignKeyViolation, NotNullViolation, CheckViolation, ExclusionViolation:
		return true
	default:
		return false
	}
}

// IsNoRows reports whether err means a query matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// AsError returns the database error in err's chain as an *Error, nil
// when there is none.
func AsError(err error) *Error {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr)
	}

	return nil
}

// ConvertPgError converts a raw Postgres error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// HandleError converts an error no layer translated into an errs.HTTPError:
// no rows becomes a 404, anything else a 500 without internal detail.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if IsNoRows(err) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
