package errors

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError maps database errors to AppError instances:
// - context timeouts/cancellations → Timeout/Canceled
// - pgx.ErrNoRows / sql.ErrNoRows → NotFound
// - unique violations → Conflict
// - connection and availability failures (class 08, 53, 57) → Unavailable
// - missing schema objects → Internal
//
// If the error is not a recognized database error, it returns the original error.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if ctxErr := FromContext(err); ctxErr != nil {
		return ctxErr
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return &AppError{Code: ErrCodeNotFound, Message: "Resource not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return Unavailable(err)
	}

	return err
}

func mapPgError(pgErr *pgconn.PgError) error {
	switch {
	case pgErr.Code == pgerrcode.UniqueViolation:
		return &AppError{
			Code:    ErrCodeConflict,
			Message: "This value already exists.",
			Field:   pgErr.ColumnName,
			Cause:   pgErr,
		}
	case pgErr.Code == pgerrcode.UndefinedTable, pgErr.Code == pgerrcode.UndefinedColumn:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "Database schema is missing or outdated.",
			Cause:   pgErr,
		}
	case pgErr.Code == pgerrcode.QueryCanceled:
		return &AppError{Code: ErrCodeTimeout, Message: MsgTimeout, Cause: pgErr}
	case pgerrcode.IsConnectionException(pgErr.Code),
		pgerrcode.IsInsufficientResources(pgErr.Code),
		pgerrcode.IsOperatorIntervention(pgErr.Code):
		return Unavailable(pgErr)
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "A database error occurred. " + strings.TrimSpace(pgErr.Message),
			Cause:   pgErr,
		}
	}
}
