package repository

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"tontinehub/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// storeError translates a driver failure into the matching application
// error. Connection-level failures (dial/timeout, dropped connections,
// pgx retryable errors) surface as STORE_UNAVAILABLE so the client
// knows a retry with backoff can succeed; anything else is a bug and
// stays INTERNAL_ERROR.
func storeError(err error) *models.AppError {
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) ||
		errors.As(err, &netErr) ||
		pgconn.SafeToRetry(err) {
		return models.NewStoreUnavailableError(err)
	}
	return models.NewInternalError(err)
}

// uniqueViolation reports whether err is a unique-constraint rejection
// and, if so, which constraint fired. Postgres reports SQLSTATE 23505
// with the constraint name; the sqlite driver used in tests reports a
// message naming the indexed columns.
func uniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return pgErr.ConstraintName, true
		}
		return "", false
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key") {
		return msg, true
	}
	return "", false
}

// isPositionConstraint matches the (tontine_id, position) unique index.
func isPositionConstraint(constraint string) bool {
	return strings.Contains(constraint, "idx_tontine_position") ||
		strings.Contains(constraint, "position")
}

// isMemberConstraint matches the (tontine_id, user_id) unique index.
func isMemberConstraint(constraint string) bool {
	return strings.Contains(constraint, "idx_tontine_user") ||
		strings.Contains(constraint, "user_id")
}
