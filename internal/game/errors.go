package game

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ValidationError reports malformed input, such as too few options or an
// option that does not belong to the round being scored.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

// ConflictError reports an invariant violation under concurrency, such as a
// second round being opened while one is already open.
type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string { return e.Reason }

// InvalidStateError reports an operation applied to a round or game in the
// wrong state, such as opening a non-draft round or scoring twice.
type InvalidStateError struct {
	Reason string
}

func (e InvalidStateError) Error() string { return e.Reason }

// RoundClosedError reports a vote cast against a round that is not open.
type RoundClosedError struct {
	Reason string
}

func (e RoundClosedError) Error() string { return e.Reason }

// NotFoundError reports an unknown id.
type NotFoundError struct {
	Reason string
}

func (e NotFoundError) Error() string { return e.Reason }

func validationf(format string, args ...any) error {
	return ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...any) error {
	return ConflictError{Reason: fmt.Sprintf(format, args...)}
}

func invalidStatef(format string, args ...any) error {
	return InvalidStateError{Reason: fmt.Sprintf(format, args...)}
}

func roundClosedf(format string, args ...any) error {
	return RoundClosedError{Reason: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return NotFoundError{Reason: fmt.Sprintf(format, args...)}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
