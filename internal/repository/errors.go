package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned on unique constraint violations
	ErrConflict = errors.New("record already exists")
	// ErrConstraint is returned on foreign-key or check violations
	ErrConstraint = errors.New("constraint violation")
	// ErrInsufficientSeats is returned when a flight cannot cover the requested seats
	ErrInsufficientSeats = errors.New("not enough seats available")
)

// PostgreSQL error codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
)

// classify maps driver errors onto the package sentinels, keeping the original for logs
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		case codeForeignKeyViolation, codeCheckViolation, codeNotNullViolation:
			return fmt.Errorf("%w: %s", ErrConstraint, pgErr.ConstraintName)
		}
	}
	return err
}
