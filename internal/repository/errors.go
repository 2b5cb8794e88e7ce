package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var (
	// ErrUniqueViolation is returned when a write collides with a unique index.
	ErrUniqueViolation = errors.New("unique constraint violation")
	// ErrForeignKeyViolation is returned when a write references a missing row
	// or a delete would orphan referencing rows.
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
	// ErrPriceReferenced is returned when a price record cannot change because
	// leases reference it.
	ErrPriceReferenced = errors.New("price record is referenced by leases")
)

// classify maps constraint failures to repository sentinels, keeping the
// driver error in the chain. Other errors are returned unchanged.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return errors.Join(ErrUniqueViolation, err)
	case pgForeignKeyViolation:
		return errors.Join(ErrForeignKeyViolation, err)
	}
	return err
}
