// Package pgerrors maps PostgreSQL failures onto the error kinds of the core.
package pgerrors

import (
	"errors"

	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the queue cares about.
const (
	LockNotAvailable     = "55P03"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	UniqueViolation      = "23505"
)

// Translate wraps lock, serialization and deadlock failures as
// errs.ConcurrentModificationError and duplicate keys as
// errs.InconsistentQueueStateError. Other errors are returned as is.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case LockNotAvailable, SerializationFailure, DeadlockDetected:
		return errs.NewConcurrentModificationErrorWithCause(1, err)
	case UniqueViolation:
		return errs.NewInconsistentQueueStateErrorWithCause(
			"duplicate key on "+pgErr.ConstraintName, err,
		)
	default:
		return err
	}
}
