package pgerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/adapters/out/postgres/pgerrors"
	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	t.Run("should map lock timeout to concurrent modification", func(t *testing.T) {
		err := pgerrors.Translate(fmt.Errorf("lock: %w", &pgconn.PgError{Code: pgerrors.LockNotAvailable}))

		require.ErrorIs(t, err, errs.ErrConcurrentModification)
	})

	t.Run("should map serialization failure and deadlock to concurrent modification", func(t *testing.T) {
		require.ErrorIs(t, pgerrors.Translate(&pgconn.PgError{Code: pgerrors.SerializationFailure}), errs.ErrConcurrentModification)
		require.ErrorIs(t, pgerrors.Translate(&pgconn.PgError{Code: pgerrors.DeadlockDetected}), errs.ErrConcurrentModification)
	})

	t.Run("should map unique violation to inconsistent queue state", func(t *testing.T) {
		err := pgerrors.Translate(&pgconn.PgError{Code: pgerrors.UniqueViolation, ConstraintName: "orders_queue_position_key"})

		require.ErrorIs(t, err, errs.ErrInconsistentQueueState)
		assert.Contains(t, err.Error(), "orders_queue_position_key")
	})

	t.Run("should pass other errors through", func(t *testing.T) {
		plain := errors.New("connection refused")

		assert.Same(t, plain, pgerrors.Translate(plain))
		assert.NoError(t, pgerrors.Translate(nil))
	})
}
