//go:build unit

package infra_test

import (
	"errors"
	"fmt"
	"testing"

	"claimflow/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		expectKind infra.RepositoryErrorKind
	}{
		{
			name:       "no rows becomes NOT_FOUND",
			err:        pgx.ErrNoRows,
			expectKind: infra.KindNotFound,
		},
		{
			name:       "wrapped no rows is still NOT_FOUND",
			err:        fmt.Errorf("scan: %w", pgx.ErrNoRows),
			expectKind: infra.KindNotFound,
		},
		{
			name:       "unique violation becomes DUPLICATE_KEY",
			err:        &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name:       "foreign key violation becomes FOREIGN_KEY_VIOLATED",
			err:        &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"},
			expectKind: infra.KindForeignKeyViolated,
		},
		{
			name:       "other pg errors become DB_FAILURE",
			err:        &pgconn.PgError{Code: "40001", Message: "could not serialize access"},
			expectKind: infra.KindDBFailure,
		},
		{
			name:       "plain errors become DB_FAILURE",
			err:        errors.New("connection refused"),
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := infra.WrapRepoErr("query failed", tc.err)
			assert.True(t, infra.IsKind(wrapped, tc.expectKind))
		})
	}
}

func TestIsKind(t *testing.T) {
	t.Run("matches the carried kind only", func(t *testing.T) {
		err := infra.NewRepoErr(infra.KindConflict, "slot full")
		assert.True(t, infra.IsKind(err, infra.KindConflict))
		assert.False(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("sees through wrapping", func(t *testing.T) {
		err := fmt.Errorf("create claim: %w", infra.NewRepoErr(infra.KindDuplicateKey, "already claimed"))
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("foreign errors match nothing", func(t *testing.T) {
		assert.False(t, infra.IsKind(errors.New("boom"), infra.KindDBFailure))
	})
}

func TestRepositoryErrorMessage(t *testing.T) {
	err := infra.WrapRepoErr("lock timeslot", pgx.ErrNoRows)
	assert.Contains(t, err.Error(), "NOT_FOUND")
	assert.Contains(t, err.Error(), "lock timeslot")
}
