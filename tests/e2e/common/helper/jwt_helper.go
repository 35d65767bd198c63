//go:build e2e

package helper

import (
	"testing"
	"time"

	"claimflow/internal/pkg/config"
	"claimflow/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// AuthToken issues a bearer token for the given user, signed with the
// test config secret.
func AuthToken(t *testing.T, cfg config.JWTConfig, userID uuid.UUID) string {
	t.Helper()

	token, err := jwt.NewService(cfg.Secret).GenerateToken(userID, time.Hour)
	require.NoError(t, err, "failed to issue test token")
	return token
}
