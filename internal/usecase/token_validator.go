package usecase

import (
	"claimflow/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator provides token validation for middleware. Identity is
// issued by the external auth collaborator; the engine only verifies
// the signature and extracts the actor.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	return claims.UserID, nil
}
