package token

import (
	"time"

	"auth-gate/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig holds mirror token generation configuration.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// mirrorClaims represents the JWT claims of the mirror token handed to
// downstream content services.
type mirrorClaims struct {
	Email string `json:"email"`
	Sid   string `json:"sid"`
	jwt.RegisteredClaims
}

// JWTIssuer generates short-lived mirror tokens after a session has been
// validated. Implements domain.TokenIssuer.
type JWTIssuer struct {
	cfg JWTConfig
}

// NewJWTIssuer creates a new JWT issuer.
func NewJWTIssuer(cfg JWTConfig) *JWTIssuer {
	return &JWTIssuer{cfg: cfg}
}

// IssueMirrorToken generates a signed JWT for the identity.
func (j *JWTIssuer) IssueMirrorToken(identity *domain.Identity) (string, error) {
	now := time.Now()
	claims := mirrorClaims{
		Email: identity.Email,
		Sid:   identity.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.cfg.Issuer,
			Audience:  jwt.ClaimStrings{j.cfg.Audience},
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.cfg.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.Secret))
}
