package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/ticket-tokengen/internal/config"
	"github.com/spec-kit/ticket-tokengen/internal/domain"
	"github.com/spec-kit/ticket-tokengen/pkg/util"
)

// TokenIssuer signs test tokens the ticketing server accepts.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenIssuer builds an issuer from auth configuration.
func NewTokenIssuer(cfg config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TTL(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source, for exact expiry assertions.
func (ti *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	ti.now = now
	return ti
}

// Claims describes the JWT payload. Field names match the server's
// claim parsing exactly.
type Claims struct {
	UserID     string      `json:"user_id"`
	EmployeeID string      `json:"employee_id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	Department string      `json:"department"`
	jwt.RegisteredClaims
}

// Issue builds and signs a JWT for the profile. The current time is
// captured once; iat and nbf equal it and exp is that time plus the
// configured lifetime.
func (ti *TokenIssuer) Issue(profile domain.UserProfile) (string, error) {
	if len(ti.secret) == 0 {
		return "", util.NewSigningError("signing secret is empty", nil)
	}

	now := ti.now()
	claims := &Claims{
		UserID:     profile.ID,
		EmployeeID: profile.EmployeeID,
		Name:       profile.Name,
		Email:      profile.Email,
		Role:       profile.Role,
		Department: profile.Department,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    ti.issuer,
			Subject:   profile.ID,
			Audience:  jwt.ClaimStrings{ti.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", util.NewSigningError("failed to sign token", err)
	}
	return signed, nil
}
