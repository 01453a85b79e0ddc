package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edulearn-platform/learning-service/internal/models"
)

var (
	ErrTokenMissing   = errors.New("token missing")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

// DefaultTokenTTL is the fixed validity window for issued tokens. There is
// no refresh mechanism; logout is client-side token discard.
const DefaultTokenTTL = 24 * time.Hour

// Claims carries the token subject (user id) plus the role claim.
type Claims struct {
	Role models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256-signed identity tokens. Both
// operations are stateless and side-effect free.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
}

// Issue returns a signed token for the given user and role.
func (ts *TokenService) Issue(userID string, role models.UserRole) (string, error) {
	now := ts.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Identity is the verified (user, role) pair decoded from a token.
type Identity struct {
	UserID string
	Role   models.UserRole
}

// Validate checks signature, structure and expiry. The role claim must be
// one of the known roles; an unrecognized role is treated as malformed, not
// mapped to a default.
func (ts *TokenService) Validate(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	}, jwt.WithTimeFunc(ts.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrTokenMalformed
	}

	role, ok := models.ParseRole(string(claims.Role))
	if !ok {
		return nil, ErrTokenMalformed
	}

	return &Identity{UserID: claims.Subject, Role: role}, nil
}
