package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nishant152030/Project-manager-2/pkg/models"
)

// ErrInvalidToken is returned when a token is malformed, expired, or signed
// for another issuer or audience.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of an access token.
type Claims struct {
	// Name is the username at the time of issue.
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// UserID returns the numeric user ID carried in the subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, c.Subject)
	}
	return id, nil
}

// TokenIssuer signs and verifies access tokens.
type TokenIssuer struct {
	Key      []byte
	Issuer   string
	Audience string
	TTL      time.Duration

	// now is overridable in tests.
	now func() time.Time
}

// NewTokenIssuer creates an issuer for the given signing key.
func NewTokenIssuer(key, issuer, audience string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		Key:      []byte(key),
		Issuer:   issuer,
		Audience: audience,
		TTL:      ttl,
		now:      time.Now,
	}
}

func (ti *TokenIssuer) clock() time.Time {
	if ti.now != nil {
		return ti.now()
	}
	return time.Now()
}

// Issue returns a signed token for u.
func (ti *TokenIssuer) Issue(u *models.User) (string, error) {
	now := ti.clock()
	claims := Claims{
		Name: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			Issuer:    ti.Issuer,
			Audience:  jwt.ClaimStrings{ti.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.TTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.Key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature, issuer, audience and expiry of token.
// All failures wrap ErrInvalidToken.
func (ti *TokenIssuer) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return ti.Key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ti.Issuer),
		jwt.WithAudience(ti.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.clock),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}
