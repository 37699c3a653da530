package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("forbidden")
)

// Roles understood by the pantry API.
const (
	RoleAdmin       = "admin"
	RolePantryAdmin = "pantry-admin"
	RoleDonor       = "donor"
	RoleIndividual  = "individual"
)

// Claims are the JWT claims issued by the account service.
type Claims struct {
	SessionID string   `json:"sid"`
	Roles     []string `json:"roles"`
	PantryID  string   `json:"pantryId,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *Claims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}

// HasAnyRole reports whether the claims carry at least one of roles, ignoring case.
func (c *Claims) HasAnyRole(roles ...string) bool {
	if c == nil {
		return false
	}
	for _, role := range roles {
		if slices.ContainsFunc(c.Roles, func(have string) bool {
			return strings.EqualFold(strings.TrimSpace(have), role)
		}) {
			return true
		}
	}
	return false
}

type TokenValidator interface {
	Validate(token string) (*Claims, error)
}

type JWTValidator struct {
	secret    []byte
	publicKey *rsa.PublicKey
	now       func() time.Time
}

// NewJWTValidator builds a validator. When publicKeyPEM is set tokens must be RS256 signed by it;
// otherwise HS256 tokens signed with secret are accepted.
func NewJWTValidator(secret, publicKeyPEM string) (*JWTValidator, error) {
	v := &JWTValidator{
		secret: []byte(strings.TrimSpace(secret)),
		now:    time.Now,
	}
	if pem := strings.TrimSpace(publicKeyPEM); pem != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return nil, fmt.Errorf("parse jwt public key: %w", err)
		}
		v.publicKey = key
	}
	return v, nil
}

func (v *JWTValidator) keyFunc(t *jwt.Token) (any, error) {
	if v.publicKey != nil {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v, expected RS256", t.Header["alg"])
		}
		return v.publicKey, nil
	}
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return v.secret, nil
}

func (v *JWTValidator) Validate(token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	if v.publicKey == nil && len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: jwt key not configured", ErrInvalidToken)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, v.keyFunc,
		jwt.WithLeeway(5*time.Second),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	if claims.SessionID == "" {
		claims.SessionID = claims.ID
	}
	if claims.SessionID == "" {
		if claims.ExpiresAt != nil {
			claims.SessionID = fmt.Sprintf("%s:%d", claims.Subject, claims.ExpiresAt.Unix())
		} else {
			claims.SessionID = claims.Subject
		}
	}
	return claims, nil
}
