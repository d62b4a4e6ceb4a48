// Package auth issues and verifies the bearer tokens that identify a
// journal owner.
package auth

import (
	"errors"
	"time"

	"bagbuilder-go/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims identifies the user in RegisteredClaims.Subject.
type Claims struct {
	Anonymous bool `json:"anon,omitempty"`

	jwt.RegisteredClaims
}

// UserID is the journal owner the token was issued for.
func (c Claims) UserID() string {
	return c.Subject
}

// JWT issues and verifies HS256 session tokens.
type JWT struct {
	Secret   []byte
	TokenTTL time.Duration
	Issuer   string
}

// NewJWT creates a signer from the auth configuration.
func NewJWT(cfg config.Auth) JWT {
	return JWT{Secret: []byte(cfg.JWTSecret), TokenTTL: cfg.TokenTTL, Issuer: cfg.Issuer}
}

// Session is a freshly issued token.
type Session struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueAnonymous creates a new user id and signs a token for it.
func (j JWT) IssueAnonymous() (Session, error) {
	userID := uuid.NewString()
	token, expiresAt, err := j.Sign(Claims{
		Anonymous:        true,
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
	})
	if err != nil {
		return Session{}, err
	}
	return Session{UserID: userID, Token: token, ExpiresAt: expiresAt}, nil
}

// IssueFor signs a token for an existing user id.
func (j JWT) IssueFor(userID string) (Session, error) {
	if userID == "" {
		return Session{}, errors.New("user id is required")
	}
	token, expiresAt, err := j.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}})
	if err != nil {
		return Session{}, err
	}
	return Session{UserID: userID, Token: token, ExpiresAt: expiresAt}, nil
}

// Sign fills in the registered claims that are unset and signs the token.
func (j JWT) Sign(claims Claims) (token string, expiresAt time.Time, err error) {
	now := time.Now().UTC()
	if claims.IssuedAt == nil {
		claims.IssuedAt = jwt.NewNumericDate(now)
	}
	if claims.NotBefore == nil {
		claims.NotBefore = jwt.NewNumericDate(now.Add(-5 * time.Second))
	}
	if claims.ExpiresAt == nil {
		expiresAt = now.Add(j.TokenTTL)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	} else {
		expiresAt = claims.ExpiresAt.Time
	}
	if claims.Issuer == "" {
		claims.Issuer = j.Issuer
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return s, expiresAt, nil
}

// Verify parses token and returns its claims when the signature, issuer and subject check out.
func (j JWT) Verify(token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer))
	if err != nil {
		return Claims{}, err
	}
	c, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if c.Subject == "" {
		return Claims{}, errors.New("token has no subject")
	}
	return *c, nil
}
