// Package auth guards the admin routes with a password check and a signed session token.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/argab/lottery/internal/models"
)

const (
	// CookieName is the cookie carrying the admin session token.
	CookieName = "admin_session"

	roleAdmin = "admin"
	issuer    = "lottery"
)

var _ models.AdminAuthGate = (*Gate)(nil)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Gate checks admin credentials against a bcrypt hash and issues HS256
// session tokens valid for ttl.
type Gate struct {
	username     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewGate(username, passwordHash, secret string, ttl time.Duration) *Gate {
	return &Gate{
		username:     username,
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
	}
}

// Login returns a session token when username and password match the
// configured admin, ErrUnauthorized otherwise.
func (g *Gate) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	// Compare the password even for an unknown user so both paths cost the same.
	passErr := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return "", models.ErrUnauthorized
	}

	now := g.now()
	claims := Claims{
		Role: roleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   g.username,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

// Authorized reports whether token is an unexpired session issued to the admin.
func (g *Gate) Authorized(token string) bool {
	if token == "" {
		return false
	}
	claims, err := g.parse(token)
	if err != nil {
		return false
	}
	return claims.Role == roleAdmin && claims.Subject == g.username
}

func (g *Gate) parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// HashPassword returns the bcrypt hash to put in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
