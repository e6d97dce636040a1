package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry is how long a signed token stays valid. There is no
// revocation list; rotating the secret invalidates everything outstanding.
const TokenExpiry = 2 * time.Hour

// Claims is the fixed claim set carried by every token: the user's
// username, email, and id, and nothing else.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	UserID   uint64 `json:"id"`
	jwt.RegisteredClaims
}

// Manager signs and verifies identity tokens with a process-wide secret.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Sign produces a token carrying exactly the given user claims, expiring
// TokenExpiry from now.
func (m *Manager) Sign(username, email string, id uint64) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		Email:    email,
		UserID:   id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks the signature and expiry of a token and returns the
// decoded claims. Any failure, including a tampered signature or an
// expired token, is returned as an error.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
