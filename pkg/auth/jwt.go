// Package auth проверка JWT (HS256), выпущенных сервисом авторизации
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken токен не прошёл проверку подписи, срока действия или формата
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims полезная нагрузка токена
type Claims struct {
	Sub      string `json:"sub"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
	CenterID *int64 `json:"ctCenterId,omitempty"`
	jwt.RegisteredClaims
}

// UserID числовой идентификатор пользователя из sub
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Sub, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: sub is not a positive integer", ErrInvalidToken)
	}
	return id, nil
}

// Verifier проверяет токены общим секретом
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier создает Verifier; пустой issuer отключает проверку iss
func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// ParseValidate разбирает и проверяет токен
func (v *Verifier) ParseValidate(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrInvalidToken
	}
	return c, nil
}

// CreateAccessToken выпускает токен (используется сервисными утилитами и тестами)
func (v *Verifier) CreateAccessToken(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims.IssuedAt = jwt.NewNumericDate(now)
	claims.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if v.issuer != "" {
		claims.RegisteredClaims.Issuer = v.issuer
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
