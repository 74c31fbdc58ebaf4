package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalid = errors.New("token is invalid")
	ErrExpired = errors.New("token has expired")
)

// Issuer signs and verifies bearer tokens carrying the holder's email claim.
type Issuer interface {
	Issue(email string) (string, error)
	Verify(raw string) (string, error)
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWT issues HMAC-signed tokens with a fixed lifetime.
type JWT struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

func NewJWT(secret, algorithm string, ttl time.Duration) (*JWT, error) {
	if secret == "" {
		return nil, errors.New("token: secret must not be empty")
	}
	var method jwt.SigningMethod
	switch algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("token: unsupported algorithm %q", algorithm)
	}
	return &JWT{secret: []byte(secret), method: method, ttl: ttl}, nil
}

func (j *JWT) Issue(email string) (string, error) {
	now := time.Now().UTC()
	c := claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	return jwt.NewWithClaims(j.method, c).SignedString(j.secret)
}

// Verify returns the email claim of a well-formed, unexpired token.
func (j *JWT) Verify(raw string) (string, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c,
		func(t *jwt.Token) (any, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{j.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}
	if c.Email == "" {
		return "", ErrInvalid
	}
	return c.Email, nil
}
