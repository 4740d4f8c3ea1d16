package service

import (
	"errors"
	"fmt"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Reason codes carried by the AuthError values returned from Verify.
const (
	CodeMissingToken   = "missing_token"
	CodeTokenExpired   = "token_expired"
	CodeInvalidIssuer  = "invalid_issuer"
	CodeMalformedToken = "malformed_token"
	CodeInvalidToken   = "invalid_token"
)

// Claims is the payload of a session token. CustomerID is only set on
// customer tokens.
type Claims struct {
	Role       string `json:"role,omitempty"`
	CustomerID *uint  `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}

type TokenService interface {
	Issue(subject, role string, customerID *uint) (string, error)
	Verify(token string) (*Claims, error)
	TTL() time.Duration
}

type tokenServiceImpl struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(jwtCfg *config.JWT) TokenService {
	return newTokenService(jwtCfg, time.Now)
}

func newTokenService(jwtCfg *config.JWT, now func() time.Time) TokenService {
	secret := jwtCfg.Secret
	if secret == "" {
		secret = config.DefaultJWTSecret
	}
	ttl := jwtCfg.TTL()
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &tokenServiceImpl{
		secret: []byte(secret),
		issuer: jwtCfg.Issuer,
		ttl:    ttl,
		now:    now,
	}
}

func (s *tokenServiceImpl) TTL() time.Duration {
	return s.ttl
}

func (s *tokenServiceImpl) Issue(subject, role string, customerID *uint) (string, error) {
	if role == "" {
		role = RoleAdmin
	}
	now := s.now()
	claims := Claims{
		Role:       role,
		CustomerID: customerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *tokenServiceImpl) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperror.Auth(CodeMissingToken)
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, &apperror.AuthError{Code: verifyErrorCode(err), Err: err}
	}

	return claims, nil
}

func verifyErrorCode(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return CodeMalformedToken
	case errors.Is(err, jwt.ErrTokenExpired):
		return CodeTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return CodeInvalidIssuer
	}
	return CodeInvalidToken
}
