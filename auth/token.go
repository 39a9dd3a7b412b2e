package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"devconnect/apperror"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 3600 * time.Second

// Identity is the user snapshot carried inside a session token.
type Identity struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

type Claims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for issuing and verifying.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

func (s *TokenService) Issue(id Identity) (string, error) {
	issuedAt := s.now()
	claims := &Claims{
		User: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) Verify(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, apperror.ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, &apperror.Error{Kind: apperror.KindInvalidToken, Fields: apperror.ErrInvalidToken.Fields, Err: err}
	}
	if !token.Valid || claims.User.ID == "" {
		return nil, &apperror.Error{Kind: apperror.KindInvalidToken, Fields: apperror.ErrInvalidToken.Fields, Err: errors.New("token carries no user")}
	}
	return &claims.User, nil
}

// BearerPrefix is prepended to the token returned at login. Clients send
// that value back verbatim in the Authorization header.
const BearerPrefix = "Bearer "

// FromHeader extracts the token from an Authorization header value, with or
// without the bearer prefix.
func FromHeader(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, strings.TrimSpace(BearerPrefix)) {
		return ""
	}
	if len(header) >= len(BearerPrefix) && strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
		return strings.TrimSpace(header[len(BearerPrefix):])
	}
	return header
}
