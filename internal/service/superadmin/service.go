package superadmin

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront-platform/internal/config"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match any
	// configured operator.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSession is returned when a session token is missing, malformed
	// or expired.
	ErrInvalidSession = errors.New("invalid session")
)

const sessionTTL = 24 * time.Hour

// Claims carried in a platform-operator session token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Service authenticates platform operators against credentials loaded from
// the environment and issues signed session tokens. No operator accounts
// exist in the database.
type Service struct {
	creds  []config.AdminCredential
	secret []byte
	now    func() time.Time
}

func New(creds []config.AdminCredential, secret string) *Service {
	return &Service{
		creds:  creds,
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Login matches the pair against every configured credential and returns a
// session token valid for 24 hours. Comparison is constant-time per entry so
// the response cannot reveal which emails are configured.
func (s *Service) Login(email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	var matched *config.AdminCredential
	for i := range s.creds {
		emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(s.creds[i].Email)), []byte(email)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(s.creds[i].Password), []byte(password)) == 1
		if emailOK && passOK {
			matched = &s.creds[i]
		}
	}
	if matched == nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := Claims{
		Email: matched.Email,
		Name:  matched.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "storefront-platform",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Validate parses a session token and returns its claims. Expiry is enforced
// by the parser via the registered claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if !token.Valid || claims.Email == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
