package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jkwan-hk/eatery/internal/dependencies/clock"
)

// ErrInvalidToken is returned when a token fails verification for any
// reason: bad signature, expired, malformed, or missing subject.
var ErrInvalidToken = errors.New("invalid or expired session token")

// DefaultTTL is how long issued tokens stay valid
const DefaultTTL = 7 * 24 * time.Hour

// Manager mints and verifies the signed tokens that carry the session
// identity. The token itself is the whole session: it rides in the
// session cookie on the web surface and as a bearer token on the API,
// and there is no server-side session store.
type Manager struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

// NewManager creates a session manager signing with the given secret
func NewManager(secret string, ttl time.Duration, clk clock.Clock) *Manager {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
	}
}

// Issue creates a signed HS256 token carrying the username as subject
func (m *Manager) Issue(username string) (string, error) {
	now := m.clock.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify validates a token and returns the identity it carries
func (m *Manager) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
