package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any malformed, unsigned or tampered token.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the decoded contents of an access token.
type Claims struct {
	UserID       uint
	TokenVersion int
}

// Service issues and verifies stateless HS256 access tokens. Revocation is
// version-based: the token carries the user's token_version at issuance and
// the directory rejects it once the stored counter moves on. By default no
// exp claim is written (tokens live until logout); a positive TTL opts into
// time-boxed tokens, and the verifier honors exp whenever it is present.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the configured token lifetime; zero means tokens never expire.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue produces a signed token embedding the user id and token version.
func (s *Service) Issue(userID uint, tokenVersion int) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"tv":  tokenVersion,
		"iat": now.Unix(),
	}
	if s.ttl > 0 {
		claims["exp"] = now.Add(s.ttl).Unix()
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature and returns the embedded claims. Any decode
// or signature failure yields ErrInvalidToken; matching the returned token
// version against the user's current counter is the caller's job.
func (s *Service) Verify(raw string) (*Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return ClaimsFromMap(claims)
}

// ClaimsFromMap decodes already-verified JWT map claims. It is the single
// place the legacy-token rule lives: tokens minted before versioning carry
// no tv claim and are treated as version 1.
func ClaimsFromMap(claims jwt.MapClaims) (*Claims, error) {
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	version := 1
	if tv, ok := claims["tv"].(float64); ok {
		version = int(tv)
	}

	return &Claims{UserID: uint(id), TokenVersion: version}, nil
}
