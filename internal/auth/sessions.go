package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionSubject = "session"
	stateSubject   = "oauth-state"

	stateTTL = 10 * time.Minute
)

// ErrInvalidSession covers missing, expired, tampered, or wrong-purpose tokens.
var ErrInvalidSession = errors.New("invalid session")

// SessionClaims identify the athlete behind a browser session.
type SessionClaims struct {
	AthleteID int64 `json:"athlete_id"`
	jwt.RegisteredClaims
}

// Sessions signs and verifies HS256 session tokens and OAuth state values.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessions(secret string, ttl time.Duration) (*Sessions, error) {
	if len(secret) < 16 {
		return nil, errors.New("session secret must be at least 16 bytes")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}

	return &Sessions{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *Sessions) TTL() time.Duration { return s.ttl }

// Issue a session token for athleteID.
func (s *Sessions) Issue(athleteID int64) (string, error) {
	if athleteID == 0 {
		return "", errors.New("issue session: athlete id must be set")
	}

	now := s.now()
	claims := SessionClaims{
		AthleteID: athleteID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   sessionSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue session: sign: %w", err)
	}
	return signed, nil
}

// Verify a session token and return its claims.
func (s *Sessions) Verify(token string) (SessionClaims, error) {
	var claims SessionClaims
	if err := s.parse(token, &claims); err != nil {
		return SessionClaims{}, err
	}
	if claims.Subject != sessionSubject || claims.AthleteID == 0 {
		return SessionClaims{}, ErrInvalidSession
	}
	return claims, nil
}

// Issue a short-lived signed value for the OAuth state parameter.
func (s *Sessions) IssueState() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   stateSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue state: sign: %w", err)
	}
	return signed, nil
}

// Verify an OAuth state value returned on the callback.
func (s *Sessions) VerifyState(state string) error {
	var claims jwt.RegisteredClaims
	if err := s.parse(state, &claims); err != nil {
		return err
	}
	if claims.Subject != stateSubject {
		return ErrInvalidSession
	}
	return nil
}

func (s *Sessions) parse(token string, claims jwt.Claims) error {
	if token == "" {
		return ErrInvalidSession
	}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return nil
}
