package auth

import (
	"activity-map-service/internal/domain"
	"activity-map-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoCredentials means the athlete must go through the OAuth flow again.
var ErrNoCredentials = errors.New("no usable credentials")

// Refresh tokens this close to expiry rather than risk a mid-request 401.
const defaultSkew = 60 * time.Second

// TokenSource hands out valid credentials, refreshing and persisting them when expired.
type TokenSource struct {
	Store    ports.TokenStore
	Provider ports.AuthProvider
	Skew     time.Duration
	now      func() time.Time
}

func NewTokenSource(store ports.TokenStore, provider ports.AuthProvider) *TokenSource {
	return &TokenSource{
		Store:    store,
		Provider: provider,
		Skew:     defaultSkew,
		now:      time.Now,
	}
}

// Token returns credentials for athleteID, refreshing them first when expired.
func (s *TokenSource) Token(ctx context.Context, athleteID int64) (domain.Credentials, error) {
	creds, err := s.Store.Get(ctx, athleteID)
	if errors.Is(err, ports.ErrCredentialsNotFound) {
		return domain.Credentials{}, fmt.Errorf("token athlete=%d: %w", athleteID, ErrNoCredentials)
	}
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("token athlete=%d: %w", athleteID, err)
	}

	if !creds.Expired(s.now(), s.Skew) {
		return creds, nil
	}

	if creds.RefreshToken == "" {
		return domain.Credentials{}, fmt.Errorf("token athlete=%d: expired without refresh token: %w", athleteID, ErrNoCredentials)
	}

	fresh, err := s.Provider.Refresh(ctx, creds.RefreshToken)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("token athlete=%d: refresh: %w", athleteID, err)
	}

	fresh.AthleteID = athleteID
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = creds.RefreshToken
	}

	if err := s.Store.Put(ctx, fresh); err != nil {
		return domain.Credentials{}, fmt.Errorf("token athlete=%d: persist refreshed: %w", athleteID, err)
	}

	return fresh, nil
}
