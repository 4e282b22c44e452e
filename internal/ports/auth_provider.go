package ports

import (
	"activity-map-service/internal/domain"
	"context"
)

// Contract for the OAuth authorization code flow of the activity provider.
type AuthProvider interface {
	// Return the URL the user is sent to in order to grant access.
	AuthURL(state string) string
	// Trade an authorization code for credentials.
	ExchangeCode(ctx context.Context, code string) (domain.Credentials, error)
	// Obtain fresh credentials from a refresh token.
	// The returned AthleteID may be zero; callers keep the one they already know.
	Refresh(ctx context.Context, refreshToken string) (domain.Credentials, error)
}

// Source of valid (non-expired) credentials for an athlete.
type CredentialSource interface {
	Token(ctx context.Context, athleteID int64) (domain.Credentials, error)
}
