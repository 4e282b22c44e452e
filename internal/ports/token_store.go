package ports

import (
	"activity-map-service/internal/domain"
	"context"
	"errors"
)

// ErrCredentialsNotFound is returned by TokenStore.Get when nothing is stored for an athlete.
var ErrCredentialsNotFound = errors.New("credentials not found")

// Port: persistence for OAuth credentials, keyed by athlete.
type TokenStore interface {
	Get(ctx context.Context, athleteID int64) (domain.Credentials, error)
	// Insert or replace the credentials for creds.AthleteID.
	Put(ctx context.Context, creds domain.Credentials) error
	Delete(ctx context.Context, athleteID int64) error
}
