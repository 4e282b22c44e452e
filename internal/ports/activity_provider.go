package ports

import (
	"activity-map-service/internal/domain"
	"context"
	"errors"
)

var (
	// ErrUnauthorized: the provider rejected the credentials; the athlete must authorize again.
	ErrUnauthorized = errors.New("provider rejected credentials")
	ErrNotFound     = errors.New("activity not found")
)

// Contract for retrieving an athlete's recorded activities from an external source.
type ActivityProvider interface {
	// Return one page (1-based) of the athlete's activities, most recent first.
	ListActivities(ctx context.Context, creds domain.Credentials, page int, perPage int) ([]domain.Activity, error)
	// Return a single activity with its detailed route when available.
	// Errors wrap ErrUnauthorized or ErrNotFound when the provider reports those conditions.
	GetActivity(ctx context.Context, creds domain.Credentials, id int64) (domain.Activity, error)
}
