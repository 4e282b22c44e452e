package ports

import (
	"activity-map-service/internal/domain"
	"context"
)

// Port: short-lived per-athlete cache of fetched activities.
type ActivityCache interface {
	// Return cached activities; ok is false on a miss.
	Get(ctx context.Context, athleteID int64) (activities []domain.Activity, ok bool, err error)
	Put(ctx context.Context, athleteID int64, activities []domain.Activity) error
	Invalidate(ctx context.Context, athleteID int64) error
}
