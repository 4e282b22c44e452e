package services

import (
	"activity-map-service/internal/domain"
	"activity-map-service/internal/platform/obs"
	"activity-map-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"log"
)

// ActivityService fetches an athlete's activities once per session and serves them from cache.
type ActivityService struct {
	Provider    ports.ActivityProvider
	Credentials ports.CredentialSource
	// Optional; nil disables caching.
	Cache   ports.ActivityCache
	Pages   int
	PerPage int
}

func NewActivityService(
	provider ports.ActivityProvider,
	credentials ports.CredentialSource,
	cache ports.ActivityCache,
	pages int,
	perPage int,
) (*ActivityService, error) {
	if provider == nil || credentials == nil {
		return nil, errors.New("activity service: provider and credentials must be non-nil")
	}
	if pages < 1 {
		pages = 1
	}
	if perPage < 1 {
		perPage = 200
	}

	return &ActivityService{
		Provider:    provider,
		Credentials: credentials,
		Cache:       cache,
		Pages:       pages,
		PerPage:     perPage,
	}, nil
}

// Load returns every activity of the athlete, from cache when possible.
// Cache failures are logged and never fail the request.
func (s *ActivityService) Load(ctx context.Context, athleteID int64) (_ []domain.Activity, err error) {
	defer obs.Time(ctx, "activities.Load")(&err)

	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx, athleteID)
		if err != nil {
			log.Printf("activity cache read failed: athlete_id=%d err=%v", athleteID, err)
		} else if ok {
			return cached, nil
		}
	}

	creds, err := s.Credentials.Token(ctx, athleteID)
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}

	all := make([]domain.Activity, 0, s.PerPage)
	for page := 1; page <= s.Pages; page++ {
		batch, err := s.Provider.ListActivities(ctx, creds, page, s.PerPage)
		if err != nil {
			return nil, fmt.Errorf("load activities: page %d: %w", page, err)
		}
		all = append(all, batch...)

		// A short page is the last one.
		if len(batch) < s.PerPage {
			break
		}
	}

	if s.Cache != nil {
		if err := s.Cache.Put(ctx, athleteID, all); err != nil {
			log.Printf("activity cache write failed: athlete_id=%d err=%v", athleteID, err)
		}
	}

	return all, nil
}

// Get fetches a single activity with its detailed route.
func (s *ActivityService) Get(ctx context.Context, athleteID int64, id int64) (domain.Activity, error) {
	creds, err := s.Credentials.Token(ctx, athleteID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("get activity %d: %w", id, err)
	}

	a, err := s.Provider.GetActivity(ctx, creds, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("get activity %d: %w", id, err)
	}
	return a, nil
}

// Forget the cached activities of an athlete.
func (s *ActivityService) Forget(ctx context.Context, athleteID int64) error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Invalidate(ctx, athleteID)
}
