package strava

import (
	"activity-map-service/internal/domain"
	"context"
	"fmt"
)

// MockActivityProvider serves a fixed activity list, paginated, for tests.
type MockActivityProvider struct {
	activities []domain.Activity
	Calls      int
}

func NewMockActivityProvider(activities []domain.Activity) *MockActivityProvider {
	return &MockActivityProvider{activities: activities}
}

func (p *MockActivityProvider) ListActivities(
	ctx context.Context,
	creds domain.Credentials,
	page int,
	perPage int,
) ([]domain.Activity, error) {
	p.Calls++
	if creds.AccessToken == "" {
		return nil, fmt.Errorf("list activities: missing access token")
	}

	start := (page - 1) * perPage
	if start < 0 || start >= len(p.activities) {
		return []domain.Activity{}, nil
	}
	end := min(start+perPage, len(p.activities))

	out := make([]domain.Activity, end-start)
	copy(out, p.activities[start:end])
	return out, nil
}

func (p *MockActivityProvider) GetActivity(ctx context.Context, creds domain.Credentials, id int64) (domain.Activity, error) {
	p.Calls++
	for _, a := range p.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Activity{}, &HTTPStatusError{Code: 404, Body: fmt.Sprintf("activity %d not found", id)}
}
