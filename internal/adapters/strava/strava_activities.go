package strava

import (
	"activity-map-service/internal/domain"
	"activity-map-service/internal/platform/obs"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// Strava rejects per_page above 200.
const maxPerPage = 200

// ListActivities fetches one page of the athlete's activities.
func (c *StravaClient) ListActivities(
	ctx context.Context,
	creds domain.Credentials,
	page int,
	perPage int,
) (_ []domain.Activity, err error) {
	defer obs.Time(ctx, "strava.ListActivities")(&err)

	if creds.AccessToken == "" {
		return nil, errors.New("list activities: access token must be non-empty")
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > maxPerPage {
		perPage = maxPerPage
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	u := c.apiBaseURL + "/athlete/activities?" + q.Encode()

	var res []activityResponse
	if err := c.getJSON(ctx, u, creds.AccessToken, &res); err != nil {
		return nil, fmt.Errorf("list activities page=%d: %w", page, err)
	}

	out := make([]domain.Activity, 0, len(res))
	for _, a := range res {
		out = append(out, a.toDomain())
	}
	return out, nil
}

// GetActivity fetches a single activity including its full-resolution route.
func (c *StravaClient) GetActivity(
	ctx context.Context,
	creds domain.Credentials,
	id int64,
) (_ domain.Activity, err error) {
	defer obs.Time(ctx, "strava.GetActivity")(&err)

	if creds.AccessToken == "" {
		return domain.Activity{}, errors.New("get activity: access token must be non-empty")
	}
	if id <= 0 {
		return domain.Activity{}, fmt.Errorf("get activity: invalid id %d", id)
	}

	u := fmt.Sprintf("%s/activities/%d?include_all_efforts=true", c.apiBaseURL, id)

	var res activityResponse
	if err := c.getJSON(ctx, u, creds.AccessToken, &res); err != nil {
		return domain.Activity{}, fmt.Errorf("get activity %d: %w", id, err)
	}

	return res.toDomain(), nil
}
