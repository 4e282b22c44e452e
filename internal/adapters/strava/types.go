package strava

import (
	"activity-map-service/internal/domain"
	"time"
)

// Subset of Strava's SummaryActivity / DetailedActivity we consume.
type activityResponse struct {
	ID                 int64        `json:"id"`
	Name               string       `json:"name"`
	StartDate          time.Time    `json:"start_date"`
	Distance           float64      `json:"distance"`
	MovingTime         int          `json:"moving_time"`
	TotalElevationGain float64      `json:"total_elevation_gain"`
	Type               string       `json:"type"`
	SportType          string       `json:"sport_type"`
	Map                *polylineMap `json:"map"`
}

type polylineMap struct {
	ID              string `json:"id"`
	Polyline        string `json:"polyline"`
	SummaryPolyline string `json:"summary_polyline"`
}

type athleteSummary struct {
	ID int64 `json:"id"`
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	GrantType    string `json:"grant_type"`
}

type tokenResponse struct {
	TokenType    string          `json:"token_type"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresAt    int64           `json:"expires_at"`
	ExpiresIn    int64           `json:"expires_in"`
	Athlete      *athleteSummary `json:"athlete"`
}

// Convert a wire activity into the domain model.
// The detailed polyline wins over the summary one when both are present.
func (a activityResponse) toDomain() domain.Activity {
	var encoded string
	if a.Map != nil {
		encoded = a.Map.SummaryPolyline
		if a.Map.Polyline != "" {
			encoded = a.Map.Polyline
		}
	}

	return domain.Activity{
		ID:                  a.ID,
		Name:                a.Name,
		StartDate:           a.StartDate,
		Type:                domain.ParseActivityType(a.Type),
		SourceType:          a.Type,
		DistanceMeters:      a.Distance,
		MovingTimeSeconds:   a.MovingTime,
		ElevationGainMeters: a.TotalElevationGain,
		Polyline:            encoded,
	}
}

func (t tokenResponse) toCredentials(now time.Time) domain.Credentials {
	creds := domain.Credentials{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
	}

	switch {
	case t.ExpiresAt > 0:
		creds.ExpiresAt = time.Unix(t.ExpiresAt, 0).UTC()
	case t.ExpiresIn > 0:
		creds.ExpiresAt = now.Add(time.Duration(t.ExpiresIn) * time.Second).UTC()
	}

	if t.Athlete != nil {
		creds.AthleteID = t.Athlete.ID
	}

	return creds
}
