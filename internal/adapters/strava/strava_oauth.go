package strava

import (
	"activity-map-service/internal/domain"
	"activity-map-service/internal/platform/obs"
	"context"
	"errors"
	"fmt"
	"strings"
)

// ExchangeCode trades an authorization code from the OAuth callback for credentials.
func (c *StravaClient) ExchangeCode(ctx context.Context, code string) (_ domain.Credentials, err error) {
	defer obs.Time(ctx, "strava.ExchangeCode")(&err)

	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Credentials{}, errors.New("exchange code: code must be non-empty")
	}

	req := tokenRequest{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		Code:         code,
		GrantType:    "authorization_code",
	}

	var res tokenResponse
	if err := c.postJSON(ctx, c.authBaseURL+"/token", req, &res); err != nil {
		return domain.Credentials{}, fmt.Errorf("exchange code: %w", err)
	}
	if res.AccessToken == "" {
		return domain.Credentials{}, errors.New("exchange code: response has no access token")
	}

	creds := res.toCredentials(c.now())
	if creds.AthleteID == 0 {
		return domain.Credentials{}, errors.New("exchange code: response has no athlete")
	}

	return creds, nil
}

// Refresh obtains a new access token. Strava may rotate the refresh token as well.
func (c *StravaClient) Refresh(ctx context.Context, refreshToken string) (_ domain.Credentials, err error) {
	defer obs.Time(ctx, "strava.Refresh")(&err)

	if refreshToken == "" {
		return domain.Credentials{}, errors.New("refresh token: refresh token must be non-empty")
	}

	req := tokenRequest{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		RefreshToken: refreshToken,
		GrantType:    "refresh_token",
	}

	var res tokenResponse
	if err := c.postJSON(ctx, c.authBaseURL+"/token", req, &res); err != nil {
		return domain.Credentials{}, fmt.Errorf("refresh token: %w", err)
	}
	if res.AccessToken == "" {
		return domain.Credentials{}, errors.New("refresh token: response has no access token")
	}

	return res.toCredentials(c.now()), nil
}
