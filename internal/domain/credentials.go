package domain

import "time"

// OAuth credentials for one athlete, passed explicitly to provider adapters.
type Credentials struct {
	AthleteID    int64
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Report whether the access token is expired at now, treating tokens that
// expire within skew as already expired.
func (c Credentials) Expired(now time.Time, skew time.Duration) bool {
	if c.AccessToken == "" || c.ExpiresAt.IsZero() {
		return true
	}
	return !now.Add(skew).Before(c.ExpiresAt)
}
