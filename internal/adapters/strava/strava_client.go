package strava

import (
	"errors"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultAuthBaseURL = "https://www.strava.com/oauth"
	defaultAPIBaseURL  = "https://www.strava.com/api/v3"

	// Read access to public and private activities.
	authScope = "read,activity:read_all"
)

// StravaClient implements AuthProvider and ActivityProvider against the Strava API.
//
// It holds the application's OAuth client identity only; athlete credentials
// are passed in explicitly on every call. The client is safe for concurrent use.
type StravaClient struct {
	session        *http.Client
	clientID       string
	clientSecret   string
	redirectURL    string
	authBaseURL    string
	apiBaseURL     string
	maxAttempts    int
	initialBackoff time.Duration
	now            func() time.Time
}

func NewStravaClient(clientID string, clientSecret string, redirectURL string) (*StravaClient, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("strava client id and secret must be non-empty")
	}
	if redirectURL == "" {
		return nil, errors.New("strava redirect url must be non-empty")
	}

	client := &StravaClient{
		session:        &http.Client{Timeout: 15 * time.Second},
		clientID:       clientID,
		clientSecret:   clientSecret,
		redirectURL:    redirectURL,
		authBaseURL:    defaultAuthBaseURL,
		apiBaseURL:     defaultAPIBaseURL,
		maxAttempts:    4,
		initialBackoff: 200 * time.Millisecond,
		now:            time.Now,
	}

	return client, nil
}

// AuthURL returns the Strava consent page URL; Strava redirects back with code and state.
func (c *StravaClient) AuthURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", c.redirectURL)
	q.Set("approval_prompt", "force")
	q.Set("scope", authScope)
	if state != "" {
		q.Set("state", state)
	}

	return c.authBaseURL + "/authorize?" + q.Encode()
}
