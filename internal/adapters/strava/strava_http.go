package strava

import (
	"activity-map-service/internal/ports"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// HTTPStatusError is returned when Strava answers with a 4xx or 5xx status.
type HTTPStatusError struct {
	Code int
	Body string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("strava: status %d: %s", e.Code, e.Body)
}

// Unwrap exposes the provider-neutral condition behind the status, if any.
func (e *HTTPStatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ports.ErrUnauthorized
	case http.StatusNotFound:
		return ports.ErrNotFound
	}
	return nil
}

// Report whether err is an authorization failure from Strava (revoked or invalid token).
func IsUnauthorized(err error) bool {
	var he *HTTPStatusError
	return errors.As(err, &he) && (he.Code == http.StatusUnauthorized || he.Code == http.StatusForbidden)
}

// Report whether err means the requested resource does not exist.
func IsNotFound(err error) bool {
	var he *HTTPStatusError
	return errors.As(err, &he) && he.Code == http.StatusNotFound
}

func (c *StravaClient) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
	accessToken string,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *StravaClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &HTTPStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx responses)
// using exponential backoff while respecting context cancellation.
func (c *StravaClient) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	backoff := c.initialBackoff

	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *HTTPStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == c.maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

// getJSON issues an authenticated GET and decodes the JSON response into out.
func (c *StravaClient) getJSON(ctx context.Context, url string, accessToken string, out any) error {
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, url, nil, accessToken)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// postJSON sends payload as a JSON body and decodes the JSON response into out.
func (c *StravaClient) postJSON(ctx context.Context, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, url, bytes.NewReader(body), "")
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
