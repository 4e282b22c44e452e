package api

import (
	"activity-map-service/internal/adapters/cache"
	"activity-map-service/internal/adapters/strava"
	"activity-map-service/internal/api/dto"
	"activity-map-service/internal/auth"
	"activity-map-service/internal/domain"
	"activity-map-service/internal/polyline"
	"activity-map-service/internal/ports"
	"activity-map-service/internal/services"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/paulmach/orb/geojson"
	"github.com/redis/go-redis/v9"
	"github.com/tkrajina/gpxgo/gpx"
)

const testAthlete = 42

type memoryTokens struct {
	mu    sync.Mutex
	creds map[int64]domain.Credentials
}

func (m *memoryTokens) Get(ctx context.Context, athleteID int64) (domain.Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.creds[athleteID]
	if !ok {
		return domain.Credentials{}, ports.ErrCredentialsNotFound
	}
	return c, nil
}

func (m *memoryTokens) Put(ctx context.Context, creds domain.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds[creds.AthleteID] = creds
	return nil
}

func (m *memoryTokens) Delete(ctx context.Context, athleteID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.creds, athleteID)
	return nil
}

type fakeAuth struct{}

func (fakeAuth) AuthURL(state string) string {
	return "https://strava.test/oauth/authorize?state=" + url.QueryEscape(state)
}

func (fakeAuth) ExchangeCode(ctx context.Context, code string) (domain.Credentials, error) {
	if code == "bad" {
		return domain.Credentials{}, errors.New("invalid code")
	}
	return domain.Credentials{
		AthleteID:    testAthlete,
		AccessToken:  "fresh",
		RefreshToken: "rt",
		ExpiresAt:    time.Now().Add(6 * time.Hour),
	}, nil
}

func (fakeAuth) Refresh(ctx context.Context, refreshToken string) (domain.Credentials, error) {
	return domain.Credentials{}, errors.New("refresh not expected")
}

type failingProvider struct{}

func (failingProvider) ListActivities(ctx context.Context, creds domain.Credentials, page int, perPage int) ([]domain.Activity, error) {
	return nil, &strava.HTTPStatusError{Code: http.StatusServiceUnavailable, Body: "maintenance"}
}

func (failingProvider) GetActivity(ctx context.Context, creds domain.Credentials, id int64) (domain.Activity, error) {
	return domain.Activity{}, &strava.HTTPStatusError{Code: http.StatusUnauthorized, Body: "revoked"}
}

var (
	runRoute  = []domain.Coordinate{{Lat: 45.0, Lng: 5.0}, {Lat: 45.1, Lng: 5.1}}
	rideRoute = []domain.Coordinate{{Lat: 44.0, Lng: 4.0}, {Lat: 44.2, Lng: 4.3}}
)

func testActivities() []domain.Activity {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 9, 0, 0, 0, time.UTC) }
	return []domain.Activity{
		{ID: 1, Name: "Lunch run", Type: domain.ActivityRun, SourceType: "Run", StartDate: day(2024, 3, 1), DistanceMeters: 10000, MovingTimeSeconds: 3000, ElevationGainMeters: 50, Polyline: polyline.Encode(runRoute)},
		{ID: 2, Name: "Gravel", Type: domain.ActivityRide, SourceType: "Ride", StartDate: day(2024, 6, 1), DistanceMeters: 60000, MovingTimeSeconds: 9000, ElevationGainMeters: 800, Polyline: polyline.Encode(rideRoute)},
		{ID: 3, Name: "Pool", Type: domain.ActivityOther, SourceType: "Swim", StartDate: day(2024, 6, 2), DistanceMeters: 2000, MovingTimeSeconds: 2400},
		{ID: 4, Name: "Old run", Type: domain.ActivityRun, SourceType: "Run", StartDate: day(2023, 9, 9), DistanceMeters: 5000, MovingTimeSeconds: 1500, ElevationGainMeters: 10, Polyline: polyline.Encode(runRoute)},
		{ID: 5, Name: "Corrupt", Type: domain.ActivityRun, SourceType: "Run", StartDate: day(2024, 1, 1), DistanceMeters: 1000, MovingTimeSeconds: 300, Polyline: "_p~iF~ps|"},
	}
}

type testEnv struct {
	handler  http.Handler
	tokens   *memoryTokens
	sessions *auth.Sessions
	provider *strava.MockActivityProvider
	redis    *miniredis.Miniredis
}

func newTestEnv(t *testing.T, provider ports.ActivityProvider) *testEnv {
	t.Helper()

	tokens := &memoryTokens{creds: map[int64]domain.Credentials{
		testAthlete: {AthleteID: testAthlete, AccessToken: "at", RefreshToken: "rt", ExpiresAt: time.Now().Add(time.Hour)},
	}}

	sessions, err := auth.NewSessions("test-secret-test-secret-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	env := &testEnv{tokens: tokens, sessions: sessions, redis: mr}
	if provider == nil {
		env.provider = strava.NewMockActivityProvider(testActivities())
		provider = env.provider
	}

	svc, err := services.NewActivityService(
		provider,
		auth.NewTokenSource(tokens, fakeAuth{}),
		cache.NewRedisActivityCache(rdb, time.Minute),
		1,
		200,
	)
	if err != nil {
		t.Fatalf("activity service: %v", err)
	}

	env.handler = NewRouter(Deps{
		Auth:       fakeAuth{},
		Tokens:     tokens,
		Activities: svc,
		Sessions:   sessions,
		Location:   time.UTC,
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, target string, athleteID int64, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if athleteID != 0 {
		token, err := e.sessions.Issue(athleteID)
		if err != nil {
			t.Fatalf("issue session: %v", err)
		}
		req.AddCookie(&http.Cookie{Name: "session", Value: token})
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/health", 0)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("request id = %q, want caller's", got)
	}
}

func TestListActivities(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/activities", testAthlete)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}

	var res dto.ListActivitiesResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var got []int64
	for _, a := range res.Activities {
		got = append(got, a.ID)
	}
	if want := []int64{2, 1, 5, 4}; len(got) != len(want) || got[0] != 2 || got[1] != 1 || got[2] != 5 || got[3] != 4 {
		t.Fatalf("ids = %v, want %v", got, want)
	}

	if res.Stats.TotalActivities != 4 || res.Stats.TotalDistanceMeters != 76000 {
		t.Fatalf("stats = %+v", res.Stats)
	}
	if res.Stats.Display.Distance != "76.0 km" || res.Stats.Display.Duration != "3h 50m" {
		t.Fatalf("stats display = %+v", res.Stats.Display)
	}
	if res.Activities[2].RouteError == "" {
		t.Fatalf("corrupt route should report an error")
	}
	if res.Activities[0].Color != "#1e88e5" || res.Activities[0].RouteLengthMeters <= 0 {
		t.Fatalf("ride = %+v", res.Activities[0])
	}
	if res.Bounds == nil || res.Bounds.MinLat != 44.0 || res.Bounds.MaxLat != 45.1 {
		t.Fatalf("bounds = %+v", res.Bounds)
	}
	if res.Frame.MaxZoom != 13 || res.SelectedID != nil {
		t.Fatalf("frame = %+v selected = %v", res.Frame, res.SelectedID)
	}
	if len(res.Years) != 2 || res.Years[0] != 2024 || res.Years[1] != 2023 {
		t.Fatalf("years = %v", res.Years)
	}
	if len(res.Legend) != 4 {
		t.Fatalf("legend = %+v", res.Legend)
	}
}

func TestListActivitiesFiltersAndSelection(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/activities?type=Run&year=2024&selected=1", testAthlete)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}

	var res dto.ListActivitiesResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(res.Activities) != 2 || res.Stats.TotalActivities != 2 {
		t.Fatalf("activities = %d stats = %+v", len(res.Activities), res.Stats)
	}
	if res.SelectedID == nil || *res.SelectedID != 1 || res.Frame.MaxZoom != 15 {
		t.Fatalf("selected = %v frame = %+v", res.SelectedID, res.Frame)
	}
	if res.Bounds == nil || res.Bounds.MinLat != 45.0 || res.Bounds.MaxLng != 5.1 {
		t.Fatalf("bounds = %+v", res.Bounds)
	}
}

func TestListActivitiesCachesProviderCalls(t *testing.T) {
	env := newTestEnv(t, nil)

	for i := 0; i < 3; i++ {
		if rec := env.do(t, http.MethodGet, "/activities", testAthlete); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
	if env.provider.Calls != 1 {
		t.Fatalf("provider calls = %d, want 1", env.provider.Calls)
	}
}

func TestListActivitiesBadRequests(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, target := range []string{
		"/activities?type=Swim",
		"/activities?type=run",
		"/activities?year=twenty",
		"/activities?year=-1",
		"/activities?selected=x",
	} {
		rec := env.do(t, http.MethodGet, target, testAthlete)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestActivitiesRequireSession(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, target := range []string{"/activities", "/activities/map", "/activities/1", "/activities/1/gpx"} {
		rec := env.do(t, http.MethodGet, target, 0)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401", target, rec.Code)
		}
	}

	rec := env.do(t, http.MethodGet, "/activities", 0, &http.Cookie{Name: "session", Value: "forged"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("forged cookie: status = %d, want 401", rec.Code)
	}
}

func TestActivitiesWithoutStoredCredentials(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/activities", 7)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestActivitiesUpstreamFailures(t *testing.T) {
	env := newTestEnv(t, failingProvider{})

	if rec := env.do(t, http.MethodGet, "/activities", testAthlete); rec.Code != http.StatusBadGateway {
		t.Fatalf("list: status = %d, want 502", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/activities/1", testAthlete); rec.Code != http.StatusUnauthorized {
		t.Fatalf("detail: status = %d, want 401", rec.Code)
	}
}

func TestActivitiesMap(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/activities/map?type=Ride", testAthlete)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Fatalf("content type = %q", ct)
	}

	fc, err := geojson.UnmarshalFeatureCollection(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(fc.Features) != 1 || fc.Features[0].Properties.MustString("type") != "Ride" {
		t.Fatalf("features = %+v", fc.Features)
	}
	if b := fc.BBox.Bound(); b.Min[1] != 44.0 || b.Max[0] != 4.3 {
		t.Fatalf("bbox = %v", b)
	}
}

func TestActivityDetail(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/activities/2", testAthlete)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}

	var res dto.ActivityDetailResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Activity.ID != 2 || len(res.Coordinates) != 2 || res.Frame.MaxZoom != 15 {
		t.Fatalf("detail = %+v", res)
	}
	if res.Coordinates[1] != [2]float64{44.2, 4.3} {
		t.Fatalf("coordinates = %v", res.Coordinates)
	}

	cases := map[string]int{
		"/activities/99": http.StatusNotFound,
		"/activities/0":  http.StatusBadRequest,
		"/activities/ab": http.StatusBadRequest,
		"/activities/5":  http.StatusUnprocessableEntity,
	}
	for target, want := range cases {
		if rec := env.do(t, http.MethodGet, target, testAthlete); rec.Code != want {
			t.Fatalf("%s: status = %d, want %d", target, rec.Code, want)
		}
	}
}

func TestActivityGPX(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/activities/1/gpx", testAthlete)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/gpx+xml" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "activity-1.gpx") {
		t.Fatalf("content disposition = %q", cd)
	}

	doc, err := gpx.ParseBytes(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("parse gpx: %v", err)
	}
	if len(doc.Tracks) != 1 || len(doc.Tracks[0].Segments[0].Points) != 2 {
		t.Fatalf("unexpected gpx: %+v", doc.Tracks)
	}

	if rec := env.do(t, http.MethodGet, "/activities/3/gpx", testAthlete); rec.Code != http.StatusNotFound {
		t.Fatalf("activity without route: status = %d, want 404", rec.Code)
	}
}

func TestLoginRedirect(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/auth/login", 0)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}

	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	state := loc.Query().Get("state")
	if state == "" || env.sessions.VerifyState(state) != nil {
		t.Fatalf("invalid state in redirect: %q", state)
	}

	c := cookieNamed(rec, "oauth_state")
	if c == nil || c.Value != state || !c.HttpOnly {
		t.Fatalf("state cookie = %+v", c)
	}
}

func TestCallback(t *testing.T) {
	env := newTestEnv(t, nil)

	state, err := env.sessions.IssueState()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	stateCookie := &http.Cookie{Name: "oauth_state", Value: state}

	t.Run("denied", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/auth/callback?error=access_denied", 0, stateCookie)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("missing code", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/auth/callback?state="+url.QueryEscape(state), 0, stateCookie)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("state mismatch", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/auth/callback?code=abc&state=other", 0, stateCookie)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("exchange failure", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/auth/callback?code=bad&state="+url.QueryEscape(state), 0, stateCookie)
		if rec.Code != http.StatusBadGateway {
			t.Fatalf("status = %d, want 502", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/auth/callback?code=abc&state="+url.QueryEscape(state), 0, stateCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
		}

		session := cookieNamed(rec, "session")
		if session == nil || session.Value == "" {
			t.Fatalf("missing session cookie")
		}
		claims, err := env.sessions.Verify(session.Value)
		if err != nil || claims.AthleteID != testAthlete {
			t.Fatalf("session claims = %+v err = %v", claims, err)
		}

		stored, err := env.tokens.Get(context.Background(), testAthlete)
		if err != nil || stored.AccessToken != "fresh" {
			t.Fatalf("stored = %+v err = %v", stored, err)
		}
	})
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t, nil)

	// Warm the cache first.
	if rec := env.do(t, http.MethodGet, "/activities", testAthlete); rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	if !env.redis.Exists("activities:42") {
		t.Fatalf("expected cached activities")
	}

	rec := env.do(t, http.MethodPost, "/auth/logout", testAthlete)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if c := cookieNamed(rec, "session"); c == nil || c.MaxAge >= 0 {
		t.Fatalf("session cookie not cleared: %+v", c)
	}
	if _, err := env.tokens.Get(context.Background(), testAthlete); !errors.Is(err, ports.ErrCredentialsNotFound) {
		t.Fatalf("credentials still stored: %v", err)
	}
	if env.redis.Exists("activities:42") {
		t.Fatalf("cache not invalidated")
	}

	if rec := env.do(t, http.MethodGet, "/auth/logout", testAthlete); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET logout: status = %d, want 405", rec.Code)
	}
}
