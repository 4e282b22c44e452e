package handlers

import (
	"activity-map-service/internal/api/dto"
	"activity-map-service/internal/auth"
	"activity-map-service/internal/domain"
	"activity-map-service/internal/mapview"
	"activity-map-service/internal/polyline"
	"activity-map-service/internal/services"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ActivityHandler serves the athlete's activities, the derived dashboard and route exports.
type ActivityHandler struct {
	Activities *services.ActivityService
	Sessions   *auth.Sessions
	// Location used for calendar years and dates; nil means UTC.
	Location *time.Location
}

// List returns the filtered activities with their statistics and map framing.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, toListResponse(d, h.Location))
}

// Map returns the same selection as List as a GeoJSON FeatureCollection.
func (h *ActivityHandler) Map(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}

	body, err := mapview.FeatureCollection(d, h.Location).MarshalJSON()
	if err != nil {
		log.Printf("encode geojson failed: path=%s err=%v", r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("write geojson failed: path=%s err=%v", r.URL.Path, err)
	}
}

// Get returns one activity with its detailed route.
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, coords, ok := h.detail(w, r)
	if !ok {
		return
	}

	track := domain.Track{ActivityID: a.ID, Coordinates: coords}
	bounds, hasBounds := services.ComputeBounds([][]domain.Coordinate{coords})

	res := dto.ActivityDetailResponse{
		Activity:    toActivityResponse(a, track, h.Location),
		Coordinates: make([][2]float64, 0, len(coords)),
		Bounds:      toBoundsResponse(bounds, hasBounds),
		Frame:       toFrameResponse(services.FrameFor(true)),
	}
	for _, c := range coords {
		res.Coordinates = append(res.Coordinates, [2]float64{c.Lat, c.Lng})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// GPX downloads one activity's route as a GPX file.
func (h *ActivityHandler) GPX(w http.ResponseWriter, r *http.Request) {
	a, coords, ok := h.detail(w, r)
	if !ok {
		return
	}

	body, err := mapview.GPX(a, coords)
	if errors.Is(err, mapview.ErrNoRoute) {
		writeError(w, r, http.StatusNotFound, "activity has no route")
		return
	}
	if err != nil {
		log.Printf("encode gpx failed: activity_id=%d err=%v", a.ID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/gpx+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="activity-%d.gpx"`, a.ID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("write gpx failed: activity_id=%d err=%v", a.ID, err)
	}
}

func (h *ActivityHandler) dashboard(w http.ResponseWriter, r *http.Request) (services.Dashboard, bool) {
	athleteID, ok := requireAthlete(w, r, h.Sessions)
	if !ok {
		return services.Dashboard{}, false
	}

	req, err := parseDashboardRequest(r, h.Location)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return services.Dashboard{}, false
	}

	activities, err := h.Activities.Load(r.Context(), athleteID)
	if err != nil {
		writeUpstreamError(w, r, "load activities", err)
		return services.Dashboard{}, false
	}

	d := services.BuildDashboard(activities, req)
	for _, t := range d.FailedTracks() {
		log.Printf("route decode failed: athlete_id=%d activity_id=%d err=%v", athleteID, t.ActivityID, t.Err)
	}

	return d, true
}

// detail loads one activity and decodes its route. A malformed route answers 422.
func (h *ActivityHandler) detail(w http.ResponseWriter, r *http.Request) (domain.Activity, []domain.Coordinate, bool) {
	athleteID, ok := requireAthlete(w, r, h.Sessions)
	if !ok {
		return domain.Activity{}, nil, false
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "activity id must be a positive integer")
		return domain.Activity{}, nil, false
	}

	a, err := h.Activities.Get(r.Context(), athleteID, id)
	if err != nil {
		writeUpstreamError(w, r, "get activity", err)
		return domain.Activity{}, nil, false
	}

	coords, err := polyline.Decode(a.Polyline)
	if err != nil {
		log.Printf("route decode failed: athlete_id=%d activity_id=%d err=%v", athleteID, a.ID, err)
		writeError(w, r, http.StatusUnprocessableEntity, "activity route is malformed")
		return domain.Activity{}, nil, false
	}

	return a, coords, true
}

// parseDashboardRequest reads type, year and selected from the query string.
// Empty values and "all" mean no restriction.
func parseDashboardRequest(r *http.Request, loc *time.Location) (services.DashboardRequest, error) {
	q := r.URL.Query()
	req := services.DashboardRequest{Filter: services.Filter{Location: loc}}

	if v := strings.TrimSpace(q.Get("type")); v != "" && v != "all" {
		t := domain.ParseActivityType(v)
		if !t.Supported() {
			return services.DashboardRequest{}, fmt.Errorf("unsupported activity type %q", v)
		}
		req.Filter.Type = t
	}

	if v := strings.TrimSpace(q.Get("year")); v != "" && v != "all" {
		year, err := strconv.Atoi(v)
		if err != nil || year <= 0 {
			return services.DashboardRequest{}, fmt.Errorf("year must be a positive integer, got %q", v)
		}
		req.Filter.Year = year
	}

	if v := strings.TrimSpace(q.Get("selected")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return services.DashboardRequest{}, fmt.Errorf("selected must be a positive activity id, got %q", v)
		}
		req.SelectedID = id
	}

	return req, nil
}
