package handlers

import (
	"activity-map-service/internal/api/dto"
	"activity-map-service/internal/domain"
	"activity-map-service/internal/format"
	"activity-map-service/internal/mapview"
	"activity-map-service/internal/services"
	"time"
)

func toActivityResponse(a domain.Activity, t domain.Track, loc *time.Location) dto.ActivityResponse {
	res := dto.ActivityResponse{
		ID:                  a.ID,
		Name:                a.Name,
		Type:                string(a.Type),
		SportType:           a.SourceType,
		StartDate:           a.StartDate,
		DistanceMeters:      a.DistanceMeters,
		MovingTimeSeconds:   a.MovingTimeSeconds,
		ElevationGainMeters: a.ElevationGainMeters,
		Polyline:            a.Polyline,
		Color:               mapview.Color(a.Type),
		RouteLengthMeters:   services.PathLengthMeters(t.Coordinates),
		Display: dto.ActivityDisplay{
			Distance:  format.Distance(a.DistanceMeters),
			Duration:  format.Duration(a.MovingTimeSeconds),
			Elevation: format.Elevation(a.ElevationGainMeters),
			Date:      format.Date(a.StartDate, loc),
		},
	}
	if t.Err != nil {
		res.RouteError = t.Err.Error()
	}
	return res
}

func toStatsResponse(s domain.Stats) dto.StatsResponse {
	return dto.StatsResponse{
		TotalActivities:      s.TotalActivities,
		TotalDistanceMeters:  s.TotalDistanceMeters,
		TotalElevationMeters: s.TotalElevationMeters,
		TotalTimeSeconds:     s.TotalTimeSeconds,
		Display: dto.StatsDisplay{
			Distance:  format.Distance(s.TotalDistanceMeters),
			Elevation: format.Elevation(s.TotalElevationMeters),
			Duration:  format.Duration(s.TotalTimeSeconds),
		},
	}
}

func toBoundsResponse(b domain.Bounds, ok bool) *dto.BoundsResponse {
	if !ok {
		return nil
	}
	return &dto.BoundsResponse{MinLat: b.MinLat, MinLng: b.MinLng, MaxLat: b.MaxLat, MaxLng: b.MaxLng}
}

func toFrameResponse(f services.Frame) dto.FrameResponse {
	return dto.FrameResponse{PaddingPx: f.PaddingPx, MaxZoom: f.MaxZoom}
}

func toListResponse(d services.Dashboard, loc *time.Location) dto.ListActivitiesResponse {
	res := dto.ListActivitiesResponse{
		Activities: make([]dto.ActivityResponse, 0, len(d.Activities)),
		Stats:      toStatsResponse(d.Stats),
		Years:      d.Years,
		Bounds:     toBoundsResponse(d.Bounds, d.HasBounds),
		Frame:      toFrameResponse(d.Frame),
		Viewport: dto.ViewportResponse{
			Lat:  d.Viewport.Center.Lat,
			Lng:  d.Viewport.Center.Lng,
			Zoom: d.Viewport.Zoom,
		},
	}

	for i, a := range d.Activities {
		res.Activities = append(res.Activities, toActivityResponse(a, d.Tracks[i], loc))
	}
	if d.Selected != nil {
		id := d.Selected.ID
		res.SelectedID = &id
	}
	for _, e := range mapview.Legend() {
		res.Legend = append(res.Legend, dto.LegendEntryResponse{Type: string(e.Type), Label: e.Label, Color: e.Color})
	}

	return res
}
