package service_test

import (
	"context"
	"errors"
	"testing"

	"baroudique/routeengine/domain"
	"baroudique/routeengine/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRouter struct {
	name   string
	calls  int
	routed domain.RoutedPath
	err    error
}

func (s *stubRouter) Name() string { return s.name }

func (s *stubRouter) Route(ctx context.Context, coords []domain.Coordinate, prefs domain.RoutePreferences) (domain.RoutedPath, error) {
	s.calls++
	return s.routed, s.err
}

type stubElevation struct {
	calls   int
	summary domain.ElevationSummary
	err     error
}

func (s *stubElevation) BuildProfile(ctx context.Context, path []domain.Coordinate, totalDistance float64) (domain.ElevationSummary, error) {
	s.calls++
	return s.summary, s.err
}

type stubRoads struct {
	records []domain.RoadAttributeRecord
}

func (s *stubRoads) FetchRoadData(ctx context.Context, path []domain.Coordinate) []domain.RoadAttributeRecord {
	return s.records
}

type stubQuality struct {
	lastSummary domain.RouteSummary
	lastRecords []domain.RoadAttributeRecord
	result      domain.RouteQuality
}

func (s *stubQuality) Score(summary domain.RouteSummary, prefs domain.RoutePreferences, records []domain.RoadAttributeRecord) domain.RouteQuality {
	s.lastSummary = summary
	s.lastRecords = records
	return s.result
}

func waypointsFor(coords ...domain.Coordinate) []domain.Waypoint {
	wps := make([]domain.Waypoint, len(coords))
	for i, c := range coords {
		wps[i] = domain.Waypoint{ID: string(rune('a' + i)), Coordinate: c}
	}
	return wps
}

var testRouted = domain.RoutedPath{
	Coordinates: []domain.Coordinate{
		{Lat: 52.50, Lon: 13.40},
		{Lat: 52.51, Lon: 13.41},
		{Lat: 52.52, Lon: 13.42},
	},
	Distance: 3200,
	Duration: 640,
}

func TestGenerateRoute(t *testing.T) {
	start := domain.Coordinate{Lat: 52.50, Lon: 13.40}
	end := domain.Coordinate{Lat: 52.52, Lon: 13.42}

	t.Run("rejects fewer than two waypoints before routing", func(t *testing.T) {
		router := &stubRouter{name: "ors"}
		svc := service.NewRoutePlannerService([]service.RoutingProvider{router},
			&stubElevation{}, &stubRoads{}, &stubQuality{})

		_, err := svc.GenerateRoute(context.Background(), waypointsFor(start), domain.RoutePreferences{})
		require.Error(t, err)
		assert.Equal(t, domain.ErrInvalidInput, domain.ErrorCode(err))
		assert.Equal(t, 0, router.calls)
	})

	t.Run("rejects invalid preferences", func(t *testing.T) {
		router := &stubRouter{name: "ors", routed: testRouted}
		svc := service.NewRoutePlannerService([]service.RoutingProvider{router},
			&stubElevation{}, &stubRoads{}, &stubQuality{})

		_, err := svc.GenerateRoute(context.Background(), waypointsFor(start, end),
			domain.RoutePreferences{RouteType: "teleport"})
		require.Error(t, err)
		assert.Equal(t, domain.ErrInvalidInput, domain.ErrorCode(err))
		assert.Equal(t, 0, router.calls)
	})

	t.Run("falls back to the next routing provider", func(t *testing.T) {
		primary := &stubRouter{name: "ors", err: errors.New("quota exceeded")}
		fallback := &stubRouter{name: "osrm", routed: testRouted}
		svc := service.NewRoutePlannerService([]service.RoutingProvider{primary, fallback},
			&stubElevation{}, &stubRoads{}, &stubQuality{})

		result, err := svc.GenerateRoute(context.Background(), waypointsFor(start, end), domain.RoutePreferences{})
		require.NoError(t, err)
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, 1, fallback.calls)
		assert.Equal(t, testRouted.Distance, result.Distance)
	})

	t.Run("fails with routing error when every provider fails", func(t *testing.T) {
		primary := &stubRouter{name: "ors", err: errors.New("quota exceeded")}
		fallback := &stubRouter{name: "osrm", err: errors.New("connection refused")}
		elevation := &stubElevation{}
		svc := service.NewRoutePlannerService([]service.RoutingProvider{primary, fallback},
			elevation, &stubRoads{}, &stubQuality{})

		_, err := svc.GenerateRoute(context.Background(), waypointsFor(start, end), domain.RoutePreferences{})
		require.Error(t, err)
		assert.Equal(t, domain.ErrRouting, domain.ErrorCode(err))
		assert.Contains(t, err.Error(), "quota exceeded")
		assert.Contains(t, err.Error(), "connection refused")
		assert.Equal(t, 0, elevation.calls)
	})

	t.Run("elevation failure is fatal", func(t *testing.T) {
		router := &stubRouter{name: "ors", routed: testRouted}
		elevation := &stubElevation{err: domain.WrapErrorf(nil, domain.ErrElevationService, "providers down")}
		svc := service.NewRoutePlannerService([]service.RoutingProvider{router},
			elevation, &stubRoads{}, &stubQuality{})

		_, err := svc.GenerateRoute(context.Background(), waypointsFor(start, end), domain.RoutePreferences{})
		require.Error(t, err)
		assert.Equal(t, domain.ErrElevationService, domain.ErrorCode(err))
	})

	t.Run("assembles the full result", func(t *testing.T) {
		router := &stubRouter{name: "ors", routed: testRouted}
		elevation := &stubElevation{summary: domain.ElevationSummary{TotalAscent: 42, MaxElevation: 80, MinElevation: 38}}
		records := []domain.RoadAttributeRecord{{WayID: "9", Highway: "residential"}}
		quality := &stubQuality{result: domain.RouteQuality{OverallScore: 77}}
		svc := service.NewRoutePlannerService([]service.RoutingProvider{router},
			elevation, &stubRoads{records: records}, quality)

		result, err := svc.GenerateRoute(context.Background(), waypointsFor(start, end), domain.RoutePreferences{})
		require.NoError(t, err)

		assert.Equal(t, testRouted.Coordinates, result.Coordinates)
		assert.Equal(t, testRouted.Distance, result.Distance)
		assert.Equal(t, testRouted.Duration, result.Duration)
		assert.Equal(t, 42.0, result.Elevation.TotalAscent)
		assert.Equal(t, 77, result.Quality.OverallScore)
		assert.Empty(t, result.Warnings)

		// the scorer sees the routed distance and the profiled ascent
		assert.Equal(t, domain.RouteSummary{Distance: 3200, Ascent: 42}, quality.lastSummary)
		assert.Equal(t, records, quality.lastRecords)
	})

	t.Run("missing road data still scores", func(t *testing.T) {
		router := &stubRouter{name: "ors", routed: testRouted}
		quality := &stubQuality{result: domain.RouteQuality{OverallScore: 61}}
		svc := service.NewRoutePlannerService([]service.RoutingProvider{router},
			&stubElevation{}, &stubRoads{records: nil}, quality)

		result, err := svc.GenerateRoute(context.Background(), waypointsFor(start, end), domain.RoutePreferences{})
		require.NoError(t, err)
		assert.Equal(t, 61, result.Quality.OverallScore)
		assert.Nil(t, quality.lastRecords)
	})
}

func TestGenerateWarnings(t *testing.T) {
	t.Run("all three warnings can fire together", func(t *testing.T) {
		warnings := service.GenerateWarnings(
			domain.RoutedPath{Distance: 120000, Duration: 15000},
			domain.RoutePreferences{MaxGradient: 4})

		require.Len(t, warnings, 3)
		assert.Equal(t, "Long route: Consider rest stops and weather conditions", warnings[0])
		assert.Equal(t, "Extended ride time: Plan for nutrition and hydration", warnings[1])
		assert.Equal(t, "Strict gradient limit: Route may use busier roads to avoid hills", warnings[2])
	})

	t.Run("thresholds are exclusive", func(t *testing.T) {
		warnings := service.GenerateWarnings(
			domain.RoutedPath{Distance: 100000, Duration: 14400},
			domain.RoutePreferences{MaxGradient: 5})
		assert.Empty(t, warnings)
	})

	t.Run("unset gradient limit is not strict", func(t *testing.T) {
		warnings := service.GenerateWarnings(domain.RoutedPath{Distance: 5000}, domain.RoutePreferences{})
		assert.Empty(t, warnings)
	})
}
