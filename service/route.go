package service

import (
	"context"
	"errors"
	"log"

	"baroudique/routeengine/domain"
)

// RoutingProvider is one external routing backend. Providers are tried in
// order: the preference-aware one first, the free fallback after.
type RoutingProvider interface {
	Name() string
	Route(ctx context.Context, coords []domain.Coordinate, prefs domain.RoutePreferences) (domain.RoutedPath, error)
}

type ElevationBuilder interface {
	BuildProfile(ctx context.Context, path []domain.Coordinate, totalDistance float64) (domain.ElevationSummary, error)
}

type RoadDataFetcher interface {
	FetchRoadData(ctx context.Context, path []domain.Coordinate) []domain.RoadAttributeRecord
}

type QualityScorer interface {
	Score(summary domain.RouteSummary, prefs domain.RoutePreferences, records []domain.RoadAttributeRecord) domain.RouteQuality
}

// RoutePlannerService sequences routing, elevation profiling and road
// quality scoring into one RouteResult. Every call is self-contained, so
// concurrent generations need no locking.
type RoutePlannerService struct {
	routers   []RoutingProvider
	elevation ElevationBuilder
	roads     RoadDataFetcher
	quality   QualityScorer
}

func NewRoutePlannerService(routers []RoutingProvider, elevation ElevationBuilder,
	roads RoadDataFetcher, quality QualityScorer) *RoutePlannerService {
	return &RoutePlannerService{
		routers:   routers,
		elevation: elevation,
		roads:     roads,
		quality:   quality,
	}
}

// GenerateRoute builds a routed, profiled and scored route through the given
// waypoints. Routing and elevation failures are fatal; road-attribute
// failures degrade to heuristic-only scoring.
func (s *RoutePlannerService) GenerateRoute(ctx context.Context, waypoints []domain.Waypoint,
	prefs domain.RoutePreferences) (domain.RouteResult, error) {

	if len(waypoints) < 2 {
		return domain.RouteResult{}, domain.WrapErrorf(nil, domain.ErrInvalidInput,
			"at least 2 waypoints required for routing, got %d", len(waypoints))
	}
	if err := prefs.Validate(); err != nil {
		return domain.RouteResult{}, err
	}

	coords := make([]domain.Coordinate, len(waypoints))
	for i, wp := range waypoints {
		coords[i] = wp.Coordinate
	}

	routed, err := s.route(ctx, coords, prefs)
	if err != nil {
		return domain.RouteResult{}, err
	}

	summary, err := s.elevation.BuildProfile(ctx, routed.Coordinates, routed.Distance)
	if err != nil {
		return domain.RouteResult{}, err
	}

	records := s.roads.FetchRoadData(ctx, routed.Coordinates)
	qualityScore := s.quality.Score(domain.RouteSummary{
		Distance: routed.Distance,
		Ascent:   summary.TotalAscent,
	}, prefs, records)

	return domain.RouteResult{
		Coordinates: routed.Coordinates,
		Distance:    routed.Distance,
		Duration:    routed.Duration,
		Elevation:   summary,
		Quality:     qualityScore,
		Warnings:    GenerateWarnings(routed, prefs),
	}, nil
}

func (s *RoutePlannerService) route(ctx context.Context, coords []domain.Coordinate,
	prefs domain.RoutePreferences) (domain.RoutedPath, error) {

	var provErrs []error
	for _, router := range s.routers {
		routed, err := router.Route(ctx, coords, prefs)
		if err == nil {
			return routed, nil
		}
		log.Printf("routing provider %s failed: %v", router.Name(), err)
		provErrs = append(provErrs, err)
	}

	return domain.RoutedPath{}, domain.WrapErrorf(errors.Join(provErrs...), domain.ErrRouting,
		"all %d routing providers failed", len(s.routers))
}

// GenerateWarnings emits the advisory strings shown next to a route.
func GenerateWarnings(routed domain.RoutedPath, prefs domain.RoutePreferences) []string {
	warnings := make([]string, 0, 3)

	if routed.Distance > 100000 {
		warnings = append(warnings, "Long route: Consider rest stops and weather conditions")
	}
	if routed.Duration > 14400 {
		warnings = append(warnings, "Extended ride time: Plan for nutrition and hydration")
	}
	if prefs.MaxGradient > 0 && prefs.MaxGradient < 5 {
		warnings = append(warnings, "Strict gradient limit: Route may use busier roads to avoid hills")
	}

	return warnings
}
