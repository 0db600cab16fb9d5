package domain

// Coordinate is a WGS84 (lat, lon) pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Waypoint is a user-specified stop that defines route shape. The ordered
// waypoint slice defines route order: first = start, last = end.
type Waypoint struct {
	ID         string     `json:"id"`
	Coordinate Coordinate `json:"coordinate"`
	Address    string     `json:"address,omitempty"`
}

type RouteType string

const (
	RouteTypeFastest  RouteType = "fastest"
	RouteTypeSafest   RouteType = "safest"
	RouteTypeBalanced RouteType = "balanced"
	RouteTypeScenic   RouteType = "scenic"
)

func (rt RouteType) Valid() bool {
	switch rt {
	case RouteTypeFastest, RouteTypeSafest, RouteTypeBalanced, RouteTypeScenic, "":
		return true
	}
	return false
}

// RoutePreferences is immutable per route request.
type RoutePreferences struct {
	Profile             string    `json:"profile"`
	AvoidBusyRoads      bool      `json:"avoidBusyRoads"`
	PreferSmoothSurface bool      `json:"preferSmoothSurface"`
	MaxGradient         float64   `json:"maxGradient"`
	RouteType           RouteType `json:"routeType"`
}

func (p RoutePreferences) Validate() error {
	if !p.RouteType.Valid() {
		return WrapErrorf(nil, ErrInvalidInput, "unknown route type %q", p.RouteType)
	}
	if p.MaxGradient < 0 || p.MaxGradient > 30 {
		return WrapErrorf(nil, ErrInvalidInput, "max gradient %.1f out of range [0,30]", p.MaxGradient)
	}
	return nil
}

// RoutedPath is the raw output of a routing provider.
type RoutedPath struct {
	Coordinates []Coordinate `json:"coordinates"`
	Distance    float64      `json:"distance"` // meters
	Duration    float64      `json:"duration"` // seconds
}

type ElevationPoint struct {
	DistanceFromStart float64 `json:"distance"`  // meters, non-decreasing
	Elevation         float64 `json:"elevation"` // meters, rounded to 0.1m
	Grade             float64 `json:"grade"`     // percent, clamped to [-25, 25]
}

type ElevationSummary struct {
	TotalAscent  float64          `json:"ascent"`
	TotalDescent float64          `json:"descent"`
	MaxElevation float64          `json:"maxElevation"`
	MinElevation float64          `json:"minElevation"`
	Profile      []ElevationPoint `json:"profile"`
}

// RoadAttributeRecord is an OSM way with the tags relevant to ride quality.
// Sourced from an external road-attribute provider, never created here.
type RoadAttributeRecord struct {
	WayID      string       `json:"wayId"`
	Surface    string       `json:"surface,omitempty"`
	Smoothness string       `json:"smoothness,omitempty"`
	Highway    string       `json:"highway"`
	Name       string       `json:"name,omitempty"`
	Geometry   []Coordinate `json:"coordinates"`
}

// RouteSummary is the slice of a routed path the quality engine needs.
type RouteSummary struct {
	Distance float64 // meters
	Ascent   float64 // meters, 0 when unknown
}

type OSMDataDetails struct {
	Confidence int      `json:"confidence"`
	RoadTypes  []string `json:"roadTypes"`
	Surfaces   []string `json:"surfaces"`
	Smoothness []string `json:"smoothness"`
}

type QualityDetails struct {
	SurfaceType      string          `json:"surfaceType"`  // excellent | good | fair | poor
	TrafficLevel     string          `json:"trafficLevel"` // very-low | low | moderate | high | very-high
	MaxGradient      float64         `json:"maxGradient"`
	AvgGradient      float64         `json:"avgGradient"`
	HasShoulders     bool            `json:"hasShoulders"`
	HasCycleLanes    bool            `json:"hasCycleLanes"`
	ScenicHighlights []string        `json:"scenicHighlights"`
	OSMData          *OSMDataDetails `json:"osmData,omitempty"`
}

// RouteQuality is recomputed per route generation and never mutated afterwards.
type RouteQuality struct {
	SurfaceScore        int            `json:"surfaceScore"`
	TrafficScore        int            `json:"trafficScore"`
	GradientScore       int            `json:"gradientScore"`
	InfrastructureScore int            `json:"infrastructureScore"`
	ScenicScore         int            `json:"scenicScore"`
	OverallScore        int            `json:"overallScore"`
	OSMScore            *int           `json:"osmScore,omitempty"`
	Details             QualityDetails `json:"details"`
}

// RouteResult is built once per successful generation and replaced wholesale
// when waypoints change.
type RouteResult struct {
	Coordinates []Coordinate     `json:"coordinates"`
	Distance    float64          `json:"distance"`
	Duration    float64          `json:"duration"`
	Elevation   ElevationSummary `json:"elevation"`
	Quality     RouteQuality     `json:"quality"`
	Warnings    []string         `json:"warnings"`
}
