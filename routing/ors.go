package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"baroudique/routeengine/domain"

	"github.com/gojek/heimdall/v7/httpclient"
)

const DefaultCyclingProfile = "cycling-regular"

// ORSClient routes through the OpenRouteService directions API. It is the
// preference-aware provider: avoid features and profile weightings are
// derived from the rider preferences.
type ORSClient struct {
	baseURL string
	apiKey  string
	client  *httpclient.Client
}

func NewORSClient(baseURL, apiKey string, timeout time.Duration) *ORSClient {
	return &ORSClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  httpclient.NewClient(httpclient.WithHTTPTimeout(timeout)),
	}
}

func (c *ORSClient) Name() string { return "openrouteservice" }

// Configured reports whether an API key was supplied. An unconfigured client
// should be left out of the provider chain.
func (c *ORSClient) Configured() bool { return c.apiKey != "" }

func avoidFeatures(prefs domain.RoutePreferences) []string {
	avoid := []string{"tollways"}
	if prefs.AvoidBusyRoads {
		avoid = append(avoid, "ferries")
	}
	return avoid
}

func weightings(prefs domain.RoutePreferences, profile string) map[string]float64 {
	w := map[string]float64{
		"steepness_difficulty": 2,
		"quiet":                0.6,
	}
	if prefs.MaxGradient > 0 {
		w["steepness_difficulty"] = math.Min(prefs.MaxGradient/10, 3)
	}
	if prefs.AvoidBusyRoads {
		w["quiet"] = 1.2
	}
	if prefs.RouteType == domain.RouteTypeScenic {
		w["green"] = 1.0
	}
	if prefs.PreferSmoothSurface {
		w["surface_quality_known"] = 1.0
	}

	if profile == "cycling-road" {
		w["quiet"] = 0.8
		if prefs.AvoidBusyRoads {
			w["quiet"] = 1.5
		}
		w["steepness_difficulty"] = 1.8
		if prefs.MaxGradient > 0 {
			w["steepness_difficulty"] = math.Min(prefs.MaxGradient/8, 2.5)
		}
	}
	return w
}

type orsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Elevation    bool        `json:"elevation"`
	Instructions bool        `json:"instructions"`
	Options      orsOptions  `json:"options"`
}

type orsOptions struct {
	AvoidFeatures []string         `json:"avoid_features"`
	ProfileParams orsProfileParams `json:"profile_params"`
}

type orsProfileParams struct {
	Weightings map[string]float64 `json:"weightings"`
}

type orsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

func (c *ORSClient) Route(ctx context.Context, coords []domain.Coordinate, prefs domain.RoutePreferences) (domain.RoutedPath, error) {
	profile := prefs.Profile
	if profile == "" {
		profile = DefaultCyclingProfile
	}

	// ORS expects [lng, lat]
	pairs := make([][]float64, len(coords))
	for i, coord := range coords {
		pairs[i] = []float64{coord.Lon, coord.Lat}
	}

	body := orsRequest{
		Coordinates:  pairs,
		Elevation:    true,
		Instructions: false,
		Options: orsOptions{
			AvoidFeatures: avoidFeatures(prefs),
			ProfileParams: orsProfileParams{Weightings: weightings(prefs, profile)},
		},
	}
	bodyBytes, err := json.Marshal(&body)
	if err != nil {
		return domain.RoutedPath{}, err
	}

	url := fmt.Sprintf("%s/%s/geojson", c.baseURL, profile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return domain.RoutedPath{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	res, err := c.client.Do(req)
	if err != nil {
		return domain.RoutedPath{}, fmt.Errorf("openrouteservice: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return domain.RoutedPath{}, fmt.Errorf("openrouteservice: unexpected status %d", res.StatusCode)
	}

	data := &orsResponse{}
	if err := json.NewDecoder(res.Body).Decode(data); err != nil {
		return domain.RoutedPath{}, fmt.Errorf("openrouteservice: %w", err)
	}
	if len(data.Features) == 0 {
		return domain.RoutedPath{}, errors.New("openrouteservice: no route found")
	}

	route := data.Features[0]
	path := make([]domain.Coordinate, 0, len(route.Geometry.Coordinates))
	for _, pair := range route.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		path = append(path, domain.Coordinate{Lat: pair[1], Lon: pair[0]})
	}

	return domain.RoutedPath{
		Coordinates: path,
		Distance:    route.Properties.Summary.Distance,
		Duration:    route.Properties.Summary.Duration,
	}, nil
}
