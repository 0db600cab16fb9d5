package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"baroudique/routeengine/domain"

	"github.com/gojek/heimdall/v7/httpclient"
	"github.com/twpayne/go-polyline"
)

// OSRMClient routes through the public OSRM cycling profile. OSRM has no
// preference support, so it serves as the free fallback with plain defaults.
type OSRMClient struct {
	baseURL string
	client  *httpclient.Client
}

func NewOSRMClient(baseURL string, timeout time.Duration) *OSRMClient {
	return &OSRMClient{
		baseURL: baseURL,
		client:  httpclient.NewClient(httpclient.WithHTTPTimeout(timeout)),
	}
}

func (c *OSRMClient) Name() string { return "osrm" }

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

func (c *OSRMClient) Route(ctx context.Context, coords []domain.Coordinate, prefs domain.RoutePreferences) (domain.RoutedPath, error) {
	// OSRM wants lng,lat;lng,lat
	pairs := make([]string, len(coords))
	for i, coord := range coords {
		pairs[i] = fmt.Sprintf("%f,%f", coord.Lon, coord.Lat)
	}

	url := fmt.Sprintf("%s/%s?overview=full&geometries=polyline&steps=false", c.baseURL, strings.Join(pairs, ";"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RoutedPath{}, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return domain.RoutedPath{}, fmt.Errorf("osrm: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return domain.RoutedPath{}, fmt.Errorf("osrm: unexpected status %d", res.StatusCode)
	}

	data := &osrmResponse{}
	if err := json.NewDecoder(res.Body).Decode(data); err != nil {
		return domain.RoutedPath{}, fmt.Errorf("osrm: %w", err)
	}
	if data.Code != "Ok" || len(data.Routes) == 0 {
		return domain.RoutedPath{}, errors.New("osrm: no route found")
	}

	route := data.Routes[0]
	decoded, _, err := polyline.DecodeCoords([]byte(route.Geometry))
	if err != nil {
		return domain.RoutedPath{}, fmt.Errorf("osrm: decode geometry: %w", err)
	}

	path := make([]domain.Coordinate, 0, len(decoded))
	for _, pair := range decoded {
		if len(pair) < 2 {
			continue
		}
		path = append(path, domain.Coordinate{Lat: pair[0], Lon: pair[1]})
	}

	return domain.RoutedPath{
		Coordinates: path,
		Distance:    route.Distance,
		Duration:    route.Duration,
	}, nil
}
