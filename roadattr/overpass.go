package roadattr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"baroudique/routeengine/domain"
	"baroudique/routeengine/geo"

	"github.com/gojek/heimdall/v7/httpclient"
)

// Provider queries an external road-attribute source for ways intersecting a
// bounding box. Implementations must be safe to call with zero results.
type Provider interface {
	Query(ctx context.Context, bbox geo.BoundingBox) ([]domain.RoadAttributeRecord, error)
}

// OverpassClient fetches highway ways with surface/smoothness tags from an
// Overpass API endpoint.
type OverpassClient struct {
	baseURL string
	client  *httpclient.Client
}

func NewOverpassClient(baseURL string, timeout time.Duration) *OverpassClient {
	return &OverpassClient{
		baseURL: baseURL,
		client:  httpclient.NewClient(httpclient.WithHTTPTimeout(timeout)),
	}
}

// non-road classes are excluded from the quality query; the router already
// prefers cycleways and scoring footpaths would skew the surface blend
const excludedHighwayClasses = "footway|cycleway|path|bridleway|steps"

func overpassQuery(bbox geo.BoundingBox) string {
	return fmt.Sprintf(`
		[out:json][timeout:25];
		(
		  way["highway"]
		     ["highway"!~"^(%s)$"]
		     (%f,%f,%f,%f);
		);
		out geom;
	`, excludedHighwayClasses, bbox.South, bbox.West, bbox.North, bbox.East)
}

type overpassGeometry struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassElement struct {
	Type     string             `json:"type"`
	ID       int64              `json:"id"`
	Tags     map[string]string  `json:"tags"`
	Geometry []overpassGeometry `json:"geometry"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

func (c *OverpassClient) Query(ctx context.Context, bbox geo.BoundingBox) ([]domain.RoadAttributeRecord, error) {
	form := "data=" + url.QueryEscape(overpassQuery(bbox))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass: unexpected status %d", res.StatusCode)
	}

	data := &overpassResponse{}
	if err := json.NewDecoder(res.Body).Decode(data); err != nil {
		return nil, fmt.Errorf("overpass: %w", err)
	}

	records := make([]domain.RoadAttributeRecord, 0, len(data.Elements))
	for _, element := range data.Elements {
		if element.Type != "way" || len(element.Geometry) == 0 {
			continue
		}

		highway := element.Tags["highway"]
		if highway == "" {
			highway = "unknown"
		}

		geometry := make([]domain.Coordinate, len(element.Geometry))
		for i, point := range element.Geometry {
			geometry[i] = domain.Coordinate{Lat: point.Lat, Lon: point.Lon}
		}

		records = append(records, domain.RoadAttributeRecord{
			WayID:      strconv.FormatInt(element.ID, 10),
			Surface:    element.Tags["surface"],
			Smoothness: element.Tags["smoothness"],
			Highway:    highway,
			Name:       element.Tags["name"],
			Geometry:   geometry,
		})
	}
	return records, nil
}
