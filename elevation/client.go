package elevation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"baroudique/routeengine/domain"

	"github.com/gojek/heimdall/v7/httpclient"
)

// LookupClient talks to an open-elevation shaped endpoint: POST
// {"locations":[{"latitude","longitude"}]} -> {"results":[{"elevation"}]}.
// Both the local baroudique elevation API and api.open-elevation.com use
// this request/response shape.
type LookupClient struct {
	name    string
	baseURL string
	client  *httpclient.Client
}

func NewLookupClient(name, baseURL string, timeout time.Duration) *LookupClient {
	return &LookupClient{
		name:    name,
		baseURL: baseURL,
		client:  httpclient.NewClient(httpclient.WithHTTPTimeout(timeout)),
	}
}

func (c *LookupClient) Name() string {
	return c.name
}

type lookupLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type lookupRequest struct {
	Locations []lookupLocation `json:"locations"`
}

type lookupResult struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Elevation *float64 `json:"elevation"`
}

type lookupResponse struct {
	Results []lookupResult `json:"results"`
}

func (c *LookupClient) Lookup(ctx context.Context, coords []domain.Coordinate) ([]*float64, error) {
	body := lookupRequest{Locations: make([]lookupLocation, len(coords))}
	for i, coord := range coords {
		body.Locations[i] = lookupLocation{Latitude: coord.Lat, Longitude: coord.Lon}
	}

	bodyBytes, err := json.Marshal(&body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", c.name, res.StatusCode)
	}

	data := &lookupResponse{}
	if err := json.NewDecoder(res.Body).Decode(data); err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	if len(data.Results) == 0 {
		return nil, errors.New(c.name + ": no elevation results returned")
	}

	values := make([]*float64, len(coords))
	for i := range data.Results {
		if i >= len(values) {
			break
		}
		values[i] = data.Results[i].Elevation
	}
	return values, nil
}
