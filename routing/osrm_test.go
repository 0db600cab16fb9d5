package routing_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"baroudique/routeengine/domain"
	"baroudique/routeengine/routing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

func TestOSRMClientRoute(t *testing.T) {
	coords := []domain.Coordinate{
		{Lat: 52.50, Lon: 13.40},
		{Lat: 52.52, Lon: 13.42},
	}

	t.Run("decodes the polyline geometry", func(t *testing.T) {
		geometry := polyline.EncodeCoords([][]float64{
			{52.50, 13.40},
			{52.51, 13.41},
			{52.52, 13.42},
		})

		var gotURL string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotURL = r.URL.String()
			json.NewEncoder(w).Encode(map[string]any{
				"code": "Ok",
				"routes": []map[string]any{{
					"geometry": string(geometry),
					"distance": 3150.0,
					"duration": 630.0,
				}},
			})
		}))
		defer server.Close()

		client := routing.NewOSRMClient(server.URL, 5*time.Second)
		routed, err := client.Route(context.Background(), coords, domain.RoutePreferences{})
		require.NoError(t, err)

		// coordinates go out lng,lat
		assert.Contains(t, gotURL, fmt.Sprintf("%f,%f", 13.40, 52.50))
		assert.Contains(t, gotURL, "overview=full")

		require.Len(t, routed.Coordinates, 3)
		assert.InDelta(t, 52.51, routed.Coordinates[1].Lat, 0.00001)
		assert.InDelta(t, 13.41, routed.Coordinates[1].Lon, 0.00001)
		assert.Equal(t, 3150.0, routed.Distance)
		assert.Equal(t, 630.0, routed.Duration)
	})

	t.Run("non-Ok code is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
		}))
		defer server.Close()

		client := routing.NewOSRMClient(server.URL, 5*time.Second)
		_, err := client.Route(context.Background(), coords, domain.RoutePreferences{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no route found")
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := routing.NewOSRMClient(server.URL, 5*time.Second)
		_, err := client.Route(context.Background(), coords, domain.RoutePreferences{})
		assert.Error(t, err)
	})
}

func TestOSRMClientName(t *testing.T) {
	assert.Equal(t, "osrm", routing.NewOSRMClient("http://osrm", time.Second).Name())
}
