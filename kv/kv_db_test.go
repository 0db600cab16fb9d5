package kv_test

import (
	"testing"

	"baroudique/routeengine/domain"
	"baroudique/routeengine/geo"
	"baroudique/routeengine/kv"

	"github.com/cockroachdb/pebble"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKVDB(t *testing.T) *kv.KVDB {
	t.Helper()
	db, err := pebble.Open(t.TempDir(), &pebble.Options{})
	require.NoError(t, err)
	kvdb := kv.NewKVDB(db)
	t.Cleanup(kvdb.Close)
	return kvdb
}

func TestElevationCache(t *testing.T) {
	kvdb := newTestKVDB(t)
	coord := domain.Coordinate{Lat: 52.5200, Lon: 13.4050}

	_, ok := kvdb.GetElevation(coord)
	assert.False(t, ok)

	require.NoError(t, kvdb.PutElevation(coord, 34.5))

	elev, ok := kvdb.GetElevation(coord)
	require.True(t, ok)
	assert.Equal(t, 34.5, elev)

	t.Run("nearby coordinates share the same cell", func(t *testing.T) {
		// sub-millimeter away, same resolution-13 cell
		elev, ok := kvdb.GetElevation(domain.Coordinate{Lat: 52.5200000001, Lon: 13.4050})
		require.True(t, ok)
		assert.Equal(t, 34.5, elev)
	})

	t.Run("distant coordinates do not", func(t *testing.T) {
		_, ok := kvdb.GetElevation(domain.Coordinate{Lat: 52.53, Lon: 13.41})
		assert.False(t, ok)
	})
}

func TestRoadRecordsCache(t *testing.T) {
	kvdb := newTestKVDB(t)
	bbox := geo.BoundingBox{South: 52.50, West: 13.40, North: 52.52, East: 13.42}

	_, ok := kvdb.GetRoadRecords(bbox)
	assert.False(t, ok)

	records := []domain.RoadAttributeRecord{
		{
			WayID:      "101",
			Surface:    "asphalt",
			Smoothness: "good",
			Highway:    "tertiary",
			Name:       "Bergmannstraße",
			Geometry: []domain.Coordinate{
				{Lat: 52.505, Lon: 13.405},
				{Lat: 52.506, Lon: 13.406},
			},
		},
		{
			WayID:   "102",
			Highway: "residential",
			Geometry: []domain.Coordinate{
				{Lat: 52.510, Lon: 13.410},
			},
		},
	}
	require.NoError(t, kvdb.PutRoadRecords(bbox, records))

	got, ok := kvdb.GetRoadRecords(bbox)
	require.True(t, ok)
	assert.Equal(t, records, got)

	t.Run("a different bbox misses", func(t *testing.T) {
		other := geo.BoundingBox{South: 48.10, West: 11.50, North: 48.20, East: 11.60}
		_, ok := kvdb.GetRoadRecords(other)
		assert.False(t, ok)
	})
}
