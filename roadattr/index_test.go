package roadattr_test

import (
	"testing"

	"baroudique/routeengine/domain"
	"baroudique/routeengine/roadattr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordIndex(t *testing.T) {
	records := []domain.RoadAttributeRecord{
		{
			WayID:   "1",
			Highway: "cycleway",
			Geometry: []domain.Coordinate{
				{Lat: 52.5000, Lon: 13.4000},
				{Lat: 52.5010, Lon: 13.4010},
			},
		},
		{
			WayID:   "2",
			Highway: "residential",
			Geometry: []domain.Coordinate{
				{Lat: 52.5100, Lon: 13.4100},
			},
		},
	}
	index := roadattr.NewRecordIndex(records)

	t.Run("returns the record with the closest vertex", func(t *testing.T) {
		// ~55m north of way 1's first vertex
		record := index.FindNearestRecord(domain.Coordinate{Lat: 52.5005, Lon: 13.4000})
		require.NotNil(t, record)
		assert.Equal(t, "1", record.WayID)
	})

	t.Run("picks the right record between two candidates", func(t *testing.T) {
		record := index.FindNearestRecord(domain.Coordinate{Lat: 52.5101, Lon: 13.4101})
		require.NotNil(t, record)
		assert.Equal(t, "2", record.WayID)
	})

	t.Run("rejects matches beyond 100m", func(t *testing.T) {
		// ~550m away from everything
		record := index.FindNearestRecord(domain.Coordinate{Lat: 52.5050, Lon: 13.4050})
		assert.Nil(t, record)
	})

	t.Run("empty index yields no match", func(t *testing.T) {
		empty := roadattr.NewRecordIndex(nil)
		assert.Nil(t, empty.FindNearestRecord(domain.Coordinate{Lat: 52.5, Lon: 13.4}))
	})
}
