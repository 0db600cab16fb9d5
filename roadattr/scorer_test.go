package roadattr_test

import (
	"testing"

	"baroudique/routeengine/domain"
	"baroudique/routeengine/roadattr"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	t.Run("fully tagged cycleway", func(t *testing.T) {
		record := domain.RoadAttributeRecord{
			WayID:      "42",
			Surface:    "asphalt",
			Smoothness: "excellent",
			Highway:    "cycleway",
		}

		estimate := roadattr.Score(record)

		assert.Equal(t, 95, estimate.SurfaceScore)
		assert.Equal(t, 100, estimate.SmoothnessScore)
		assert.Equal(t, 100, estimate.HighwayScore)
		// 0.50*95 + 0.35*100 + 0.15*100 = 97.5
		assert.Equal(t, 98, estimate.CombinedScore)
		assert.Equal(t, 100, estimate.Confidence)
	})

	t.Run("scoring is deterministic", func(t *testing.T) {
		record := domain.RoadAttributeRecord{Surface: "gravel", Highway: "track"}
		assert.Equal(t, roadattr.Score(record), roadattr.Score(record))
	})

	t.Run("weighted combination with partial tags", func(t *testing.T) {
		record := domain.RoadAttributeRecord{Surface: "gravel", Highway: "residential"}

		estimate := roadattr.Score(record)

		assert.Equal(t, 30, estimate.SurfaceScore)
		assert.Equal(t, 70, estimate.SmoothnessScore)
		assert.Equal(t, 80, estimate.HighwayScore)
		// 0.50*30 + 0.35*70 + 0.15*80 = 51.5
		assert.Equal(t, 52, estimate.CombinedScore)
		assert.Equal(t, 66, estimate.Confidence)
	})

	t.Run("highway tag alone gives the lowest confidence", func(t *testing.T) {
		estimate := roadattr.Score(domain.RoadAttributeRecord{Highway: "tertiary"})
		assert.Equal(t, 33, estimate.Confidence)
		assert.Equal(t, 95, estimate.HighwayScore)
	})

	t.Run("unrecognized surface differs from a missing one", func(t *testing.T) {
		unrecognized := roadattr.Score(domain.RoadAttributeRecord{Surface: "lava", Highway: "residential"})
		missing := roadattr.Score(domain.RoadAttributeRecord{Highway: "residential"})

		assert.Equal(t, 60, unrecognized.SurfaceScore)
		assert.Equal(t, 70, missing.SurfaceScore)
	})

	t.Run("tag values are case insensitive", func(t *testing.T) {
		estimate := roadattr.Score(domain.RoadAttributeRecord{
			Surface:    "Asphalt",
			Smoothness: "GOOD",
			Highway:    "Cycleway",
		})
		assert.Equal(t, 95, estimate.SurfaceScore)
		assert.Equal(t, 85, estimate.SmoothnessScore)
		assert.Equal(t, 100, estimate.HighwayScore)
	})

	t.Run("unknown highway class", func(t *testing.T) {
		estimate := roadattr.Score(domain.RoadAttributeRecord{Highway: "unknown"})
		assert.Equal(t, 60, estimate.HighwayScore)
	})
}
