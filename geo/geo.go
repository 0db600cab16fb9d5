package geo

import (
	"math"

	"baroudique/routeengine/domain"
)

const earthRadiusM = 6371000.0

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

// Distance returns the haversine great-circle distance between a and b in meters.
func Distance(a, b domain.Coordinate) float64 {
	dLat := DegreeToRadians(b.Lat - a.Lat)
	dLon := DegreeToRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(DegreeToRadians(a.Lat))*math.Cos(DegreeToRadians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusM * c
}

// BoundingBox is (south, west, north, east) in degrees.
type BoundingBox struct {
	South float64
	West  float64
	North float64
	East  float64
}

func (b BoundingBox) Contains(c domain.Coordinate) bool {
	return c.Lat >= b.South && c.Lat <= b.North && c.Lon >= b.West && c.Lon <= b.East
}

// PathBoundingBox builds the min/max box around path, padded by buffer degrees
// on every side. 0.001 degrees is roughly a 100m buffer.
func PathBoundingBox(path []domain.Coordinate, buffer float64) BoundingBox {
	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)

	for _, c := range path {
		minLat = math.Min(minLat, c.Lat)
		maxLat = math.Max(maxLat, c.Lat)
		minLon = math.Min(minLon, c.Lon)
		maxLon = math.Max(maxLon, c.Lon)
	}

	return BoundingBox{
		South: minLat - buffer,
		West:  minLon - buffer,
		North: maxLat + buffer,
		East:  maxLon + buffer,
	}
}
