package roadattr

import (
	"context"
	"os"
	"strconv"
	"strings"

	"baroudique/routeengine/domain"
	"baroudique/routeengine/geo"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

var excludedHighways = map[string]bool{
	"footway":   true,
	"cycleway":  true,
	"path":      true,
	"bridleway": true,
	"steps":     true,
}

// ExtractProvider serves road-attribute queries from a local .osm.pbf
// extract, so quality scoring keeps working without Overpass access.
type ExtractProvider struct {
	records []domain.RoadAttributeRecord
}

// NewExtractProvider scans the pbf file once and keeps every tagged highway
// way (minus the excluded foot classes) in memory.
func NewExtractProvider(ctx context.Context, pbfPath string) (*ExtractProvider, error) {
	f, err := os.Open(pbfPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	nodeCoords := make(map[osm.NodeID]domain.Coordinate)
	var ways []*osm.Way

	scanner := osmpbf.New(ctx, f, 3)
	defer scanner.Close()

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			nodeCoords[o.ID] = domain.Coordinate{Lat: o.Lat, Lon: o.Lon}
		case *osm.Way:
			highway := o.Tags.Find("highway")
			if highway == "" || excludedHighways[strings.ToLower(highway)] {
				continue
			}
			ways = append(ways, o)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	records := make([]domain.RoadAttributeRecord, 0, len(ways))
	for _, way := range ways {
		geometry := make([]domain.Coordinate, 0, len(way.Nodes))
		for _, wayNode := range way.Nodes {
			coord, ok := nodeCoords[wayNode.ID]
			if !ok {
				continue
			}
			geometry = append(geometry, coord)
		}
		if len(geometry) == 0 {
			continue
		}

		records = append(records, domain.RoadAttributeRecord{
			WayID:      strconv.FormatInt(int64(way.ID), 10),
			Surface:    way.Tags.Find("surface"),
			Smoothness: way.Tags.Find("smoothness"),
			Highway:    way.Tags.Find("highway"),
			Name:       way.Tags.Find("name"),
			Geometry:   geometry,
		})
	}

	return &ExtractProvider{records: records}, nil
}

// Query returns every loaded record with at least one vertex inside bbox.
func (p *ExtractProvider) Query(ctx context.Context, bbox geo.BoundingBox) ([]domain.RoadAttributeRecord, error) {
	var matched []domain.RoadAttributeRecord
	for _, record := range p.records {
		for _, vertex := range record.Geometry {
			if bbox.Contains(vertex) {
				matched = append(matched, record)
				break
			}
		}
	}
	return matched, nil
}

func (p *ExtractProvider) Len() int {
	return len(p.records)
}
