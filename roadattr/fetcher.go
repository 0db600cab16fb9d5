package roadattr

import (
	"context"
	"log"

	"baroudique/routeengine/domain"
	"baroudique/routeengine/geo"
	"baroudique/routeengine/kv"
)

// bboxBuffer pads the route bounding box by ~100m so roads just off the
// polyline still contribute attribute data.
const bboxBuffer = 0.001

// Fetcher resolves road-attribute records for a routed path. Road data is
// strictly best-effort: any provider failure degrades to an empty record set,
// never an error.
type Fetcher struct {
	provider Provider
	cache    *kv.KVDB
}

func NewFetcher(provider Provider, cache *kv.KVDB) *Fetcher {
	return &Fetcher{provider: provider, cache: cache}
}

func (f *Fetcher) FetchRoadData(ctx context.Context, path []domain.Coordinate) []domain.RoadAttributeRecord {
	if len(path) < 2 || f.provider == nil {
		return nil
	}

	bbox := geo.PathBoundingBox(path, bboxBuffer)

	if f.cache != nil {
		if records, ok := f.cache.GetRoadRecords(bbox); ok {
			return records
		}
	}

	records, err := f.provider.Query(ctx, bbox)
	if err != nil {
		log.Printf("road attribute fetch failed, scoring without osm data: %v", err)
		return nil
	}

	if f.cache != nil {
		if err := f.cache.PutRoadRecords(bbox, records); err != nil {
			log.Printf("road attribute cache write failed: %v", err)
		}
	}
	return records
}
