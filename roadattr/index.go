package roadattr

import (
	"baroudique/routeengine/domain"
	"baroudique/routeengine/geo"

	"github.com/dhconnelly/rtreego"
)

var tol = 0.0001

// nearestRecordMaxDistance is how far (meters) a record vertex may be from
// the query point before the record no longer describes that point's road.
const nearestRecordMaxDistance = 100.0

type vertexEntry struct {
	location rtreego.Point
	record   *domain.RoadAttributeRecord
}

func (v *vertexEntry) Bounds() rtreego.Rect {
	// a rectangle centered at the vertex with side lengths 2*tol
	return v.location.ToRect(tol)
}

// RecordIndex answers nearest-record queries over the vertices of every
// record geometry.
type RecordIndex struct {
	tree    *rtreego.Rtree
	records []domain.RoadAttributeRecord
}

func NewRecordIndex(records []domain.RoadAttributeRecord) *RecordIndex {
	tree := rtreego.NewTree(2, 25, 50)
	for i := range records {
		for _, vertex := range records[i].Geometry {
			tree.Insert(&vertexEntry{
				location: rtreego.Point{vertex.Lat, vertex.Lon},
				record:   &records[i],
			})
		}
	}
	return &RecordIndex{tree: tree, records: records}
}

// FindNearestRecord returns the record with the closest geometry vertex to
// point, or nil if no vertex lies within ~100m.
func (idx *RecordIndex) FindNearestRecord(point domain.Coordinate) *domain.RoadAttributeRecord {
	if idx.tree.Size() == 0 {
		return nil
	}

	nearest := idx.tree.NearestNeighbor(rtreego.Point{point.Lat, point.Lon})
	entry, ok := nearest.(*vertexEntry)
	if !ok {
		return nil
	}

	vertex := domain.Coordinate{Lat: entry.location[0], Lon: entry.location[1]}
	if geo.Distance(point, vertex) > nearestRecordMaxDistance {
		return nil
	}
	return entry.record
}
