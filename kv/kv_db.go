package kv

import (
	"fmt"

	"baroudique/routeengine/domain"
	"baroudique/routeengine/geo"

	"github.com/cockroachdb/pebble"
	"github.com/uber/h3-go/v4"
)

// elevationCellResolution 13 keeps h3 cells a few meters across, close enough
// that one stored sample stands in for every coordinate inside the cell.
const elevationCellResolution = 13

type KVDB struct {
	db *pebble.DB
}

func NewKVDB(db *pebble.DB) *KVDB {
	return &KVDB{db}
}

func elevationKey(c domain.Coordinate) []byte {
	cell := h3.LatLngToCell(h3.NewLatLng(c.Lat, c.Lon), elevationCellResolution)
	return []byte("elev/" + cell.String())
}

func roadRecordsKey(bbox geo.BoundingBox) []byte {
	return []byte(fmt.Sprintf("roads/%.3f,%.3f,%.3f,%.3f", bbox.South, bbox.West, bbox.North, bbox.East))
}

// GetElevation returns the cached elevation for the h3 cell containing c.
func (k *KVDB) GetElevation(c domain.Coordinate) (float64, bool) {
	val, closer, err := k.db.Get(elevationKey(c))
	if err != nil {
		return 0, false
	}
	defer closer.Close()

	elev, err := decodeElevation(val)
	if err != nil {
		return 0, false
	}
	return elev, true
}

func (k *KVDB) PutElevation(c domain.Coordinate, elev float64) error {
	val, err := encodeElevation(elev)
	if err != nil {
		return err
	}
	return k.db.Set(elevationKey(c), val, pebble.Sync)
}

// GetRoadRecords returns the cached overpass result for bbox, if present.
func (k *KVDB) GetRoadRecords(bbox geo.BoundingBox) ([]domain.RoadAttributeRecord, bool) {
	val, closer, err := k.db.Get(roadRecordsKey(bbox))
	if err != nil {
		return nil, false
	}
	defer closer.Close()

	records, err := decodeRecords(val)
	if err != nil {
		return nil, false
	}
	return records, true
}

func (k *KVDB) PutRoadRecords(bbox geo.BoundingBox, records []domain.RoadAttributeRecord) error {
	val, err := encodeRecords(records)
	if err != nil {
		return err
	}
	return k.db.Set(roadRecordsKey(bbox), val, pebble.Sync)
}

func (k *KVDB) Close() {
	k.db.Close()
}
