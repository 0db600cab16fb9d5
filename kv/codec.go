package kv

import (
	"baroudique/routeengine/domain"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

func encodeRecords(records []domain.RoadAttributeRecord) ([]byte, error) {
	encoded, err := binary.Marshal(records)
	if err != nil {
		return nil, err
	}

	var compressed []byte
	compressed, err = zstd.Compress(compressed, encoded)
	if err != nil {
		return nil, err
	}
	return compressed, nil
}

func decodeRecords(val []byte) ([]domain.RoadAttributeRecord, error) {
	var decompressed []byte
	decompressed, err := zstd.Decompress(decompressed, val)
	if err != nil {
		return nil, err
	}

	var records []domain.RoadAttributeRecord
	if err := binary.Unmarshal(decompressed, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func encodeElevation(elev float64) ([]byte, error) {
	return binary.Marshal(elev)
}

func decodeElevation(val []byte) (float64, error) {
	var elev float64
	if err := binary.Unmarshal(val, &elev); err != nil {
		return 0, err
	}
	return elev, nil
}
