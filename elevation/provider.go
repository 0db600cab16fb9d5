package elevation

import (
	"context"

	"baroudique/routeengine/domain"
)

// Provider looks up elevations for an ordered coordinate list. The returned
// slice is index-aligned with coords; a nil entry means the source has no
// coverage for that coordinate.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, coords []domain.Coordinate) ([]*float64, error)
}
