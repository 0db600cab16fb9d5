package elevation

import (
	"context"
	"errors"
	"math"

	"baroudique/routeengine/domain"
	"baroudique/routeengine/kv"
	"baroudique/routeengine/util"
)

const (
	// maxSamplePoints bounds how many coordinates one profile request sends
	// to the elevation providers.
	maxSamplePoints = 100

	smoothingWindow = 3

	// grade is only meaningful between points more than 10m apart
	minGradeDistance = 10.0

	// elevation deltas at or below this are treated as sensor noise
	noiseThreshold = 0.5
)

// Processor builds smoothed elevation profiles from an ordered fallback chain
// of elevation providers, read-through cached in pebble when a cache is set.
type Processor struct {
	providers []Provider
	cache     *kv.KVDB
}

func NewProcessor(cache *kv.KVDB, providers ...Provider) *Processor {
	return &Processor{providers: providers, cache: cache}
}

// Lookup resolves elevations for coords, serving cached cells locally and
// asking the provider chain for the rest.
func (p *Processor) Lookup(ctx context.Context, coords []domain.Coordinate) ([]*float64, error) {
	values := make([]*float64, len(coords))

	missingIdx := make([]int, 0, len(coords))
	missingCoords := make([]domain.Coordinate, 0, len(coords))
	for i, coord := range coords {
		if p.cache != nil {
			if elev, ok := p.cache.GetElevation(coord); ok {
				cached := elev
				values[i] = &cached
				continue
			}
		}
		missingIdx = append(missingIdx, i)
		missingCoords = append(missingCoords, coord)
	}

	if len(missingCoords) == 0 {
		return values, nil
	}

	fetched, err := p.fetch(ctx, missingCoords)
	if err != nil {
		return nil, err
	}

	for j, idx := range missingIdx {
		values[idx] = fetched[j]
		if p.cache != nil && fetched[j] != nil {
			// best-effort write, a cold cache only costs another lookup
			_ = p.cache.PutElevation(coords[idx], *fetched[j])
		}
	}
	return values, nil
}

func (p *Processor) fetch(ctx context.Context, coords []domain.Coordinate) ([]*float64, error) {
	var provErrs []error
	for _, provider := range p.providers {
		values, err := provider.Lookup(ctx, coords)
		if err == nil {
			return values, nil
		}
		provErrs = append(provErrs, err)
	}
	return nil, domain.WrapErrorf(errors.Join(provErrs...), domain.ErrElevationService,
		"all %d elevation providers failed", len(p.providers))
}

// BuildProfile turns a routed path into a smoothed elevation profile.
// totalDistance is the routed distance in meters and is spread linearly over
// the valid samples.
func (p *Processor) BuildProfile(ctx context.Context, path []domain.Coordinate, totalDistance float64) (domain.ElevationSummary, error) {
	sampled := downsample(path, maxSamplePoints)

	results, err := p.Lookup(ctx, sampled)
	if err != nil {
		return domain.ElevationSummary{}, err
	}

	elevations := make([]float64, 0, len(results))
	for _, elev := range results {
		if elev != nil {
			elevations = append(elevations, *elev)
		}
	}
	if len(elevations) < 2 {
		return domain.ElevationSummary{}, domain.WrapErrorf(nil, domain.ErrInsufficientData,
			"only %d valid elevation samples", len(elevations))
	}

	smoothed := smooth(elevations, smoothingWindow)

	n := len(smoothed)
	profile := make([]domain.ElevationPoint, 0, n)
	var totalAscent, totalDescent float64
	maxElevation := math.Inf(-1)
	minElevation := math.Inf(1)

	for i := 0; i < n; i++ {
		dist := math.Round(totalDistance * float64(i) / float64(n-1))
		elev := util.RoundFloat(smoothed[i], 1)

		maxElevation = math.Max(maxElevation, elev)
		minElevation = math.Min(minElevation, elev)

		grade := 0.0
		if i > 0 {
			prev := profile[i-1]
			distDelta := dist - prev.DistanceFromStart
			elevDelta := elev - prev.Elevation

			if distDelta > minGradeDistance {
				grade = util.ClampFloat64((elevDelta/distDelta)*100, -25, 25)
			}

			if elevDelta > noiseThreshold {
				totalAscent += elevDelta
			} else if elevDelta < -noiseThreshold {
				totalDescent += math.Abs(elevDelta)
			}
		}

		profile = append(profile, domain.ElevationPoint{
			DistanceFromStart: dist,
			Elevation:         elev,
			Grade:             util.RoundFloat(grade, 2),
		})
	}

	return domain.ElevationSummary{
		TotalAscent:  util.RoundFloat(totalAscent, 1),
		TotalDescent: util.RoundFloat(totalDescent, 1),
		MaxElevation: maxElevation,
		MinElevation: minElevation,
		Profile:      profile,
	}, nil
}

// downsample keeps every stride-th coordinate so at most maxPoints survive,
// always retaining the final coordinate.
func downsample(path []domain.Coordinate, maxPoints int) []domain.Coordinate {
	if len(path) <= maxPoints {
		return path
	}

	stride := int(math.Ceil(float64(len(path)) / float64(maxPoints)))
	sampled := make([]domain.Coordinate, 0, maxPoints+1)
	for i := 0; i < len(path); i += stride {
		sampled = append(sampled, path[i])
	}
	if sampled[len(sampled)-1] != path[len(path)-1] {
		sampled = append(sampled, path[len(path)-1])
	}
	return sampled
}

// smooth applies a centered moving average, shrinking the window at the edges.
func smooth(elevations []float64, window int) []float64 {
	half := window / 2
	smoothed := make([]float64, len(elevations))
	for i := range elevations {
		start := i - half
		if start < 0 {
			start = 0
		}
		end := i + half + 1
		if end > len(elevations) {
			end = len(elevations)
		}

		sum := 0.0
		for _, v := range elevations[start:end] {
			sum += v
		}
		smoothed[i] = sum / float64(end-start)
	}
	return smoothed
}
