package quality

import (
	"math"
	"sort"

	"baroudique/routeengine/domain"
	"baroudique/routeengine/roadattr"
	"baroudique/routeengine/util"
)

// Sub-score weights of the overall cycling suitability score.
const (
	surfaceWeight        = 0.40
	trafficWeight        = 0.25
	gradientWeight       = 0.20
	infrastructureWeight = 0.10
	scenicWeight         = 0.05
)

// Engine combines routed-path stats, road-attribute records and rider
// preferences into one weighted quality score. Stateless apart from the
// injected variance source.
type Engine struct {
	variance Variance
}

func NewEngine(variance Variance) *Engine {
	if variance == nil {
		variance = NoVariance{}
	}
	return &Engine{variance: variance}
}

// Score is deterministic whenever the engine was built with NoVariance.
func (e *Engine) Score(summary domain.RouteSummary, prefs domain.RoutePreferences, records []domain.RoadAttributeRecord) domain.RouteQuality {
	osmScore, osmDetails := aggregateOSM(records)

	surfaceScore := e.surfaceScore(summary, prefs, osmScore)
	trafficScore := e.trafficScore(summary, prefs, records)
	gradientScore := e.gradientScore(summary, prefs)
	infrastructureScore := e.infrastructureScore(summary, prefs, records)
	scenicScore := e.scenicScore(summary, prefs)

	overall := int(math.Round(
		float64(surfaceScore)*surfaceWeight +
			float64(trafficScore)*trafficWeight +
			float64(gradientScore)*gradientWeight +
			float64(infrastructureScore)*infrastructureWeight +
			float64(scenicScore)*scenicWeight))

	avgGradient := estimateAvgGradient(summary)

	return domain.RouteQuality{
		SurfaceScore:        surfaceScore,
		TrafficScore:        trafficScore,
		GradientScore:       gradientScore,
		InfrastructureScore: infrastructureScore,
		ScenicScore:         scenicScore,
		OverallScore:        overall,
		OSMScore:            osmScore,
		Details: domain.QualityDetails{
			SurfaceType:      surfaceType(surfaceScore),
			TrafficLevel:     trafficLevel(trafficScore),
			MaxGradient:      math.Min(20, math.Round(avgGradient*2.5)),
			AvgGradient:      util.RoundFloat(avgGradient, 1),
			HasShoulders:     infrastructureScore > 70 && summary.Distance > 20000,
			HasCycleLanes:    infrastructureScore > 80 || (infrastructureScore > 60 && summary.Distance < 20000),
			ScenicHighlights: scenicHighlights(scenicScore),
			OSMData:          osmDetails,
		},
	}
}

// aggregateOSM folds per-record estimates into one confidence-weighted score.
func aggregateOSM(records []domain.RoadAttributeRecord) (*int, *domain.OSMDataDetails) {
	if len(records) == 0 {
		return nil, nil
	}

	var weightedSum, totalWeight, confidenceSum float64
	roadTypes := map[string]bool{}
	surfaces := map[string]bool{}
	smoothness := map[string]bool{}

	for _, record := range records {
		estimate := roadattr.Score(record)
		weight := float64(estimate.Confidence) / 100
		weightedSum += float64(estimate.CombinedScore) * weight
		totalWeight += weight
		confidenceSum += float64(estimate.Confidence)

		roadTypes[record.Highway] = true
		if record.Surface != "" {
			surfaces[record.Surface] = true
		}
		if record.Smoothness != "" {
			smoothness[record.Smoothness] = true
		}
	}
	if totalWeight == 0 {
		return nil, nil
	}

	score := int(math.Round(weightedSum / totalWeight))
	details := &domain.OSMDataDetails{
		Confidence: int(math.Round(confidenceSum / float64(len(records)))),
		RoadTypes:  sortedKeys(roadTypes),
		Surfaces:   sortedKeys(surfaces),
		Smoothness: sortedKeys(smoothness),
	}
	return &score, details
}

func (e *Engine) surfaceScore(summary domain.RouteSummary, prefs domain.RoutePreferences, osmScore *int) int {
	score := 75.0

	if osmScore != nil {
		score = float64(*osmScore)*0.7 + score*0.3
	} else {
		if prefs.PreferSmoothSurface {
			score += 10
		}
		// longer routes on main roads tend to have better tarmac, short
		// urban hops collect potholes
		if summary.Distance > 30000 {
			score += 8
		} else if summary.Distance < 5000 {
			score -= 5
		}
		if prefs.AvoidBusyRoads {
			score -= 8 // quiet roads see less maintenance
		}
		score += e.variance.Jitter(10)
	}

	return util.ClampRoundInt(score, 20, 100)
}

func (e *Engine) trafficScore(summary domain.RouteSummary, prefs domain.RoutePreferences, records []domain.RoadAttributeRecord) int {
	score := 70.0

	if len(records) > 0 {
		var sum float64
		for _, record := range records {
			sum += highwayTrafficScore(record.Highway)
		}
		score = (sum/float64(len(records)))*0.6 + score*0.4
	}

	if prefs.AvoidBusyRoads {
		score += 25
	}
	if prefs.RouteType == domain.RouteTypeSafest {
		score += 20
	} else if prefs.RouteType == domain.RouteTypeFastest {
		score -= 15
	}

	if summary.Distance > 50000 {
		score += 15
	} else if summary.Distance < 10000 {
		score -= 10
	}

	score += e.variance.Jitter(7.5)

	return util.ClampRoundInt(score, 10, 100)
}

func (e *Engine) gradientScore(summary domain.RouteSummary, prefs domain.RoutePreferences) int {
	score := 80.0

	if prefs.MaxGradient > 0 {
		if prefs.MaxGradient <= 3 {
			score += 15
		} else if prefs.MaxGradient <= 6 {
			score += 10
		} else if prefs.MaxGradient >= 12 {
			score -= 10
		}
	}

	avgGradient := estimateAvgGradient(summary)
	if avgGradient < 2 {
		score += 15
	} else if avgGradient < 4 {
		score += 10
	} else if avgGradient > 8 {
		score -= 20
	} else if avgGradient > 6 {
		score -= 10
	}

	return util.ClampRoundInt(score, 30, 100)
}

func (e *Engine) infrastructureScore(summary domain.RouteSummary, prefs domain.RoutePreferences, records []domain.RoadAttributeRecord) int {
	score := 60.0

	if len(records) > 0 {
		var sum float64
		for _, record := range records {
			sum += highwayInfraScore(record.Highway)
		}
		score = (sum/float64(len(records)))*0.7 + score*0.3
	}

	if prefs.AvoidBusyRoads {
		score -= 15 // quiet roads rarely have dedicated lanes
	} else {
		score += 10
	}

	if summary.Distance > 40000 {
		score += 15
	}
	if summary.Distance < 15000 {
		score += 20 // urban routes are more likely to have cycle lanes
	}

	score += e.variance.Jitter(10)

	return util.ClampRoundInt(score, 20, 100)
}

func (e *Engine) scenicScore(summary domain.RouteSummary, prefs domain.RoutePreferences) int {
	score := 65.0

	if prefs.AvoidBusyRoads {
		score += 20
	}
	if prefs.RouteType == domain.RouteTypeScenic {
		score += 25
	} else if prefs.RouteType == domain.RouteTypeFastest {
		score -= 15
	}

	if summary.Distance > 30000 {
		score += 15
	}
	if summary.Distance > 20000 && prefs.AvoidBusyRoads {
		score += 10
	}

	score += e.variance.Jitter(7.5)

	return util.ClampRoundInt(score, 20, 100)
}

// estimateAvgGradient falls back to a 1% climb assumption when the route has
// no ascent data at all.
func estimateAvgGradient(summary domain.RouteSummary) float64 {
	if summary.Distance <= 0 {
		return 0
	}
	ascent := summary.Ascent
	if ascent <= 0 {
		ascent = summary.Distance * 0.01
	}
	return (ascent / summary.Distance) * 100
}

func surfaceType(score int) string {
	switch {
	case score >= 85:
		return "excellent"
	case score >= 70:
		return "good"
	case score >= 50:
		return "fair"
	default:
		return "poor"
	}
}

func trafficLevel(score int) string {
	switch {
	case score >= 85:
		return "very-low"
	case score >= 70:
		return "low"
	case score >= 50:
		return "moderate"
	case score >= 30:
		return "high"
	default:
		return "very-high"
	}
}

func scenicHighlights(score int) []string {
	switch {
	case score < 40:
		return []string{"Urban/Industrial areas"}
	case score < 60:
		return []string{"Mixed urban/rural scenery"}
	case score < 80:
		return []string{"Countryside views", "Rural landscapes"}
	default:
		return []string{"Scenic countryside", "Beautiful views", "Natural landscapes", "Peaceful rural roads"}
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	// stable output keeps response payloads diffable
	sort.Strings(keys)
	return keys
}
