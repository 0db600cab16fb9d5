package roadattr

import (
	"math"
	"strings"

	"baroudique/routeengine/domain"
)

// RoadQualityEstimate is the normalized scoring of one road-attribute record.
// All scores are 0-100; confidence reflects how many of the surface,
// smoothness and highway tags were actually present on the way.
type RoadQualityEstimate struct {
	SurfaceScore    int `json:"surfaceScore"`
	SmoothnessScore int `json:"smoothnessScore"`
	HighwayScore    int `json:"highwayScore"`
	CombinedScore   int `json:"combinedScore"`
	Confidence      int `json:"confidence"`
}

const (
	unknownSurfaceScore    = 70
	unknownSmoothnessScore = 70
	unknownHighwayScore    = 60
)

var surfaceScores = map[string]int{
	// excellent surfaces
	"asphalt":         95,
	"concrete":        90,
	"paved":           85,
	"concrete:plates": 88,
	"concrete:lanes":  85,

	// good surfaces
	"paving_stones": 75,
	"sett":          70,
	"metal":         65,

	// fair surfaces
	"compacted":   60,
	"fine_gravel": 55,
	"pebblestone": 50,

	// poor surfaces for road bikes
	"gravel":      30,
	"dirt":        20,
	"grass":       15,
	"sand":        10,
	"mud":         5,
	"unpaved":     25,
	"ground":      20,
	"earth":       15,
	"cobblestone": 40,
}

var smoothnessScores = map[string]int{
	"excellent":     100,
	"good":          85,
	"intermediate":  70,
	"bad":           40,
	"very_bad":      20,
	"horrible":      10,
	"very_horrible": 5,
	"impassable":    0,
}

var highwayScores = map[string]int{
	"cycleway": 100,
	"path":     85,

	"secondary":      90,
	"secondary_link": 88,
	"tertiary":       95,
	"tertiary_link":  92,
	"unclassified":   85,
	"residential":    80,

	"primary":      75,
	"primary_link": 70,
	"trunk":        60,
	"trunk_link":   55,

	"motorway":      0,
	"motorway_link": 0,
	"service":       70,
	"track":         25,
	"footway":       30,
	"bridleway":     20,
	"steps":         0,

	"living_street": 85,
	"pedestrian":    40,
}

func scoreSurface(surface string) int {
	if surface == "" {
		return unknownSurfaceScore
	}
	if score, ok := surfaceScores[strings.ToLower(surface)]; ok {
		return score
	}
	return 60
}

func scoreSmoothness(smoothness string) int {
	if smoothness == "" {
		return unknownSmoothnessScore
	}
	if score, ok := smoothnessScores[strings.ToLower(smoothness)]; ok {
		return score
	}
	return unknownSmoothnessScore
}

func scoreHighway(highway string) int {
	if score, ok := highwayScores[strings.ToLower(highway)]; ok {
		return score
	}
	return unknownHighwayScore
}

// Score maps one record to a quality estimate. Pure lookup-table math, the
// same record always yields the same estimate.
func Score(record domain.RoadAttributeRecord) RoadQualityEstimate {
	surface := scoreSurface(record.Surface)
	smoothness := scoreSmoothness(record.Smoothness)
	highway := scoreHighway(record.Highway)

	// surface matters most to road cyclists
	combined := int(math.Round(float64(surface)*0.50 + float64(smoothness)*0.35 + float64(highway)*0.15))

	tags := 1 // highway is always present
	if record.Surface != "" {
		tags++
	}
	if record.Smoothness != "" {
		tags++
	}
	confidence := tags * 33
	if confidence >= 99 {
		confidence = 100
	}

	return RoadQualityEstimate{
		SurfaceScore:    surface,
		SmoothnessScore: smoothness,
		HighwayScore:    highway,
		CombinedScore:   combined,
		Confidence:      confidence,
	}
}
