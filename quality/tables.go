package quality

import "strings"

// highwayTrafficScores ranks highway classes by expected traffic exposure,
// 100 = no motor traffic at all.
var highwayTrafficScores = map[string]float64{
	"cycleway":       100,
	"path":           95,
	"residential":    85,
	"living_street":  90,
	"unclassified":   80,
	"tertiary":       75,
	"tertiary_link":  78,
	"secondary":      60,
	"secondary_link": 65,
	"primary":        40,
	"primary_link":   45,
	"trunk":          20,
	"trunk_link":     25,
	"motorway":       0,
	"motorway_link":  0,
	"service":        75,
	"track":          90,
}

// highwayInfraScores ranks highway classes by how likely they carry cycling
// infrastructure (shoulders, lanes).
var highwayInfraScores = map[string]float64{
	"cycleway":       100,
	"path":           90,
	"primary":        80,
	"primary_link":   75,
	"secondary":      70,
	"secondary_link": 68,
	"trunk":          85,
	"trunk_link":     80,
	"tertiary":       50,
	"tertiary_link":  48,
	"residential":    40,
	"unclassified":   30,
	"living_street":  45,
	"service":        35,
	"track":          10,
	"motorway":       90,
	"motorway_link":  85,
}

func highwayTrafficScore(highway string) float64 {
	if score, ok := highwayTrafficScores[strings.ToLower(highway)]; ok {
		return score
	}
	return 60
}

func highwayInfraScore(highway string) float64 {
	if score, ok := highwayInfraScores[strings.ToLower(highway)]; ok {
		return score
	}
	return 50
}
