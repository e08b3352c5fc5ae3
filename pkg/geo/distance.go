package geo

import "math"

const (
	earthRadiusKM = 6371.0

	// rough meters per degree of latitude, used to scale degree-space
	// heuristics into edge-weight units. Good enough for an admissible
	// lower bound, not for absolute distance reporting.
	metersPerDegree = 111000.0
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

// CalculateHaversineDistance returns great-circle distance in kilometer.
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degreeToRadians(latOne)
	longOne = degreeToRadians(longOne)
	latTwo = degreeToRadians(latTwo)
	longTwo = degreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// HaversineMeters returns great-circle distance in meter, the unit road edge
// weights use.
func HaversineMeters(latOne, longOne, latTwo, longTwo float64) float64 {
	return CalculateHaversineDistance(latOne, longOne, latTwo, longTwo) * 1000.0
}

// EuclideanMeters is straight-line distance in degree space scaled by
// metersPerDegree. Underestimates true road distance at road-network scale,
// so it stays admissible for A*; the longitude axis shrinks away from the
// equator which only makes the bound looser.
func EuclideanMeters(latOne, longOne, latTwo, longTwo float64) float64 {
	dLat := latTwo - latOne
	dLon := longTwo - longOne
	return math.Sqrt(dLat*dLat+dLon*dLon) * metersPerDegree
}

// ManhattanMeters is L1 distance in degree space scaled by metersPerDegree.
// Not admissible in general (it can exceed the straight line by sqrt(2)), but
// on grid-like street networks it rarely overestimates the true road
// distance. Kept as a selectable heuristic with that caveat.
func ManhattanMeters(latOne, longOne, latTwo, longTwo float64) float64 {
	return (math.Abs(latTwo-latOne) + math.Abs(longTwo-longOne)) * metersPerDegree
}
