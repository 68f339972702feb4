package recommend

import "math"

const (
	// Distances at or beyond these score zero.
	tempTolerance = 15.0
	rainTolerance = 2000.0
)

// TempScore is 1 for an exact temperature match, falling linearly to 0 at
// a 15°C difference.
func TempScore(userTemp, cropTemp float64) float64 {
	return closeness(userTemp, cropTemp, tempTolerance)
}

// RainScore is 1 for an exact rainfall match, falling linearly to 0 at a
// 2000mm difference.
func RainScore(userRain, cropRain float64) float64 {
	return closeness(userRain, cropRain, rainTolerance)
}

func closeness(a, b, tolerance float64) float64 {
	return math.Max(0, 1-math.Abs(a-b)/tolerance)
}
