package internal

import "math"

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

func DegreesToRadians(angle float64) float64 {
	return angle * math.Pi / 180
}

func RadiansToDegrees(angle float64) float64 {
	return angle / math.Pi * 180
}
