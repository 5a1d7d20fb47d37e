package service

import (
	"math"
	"time"
)

// RoundingPrecision is the multiplier used to round derived figures to two decimals.
const RoundingPrecision = 100.0

// round rounds a float64 value to two decimal places using RoundingPrecision.
// Monetary values use decimal arithmetic instead; this is for carbon figures,
// which are plain floats throughout.
//
// Example:
//
//	round(123.456789)  // returns 123.46
//	round(0.005)       // returns 0.01
//	round(1.994)       // returns 1.99
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// utcToday returns the UTC calendar date of now at midnight.
func utcToday(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
