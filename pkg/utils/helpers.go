package utils

import (
	"math"
	"strings"
	"time"
)

// ParseDuration safely parses duration string like "15s"
func ParseDuration(d string) time.Duration {
	if d == "" {
		return 5 * time.Minute
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return 5 * time.Minute
	}
	return duration
}

// Round2 rounds half away from zero to two decimals
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Capitalize upper-cases the first letter, e.g. "positive" -> "Positive"
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
