package service

import "math"

// AverageScore is the mean of scores rounded to two decimals, 0 when empty.
// Exact halves round to even, matching how the scores were historically shown.
func AverageScore(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	mean := float64(sum) / float64(len(scores))
	return math.RoundToEven(mean*100) / 100
}
