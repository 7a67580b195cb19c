// Package calculator holds the pure arithmetic of the ledger: share
// splitting and the greedy debt-netting planner. Nothing here touches
// storage.
package calculator

import "math"

// Round2 rounds to two decimal places. Every computed monetary boundary
// (shares, transfers, remainders) passes through this.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// EqualShare returns one participant's share of a total split equally n
// ways, rounded to two decimals.
func EqualShare(total float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return Round2(total / float64(n))
}
