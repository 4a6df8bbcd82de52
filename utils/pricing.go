package utils

import (
	"math"
)

// RoundToCents rounds a monetary amount to 2 decimal places. Ties round
// half away from zero (math.Round).
func RoundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// OrderTotal computes the rounded price for an order of quantityKg at
// pricePerKg.
func OrderTotal(pricePerKg float64, quantityKg int) float64 {
	return RoundToCents(pricePerKg * float64(quantityKg))
}

// Deficit returns the magnitude of backlog implied by a stock balance:
// zero while the balance is non-negative, otherwise how far below zero
// it sits.
func Deficit(availableKg float64) float64 {
	if availableKg < 0 {
		return -availableKg
	}
	return 0
}

// BatchIndex assigns a backlogged order to a zero-based production batch.
// Each batch covers thresholdKg of deficit: the first thresholdKg kg of
// backlog is batch 0, the next is batch 1, and so on. Orders that leave
// stock non-negative (deficit 0) belong to batch 0. Fractional deficits
// under 1 kg also stay in batch 0; the index is never negative.
func BatchIndex(deficitKg float64, thresholdKg int) int {
	if deficitKg <= 0 {
		return 0
	}
	idx := int(math.Floor((deficitKg - 1) / float64(thresholdKg)))
	if idx < 0 {
		return 0
	}
	return idx
}
