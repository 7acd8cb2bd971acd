package domain

import "math"

// PriceBreakdown is the pricing of a single booking: the table price,
// the platform fee on top of it and the resulting total.
type PriceBreakdown struct {
	TablePrice  float64
	PlatformFee float64
	TotalAmount float64
}

// ComputePrice calculates the platform fee and total for a table price.
// Pure and deterministic: the same inputs always produce the same
// breakdown, so recorded bookings can be audited against it.
// The fee is feePercent of the table price, rounded to whole cents.
func ComputePrice(tablePrice, feePercent float64) PriceBreakdown {
	fee := roundCents(tablePrice * feePercent / 100)
	return PriceBreakdown{
		TablePrice:  tablePrice,
		PlatformFee: fee,
		TotalAmount: roundCents(tablePrice + fee),
	}
}

// roundCents rounds a decimal amount to 2 decimal places
func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
