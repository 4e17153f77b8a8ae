package ledger

import "math/bits"

const (
	priceStepNumerator   = 102
	priceStepDenominator = 100
)

// NextPrice raises current by 2%, truncating, and clamps the result to
// ceiling. The multiply runs in 128 bits so large prices never wrap.
func NextPrice(current, ceiling uint64) uint64 {
	hi, lo := bits.Mul64(current, priceStepNumerator)
	if hi >= priceStepDenominator {
		// quotient does not fit in 64 bits, so it is above any ceiling
		return ceiling
	}
	next, _ := bits.Div64(hi, lo, priceStepDenominator)
	return min(next, ceiling)
}
