package ledger

import (
	"math"
	"math/bits"
)

const bpsDenominator = 10_000

func satAdd64(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

func satSub64(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

func satInc32(v uint32) uint32 {
	if v == math.MaxUint32 {
		return v
	}
	return v + 1
}

// splitRevenue returns the venue and artist shares of revenue for the given
// basis points. The venue share truncates; bps above 10000 leave the artist
// with nothing.
func splitRevenue(revenue uint64, bps uint16) (venueCut, artistCut uint64) {
	hi, lo := bits.Mul64(revenue, uint64(bps))
	if hi >= bpsDenominator {
		venueCut = math.MaxUint64
	} else {
		venueCut, _ = bits.Div64(hi, lo, bpsDenominator)
	}
	return venueCut, satSub64(revenue, venueCut)
}
