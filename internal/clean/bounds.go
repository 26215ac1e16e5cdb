package clean

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rxtech-lab/tickforge/internal/types"
)

// ComputeBounds derives the IQR price fences for a cleaning pass. Every raw
// row whose price parses as a float contributes, regardless of whether the
// rest of the row is valid, so the fences describe the full observed price
// distribution. With no parseable prices the fences collapse to (0, 0) and
// the pass rejects every row on price.
func ComputeBounds(raw []types.RawTick) types.Bounds {
	prices := make([]float64, 0, len(raw))

	for _, row := range raw {
		price, err := strconv.ParseFloat(strings.TrimSpace(row.Price), 64)
		if err != nil {
			continue
		}

		prices = append(prices, price)
	}

	if len(prices) == 0 {
		return types.Bounds{}
	}

	sort.Float64s(prices)

	n := len(prices)
	q1 := prices[clampIndex(int(0.25*float64(n)), n)]
	q3 := prices[clampIndex(int(0.75*float64(n)), n)]
	iqr := q3 - q1

	return types.Bounds{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - 1.5*iqr,
		Upper: q3 + 1.5*iqr,
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}

	if i >= n {
		return n - 1
	}

	return i
}
