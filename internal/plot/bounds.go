package plot

import "math"

// Range is a closed axis interval with Min < Max.
type Range struct {
	Min float64
	Max float64
}

// Bounds derives an axis range from the plotted values.
func Bounds(values []float64, policy AxisPolicy) Range {
	if len(values) == 0 {
		if policy == AxisZero {
			return Range{Min: 0, Max: 1}
		}
		return Range{Min: -1, Max: 1}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	r := Range{Min: lo - 1, Max: hi + 1}
	if policy == AxisZero && lo >= 0 {
		r.Min = 0
	}
	if r.Min >= r.Max {
		// one unit vanishes at very large magnitudes
		pad := math.Max(math.Abs(lo), math.Abs(hi)) * 1e-6
		r.Min, r.Max = lo-pad, hi+pad
	}

	// keep both ends and the span finite for the renderer
	r.Min = math.Max(r.Min, -math.MaxFloat64)
	r.Max = math.Min(r.Max, math.MaxFloat64)
	if r.Min >= r.Max {
		r.Min = math.Nextafter(r.Max, math.Inf(-1))
	}
	if math.IsInf(r.Span(), 0) {
		r.Min, r.Max = r.Min/2, r.Max/2
	}
	return r
}

// Span is Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}
