package plot

import (
	"math"
	"testing"
)

func TestBounds(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		policy AxisPolicy
		want   Range
	}{
		{"data pads both sides", []float64{2, 10, 5}, AxisData, Range{1, 11}},
		{"zero anchors at origin", []float64{2, 10}, AxisZero, Range{0, 11}},
		{"zero follows negative data", []float64{-3, 4}, AxisZero, Range{-4, 5}},
		{"single value", []float64{7}, AxisData, Range{6, 8}},
		{"constant column", []float64{3, 3, 3}, AxisData, Range{2, 4}},
		{"all zero with zero policy", []float64{0, 0}, AxisZero, Range{0, 1}},
		{"empty data", nil, AxisData, Range{-1, 1}},
		{"empty zero", nil, AxisZero, Range{0, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Bounds(tc.values, tc.policy)
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
			if !(got.Min < got.Max) {
				t.Fatalf("expected min < max, got %+v", got)
			}
		})
	}
}

func TestBoundsHugeMagnitudeStaysOrdered(t *testing.T) {
	got := Bounds([]float64{1e20}, AxisData)
	if !(got.Min < got.Max) || math.IsInf(got.Span(), 0) {
		t.Fatalf("expected ordered finite range, got %+v", got)
	}
}

func TestBoundsStayFiniteAtFloatLimits(t *testing.T) {
	cases := [][]float64{
		{math.MaxFloat64},
		{-math.MaxFloat64},
		{-math.MaxFloat64, math.MaxFloat64},
		{0, math.MaxFloat64},
		{math.SmallestNonzeroFloat64},
	}
	for _, values := range cases {
		for _, policy := range []AxisPolicy{AxisData, AxisZero} {
			got := Bounds(values, policy)
			if math.IsInf(got.Min, 0) || math.IsInf(got.Max, 0) || math.IsInf(got.Span(), 0) {
				t.Fatalf("expected finite range for %v/%s, got %+v", values, policy, got)
			}
			if !(got.Min < got.Max) {
				t.Fatalf("expected min < max for %v/%s, got %+v", values, policy, got)
			}
		}
	}
}

func TestParseAxisPolicy(t *testing.T) {
	if ParseAxisPolicy(" ZERO ") != AxisZero {
		t.Fatalf("expected zero policy")
	}
	if ParseAxisPolicy("bogus") != AxisData || ParseAxisPolicy("") != AxisData {
		t.Fatalf("expected data fallback")
	}
}

func TestFileNameAndDisposition(t *testing.T) {
	if got := FileName("Goles", "Puntos"); got != "Goles_vs_Puntos.png" {
		t.Fatalf("unexpected file name %q", got)
	}
	if got := ContentDisposition("Goles", "Puntos"); got != `attachment; filename=Goles_vs_Puntos.png` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if got := ContentDisposition("Pases (%)", "Tiros"); got == "attachment" {
		t.Fatalf("expected filename parameter to be encoded, got %q", got)
	}
}
