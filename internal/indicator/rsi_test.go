package indicator

import (
	"errors"
	"testing"
)

func TestRSIBounds(t *testing.T) {
	closes := []float64{100, 102, 99, 104, 97, 105, 96, 106, 95, 107, 94, 108}
	values, err := RSI(candlesFromCloses(closes...), 5)
	if err != nil {
		t.Fatalf("RSI returned error: %v", err)
	}
	for _, v := range values {
		if v.Value < 0 || v.Value > 100 {
			t.Fatalf("rsi %v out of [0,100]", v.Value)
		}
	}
}

func TestRSIAllGainsReadsHundred(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7}
	values, err := RSI(candlesFromCloses(closes...), 3)
	if err != nil {
		t.Fatalf("RSI returned error: %v", err)
	}
	for _, v := range values {
		if v.Value != 100 {
			t.Fatalf("loss-free rsi should be 100, got %v", v.Value)
		}
	}
}

func TestRSIAllLossesReadsZero(t *testing.T) {
	closes := []float64{7, 6, 5, 4, 3, 2, 1}
	values, err := RSI(candlesFromCloses(closes...), 3)
	if err != nil {
		t.Fatalf("RSI returned error: %v", err)
	}
	for _, v := range values {
		if !almostEqual(v.Value, 0) {
			t.Fatalf("gain-free rsi should be 0, got %v", v.Value)
		}
	}
}

func TestRSIWarmup(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	period := 5
	window := candlesFromCloses(closes...)
	values, err := RSI(window, period)
	if err != nil {
		t.Fatalf("RSI returned error: %v", err)
	}
	if len(values) != len(closes)-period {
		t.Fatalf("expected %d values after warm-up, got %d", len(closes)-period, len(values))
	}
	if !values[0].Timestamp.Equal(window[period].CloseTime) {
		t.Fatalf("first value not aligned to bar %d close", period)
	}
}

func TestRSIInsufficientData(t *testing.T) {
	_, err := RSI(candlesFromCloses(1, 2, 3), 14)
	var insufficient *InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if insufficient.Needed != 15 || insufficient.Have != 3 {
		t.Fatalf("unexpected warm-up accounting: %+v", insufficient)
	}
}

func TestRSIDeterminism(t *testing.T) {
	closes := []float64{100, 101, 99, 103, 98, 104, 97, 105}
	window := candlesFromCloses(closes...)
	a, err := RSI(window, 4)
	if err != nil {
		t.Fatalf("RSI returned error: %v", err)
	}
	b, err := RSI(window, 4)
	if err != nil {
		t.Fatalf("RSI returned error: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("repeated evaluation diverged at %d: %v vs %v", i, a[i], b[i])
		}
	}
}
