package indicator

import (
	"errors"
	"testing"
)

func TestBollingerConstantCloses(t *testing.T) {
	closes := []float64{50, 50, 50, 50, 50, 50}
	values, err := Bollinger(candlesFromCloses(closes...), 5, 2)
	if err != nil {
		t.Fatalf("Bollinger returned error: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}
	last := values[len(values)-1]
	if !almostEqual(last.Upper, 50) || !almostEqual(last.Middle, 50) || !almostEqual(last.Lower, 50) {
		t.Fatalf("zero-variance bands should collapse onto the mean, got %+v", last)
	}
}

func TestBollingerWidensWithVariance(t *testing.T) {
	closes := []float64{48, 52, 48, 52, 48}
	values, err := Bollinger(candlesFromCloses(closes...), 5, 2)
	if err != nil {
		t.Fatalf("Bollinger returned error: %v", err)
	}
	band := values[0]
	if band.Upper <= band.Middle || band.Lower >= band.Middle {
		t.Fatalf("expected bands around the mean, got %+v", band)
	}
	if !almostEqual(band.Middle, 49.6) {
		t.Fatalf("expected middle 49.6, got %v", band.Middle)
	}
}

func TestBollingerInsufficientData(t *testing.T) {
	_, err := Bollinger(candlesFromCloses(1, 2, 3), 20, 2)
	var insufficient *InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
}
