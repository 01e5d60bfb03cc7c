package conversion

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		val      float64
		from, to string
		want     float64
	}{
		{10, "m/s", "KT", 19.4384},
		{10, "KT", "m/s", 5.1444},
		{7, "KT", "KT", 7},
	}
	for _, tc := range tests {
		got, err := Convert(tc.val, tc.from, tc.to, "speed")
		if err != nil {
			t.Fatalf("Convert(%v, %s, %s): %v", tc.val, tc.from, tc.to, err)
		}
		if !almostEqual(got, tc.want) {
			t.Errorf("Convert(%v, %s, %s) = %v, want %v", tc.val, tc.from, tc.to, got, tc.want)
		}
	}
}

func TestConvertTemperature(t *testing.T) {
	tests := []struct {
		val      float64
		from, to string
		want     float64
	}{
		{0, "Cel", "degF", 32},
		{0, "Cel", "K", 273.15},
		{212, "degF", "Cel", 100},
		{300, "K", "Cel", 26.85},
	}
	for _, tc := range tests {
		got, err := Convert(tc.val, tc.from, tc.to, "temperature")
		if err != nil {
			t.Fatalf("Convert(%v, %s, %s): %v", tc.val, tc.from, tc.to, err)
		}
		if !almostEqual(got, tc.want) {
			t.Errorf("Convert(%v, %s, %s) = %v, want %v", tc.val, tc.from, tc.to, got, tc.want)
		}
	}
}

func TestConvertTime(t *testing.T) {
	got, err := Convert(2, "h", "min", "time")
	if err != nil {
		t.Fatal(err)
	}
	if got != 120 {
		t.Errorf("Convert(2, h, min) = %v, want 120", got)
	}
}

func TestConvertLength(t *testing.T) {
	got, err := Convert(1500, "m", "km", "length")
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got, 1.5) {
		t.Errorf("Convert(1500, m, km) = %v, want 1.5", got)
	}

	got, err = Convert(10, "hPa", "Pa", "pressure")
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got, 1000) {
		t.Errorf("Convert(10, hPa, Pa) = %v, want 1000", got)
	}
}

func TestConvertIncompatible(t *testing.T) {
	_, err := Convert(5, "m/s", "furlong/fortnight", "speed")
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Errorf("expected ConversionError, got %v", err)
	}
}
