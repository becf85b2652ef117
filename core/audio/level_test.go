package audio

import (
	"math"
	"testing"
)

func TestPeakLevelEmptyChunkIsSilent(t *testing.T) {
	if got := PeakLevel(nil); got != 0.0 {
		t.Fatalf("expected empty chunk to measure 0.0, got %f", got)
	}
	if got := PeakLevelPCM16(nil); got != 0.0 {
		t.Fatalf("expected empty byte chunk to measure 0.0, got %f", got)
	}
}

func TestPeakLevelMaxMagnitudeSampleIsFullScale(t *testing.T) {
	if got := PeakLevel([]int16{0, 12, math.MaxInt16, -40}); got != 1.0 {
		t.Fatalf("expected max-magnitude chunk to measure 1.0, got %f", got)
	}
}

func TestPeakLevelMinInt16ClampsToOne(t *testing.T) {
	if got := PeakLevel([]int16{math.MinInt16}); got != 1.0 {
		t.Fatalf("expected MinInt16 to clamp to 1.0, got %f", got)
	}
}

func TestPeakLevelStaysNormalized(t *testing.T) {
	chunks := [][]int16{
		{},
		{0, 0, 0},
		{1, -1},
		{16384, -16384},
		{math.MaxInt16, math.MinInt16},
	}
	for _, chunk := range chunks {
		level := PeakLevel(chunk)
		if level < 0.0 || level > 1.0 {
			t.Fatalf("expected level in [0, 1] for %v, got %f", chunk, level)
		}
	}
}

func TestPeakLevelUsesAbsoluteMagnitude(t *testing.T) {
	positive := PeakLevel([]int16{8000})
	negative := PeakLevel([]int16{-8000})
	if positive != negative {
		t.Fatalf("expected symmetric levels, got %f and %f", positive, negative)
	}
}

func TestPeakLevelPCM16MatchesSampleVariant(t *testing.T) {
	samples := []int16{0, 3000, -9000, 127}
	if got, want := PeakLevelPCM16(EncodePCM16(samples)), PeakLevel(samples); got != want {
		t.Fatalf("expected byte variant to match sample variant, got %f want %f", got, want)
	}
}

func TestEncodeDecodePCM16RoundTrip(t *testing.T) {
	samples := []int16{0, 1, -1, 255, -256, math.MaxInt16, math.MinInt16}
	decoded := DecodePCM16(EncodePCM16(samples))
	if len(decoded) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(decoded))
	}
	for i := range samples {
		if decoded[i] != samples[i] {
			t.Fatalf("sample %d: expected %d, got %d", i, samples[i], decoded[i])
		}
	}
}

func TestDecodePCM16IgnoresTrailingOddByte(t *testing.T) {
	if got := DecodePCM16([]byte{0x01, 0x02, 0x03}); len(got) != 1 {
		t.Fatalf("expected a single sample, got %d", len(got))
	}
}
