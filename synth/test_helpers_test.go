package synth

import (
	"math"
	"testing"
)

func testConfig() Config {
	cfg := NewDefaultConfig()
	cfg.SampleRate = 8000
	cfg.Sine = WaveParams{Weight: 80, Harmonics: 8, Decay: 0.3}
	cfg.Saw = WaveParams{Weight: 0, Harmonics: 1, Decay: 0.8}
	cfg.Square = WaveParams{Weight: 20, Harmonics: 3, Decay: 0.8}
	cfg.AttackSeconds = 0.005
	cfg.FadeSeconds = 0.01
	cfg.VolumeReduction = 2
	return cfg
}

func peakAbs(x []float32) float64 {
	var p float64
	for _, v := range x {
		if a := math.Abs(float64(v)); a > p {
			p = a
		}
	}
	return p
}

func assertClose(t *testing.T, what string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s: got=%g want=%g (tol %g)", what, got, want, tol)
	}
}

func assertAllZero(t *testing.T, what string, x []float32) {
	t.Helper()
	for i, v := range x {
		if v != 0 {
			t.Fatalf("%s: expected zero at %d, got %g", what, i, v)
		}
	}
}
