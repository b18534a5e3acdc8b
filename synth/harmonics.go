package synth

import (
	"fmt"
	"math"
)

// OscillatorSpec describes one harmonic stack: a fundamental and its
// integer multiples with exponentially decaying gains.
type OscillatorSpec struct {
	BaseFrequency float64
	HarmonicCount int
	Decay         float64
}

// Frequencies returns [base*1, base*2, ..., base*HarmonicCount].
func (s OscillatorSpec) Frequencies() ([]float64, error) {
	return HarmonicSeries(s.BaseFrequency, s.HarmonicCount)
}

// Gains returns [decay^0, decay^1, ..., decay^(HarmonicCount-1)].
func (s OscillatorSpec) Gains() ([]float64, error) {
	return GainSeries(s.Decay, s.HarmonicCount)
}

// Series returns the frequency and gain lists together.
func (s OscillatorSpec) Series() ([]float64, []float64, error) {
	freqs, err := s.Frequencies()
	if err != nil {
		return nil, nil, err
	}
	gains, err := s.Gains()
	if err != nil {
		return nil, nil, err
	}
	return freqs, gains, nil
}

// HarmonicSeries returns count frequencies, the i-th being base*(i+1).
func HarmonicSeries(base float64, count int) ([]float64, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: harmonic count must be >= 1, got %d", ErrInvalidArgument, count)
	}
	if !(base > 0) || !isFinite(base) {
		return nil, fmt.Errorf("%w: base frequency must be > 0, got %g", ErrInvalidArgument, base)
	}
	out := make([]float64, count)
	for i := range out {
		out[i] = base * float64(i+1)
	}
	return out, nil
}

// GainSeries returns count gains, the i-th being decay^i. The first gain is
// always 1, including for decay == 0.
func GainSeries(decay float64, count int) ([]float64, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: gain count must be >= 1, got %d", ErrInvalidArgument, count)
	}
	if !(decay >= 0 && decay <= 1) {
		return nil, fmt.Errorf("%w: decay must be in [0,1], got %g", ErrInvalidArgument, decay)
	}
	out := make([]float64, count)
	for i := range out {
		out[i] = math.Pow(decay, float64(i))
	}
	return out, nil
}
