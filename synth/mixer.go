package synth

import (
	"fmt"
)

// MixWeights holds the relative levels of the three waveform families.
type MixWeights struct {
	Sine   float64
	Saw    float64
	Square float64
}

// Normalize divides each weight by the sum of all three.
func (w MixWeights) Normalize() (MixWeights, error) {
	if w.Sine < 0 || w.Saw < 0 || w.Square < 0 {
		return MixWeights{}, fmt.Errorf("%w: mix weights must be >= 0, got %+v", ErrInvalidArgument, w)
	}
	sum := w.Sine + w.Saw + w.Square
	if sum == 0 || !isFinite(sum) {
		return MixWeights{}, fmt.Errorf("%w: mix weights must have a positive finite sum, got %g", ErrInvalidArgument, sum)
	}
	return MixWeights{
		Sine:   w.Sine / sum,
		Saw:    w.Saw / sum,
		Square: w.Square / sum,
	}, nil
}

// Of returns the weight of one family.
func (w MixWeights) Of(wf Waveform) float64 {
	switch wf {
	case WaveSine:
		return w.Sine
	case WaveSaw:
		return w.Saw
	case WaveSquare:
		return w.Square
	}
	return 0
}

// Mixer blends sine, saw and square buffers with normalized weights.
type Mixer struct {
	weights MixWeights
}

// NewMixer normalizes the raw weights. A zero sum is an error.
func NewMixer(raw MixWeights) (*Mixer, error) {
	w, err := raw.Normalize()
	if err != nil {
		return nil, err
	}
	return &Mixer{weights: w}, nil
}

// Weights returns the normalized weights (they sum to 1).
func (m *Mixer) Weights() MixWeights {
	return m.weights
}

// Mix returns sine*w.Sine + saw*w.Saw + square*w.Square, sample-wise.
// Renderer does not call it; it folds the weights into the harmonic gains.
func (m *Mixer) Mix(sine, saw, square []float32) ([]float32, error) {
	if len(sine) != len(saw) || len(sine) != len(square) {
		return nil, fmt.Errorf("%w: buffer lengths differ (sine=%d saw=%d square=%d)", ErrInvalidArgument, len(sine), len(saw), len(square))
	}
	ws := float32(m.weights.Sine)
	wsaw := float32(m.weights.Saw)
	wsq := float32(m.weights.Square)
	out := make([]float32, len(sine))
	for i := range out {
		out[i] = sine[i]*ws + saw[i]*wsaw + square[i]*wsq
	}
	return out, nil
}
