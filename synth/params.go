package synth

import (
	"fmt"
	"math"
)

// Upper limits for harmonic counts and sample rates accepted by Validate.
const (
	MaxHarmonics  = 1000
	MaxSampleRate = 100000000
)

// WaveParams holds the settings of one waveform family.
type WaveParams struct {
	Weight    float64 // relative mix weight, >= 0
	Harmonics int     // number of partials including the fundamental, >= 1
	Decay     float64 // gain ratio between consecutive partials, in [0,1]
}

// Config holds the global synthesis settings. It is passed by value and
// never mutated by the engine.
type Config struct {
	SampleRate int

	Sine   WaveParams
	Saw    WaveParams
	Square WaveParams

	SmoothingRounds int

	AttackSeconds float64
	FadeSeconds   float64

	// VolumeReduction divides every note's gain to leave headroom for overlaps.
	VolumeReduction float64
}

// NewDefaultConfig returns the default tone: a bright sine stack with a
// little square for body.
func NewDefaultConfig() Config {
	return Config{
		SampleRate:      44100,
		Sine:            WaveParams{Weight: 80, Harmonics: 80, Decay: 0.3},
		Saw:             WaveParams{Weight: 0, Harmonics: 1, Decay: 0.8},
		Square:          WaveParams{Weight: 10, Harmonics: 5, Decay: 0.8},
		SmoothingRounds: 0,
		AttackSeconds:   0.01,
		FadeSeconds:     0.05,
		VolumeReduction: 4.0,
	}
}

// Weights returns the raw (unnormalized) mix weights.
func (c Config) Weights() MixWeights {
	return MixWeights{Sine: c.Sine.Weight, Saw: c.Saw.Weight, Square: c.Square.Weight}
}

// Validate checks every field and the mix weight sum.
func (c Config) Validate() error {
	if c.SampleRate <= 0 || c.SampleRate > MaxSampleRate {
		return fmt.Errorf("%w: sample_rate must be in [1,%d], got %d", ErrInvalidArgument, MaxSampleRate, c.SampleRate)
	}
	families := []struct {
		name string
		p    WaveParams
	}{
		{"sine", c.Sine},
		{"saw", c.Saw},
		{"square", c.Square},
	}
	for _, f := range families {
		if err := f.p.validate(f.name); err != nil {
			return err
		}
	}
	if _, err := c.Weights().Normalize(); err != nil {
		return err
	}
	if c.SmoothingRounds < 0 {
		return fmt.Errorf("%w: smoothing_rounds must be >= 0", ErrInvalidArgument)
	}
	if !(c.AttackSeconds >= 0) || math.IsInf(c.AttackSeconds, 0) {
		return fmt.Errorf("%w: attack_seconds must be >= 0", ErrInvalidArgument)
	}
	if !(c.FadeSeconds >= 0) || math.IsInf(c.FadeSeconds, 0) {
		return fmt.Errorf("%w: fade_seconds must be >= 0", ErrInvalidArgument)
	}
	if !(c.VolumeReduction >= 1) || math.IsInf(c.VolumeReduction, 0) {
		return fmt.Errorf("%w: volume_reduction must be >= 1", ErrInvalidArgument)
	}
	return nil
}

func (p WaveParams) validate(name string) error {
	if !(p.Weight >= 0) || math.IsInf(p.Weight, 0) {
		return fmt.Errorf("%w: %s weight must be >= 0", ErrInvalidArgument, name)
	}
	if p.Harmonics < 1 || p.Harmonics > MaxHarmonics {
		return fmt.Errorf("%w: %s harmonics must be in [1,%d], got %d", ErrInvalidArgument, name, MaxHarmonics, p.Harmonics)
	}
	if !(p.Decay >= 0 && p.Decay <= 1) {
		return fmt.Errorf("%w: %s decay must be in [0,1]", ErrInvalidArgument, name)
	}
	return nil
}
