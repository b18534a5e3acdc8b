package synth

import (
	"fmt"
	"math"
)

// Waveform selects an oscillator shape.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSaw
	WaveSquare
)

func (w Waveform) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSaw:
		return "saw"
	case WaveSquare:
		return "square"
	default:
		return fmt.Sprintf("waveform(%d)", int(w))
	}
}

// SampleCount returns ceil(duration*sampleRate). A tiny tolerance keeps
// durations derived from integer sample counts (n/sampleRate) from rounding
// up to n+1.
func SampleCount(durationSeconds float64, sampleRate int) int {
	if !(durationSeconds > 0) || sampleRate <= 0 {
		return 0
	}
	return int(math.Ceil(durationSeconds*float64(sampleRate) - 1e-9))
}

// Sine sums strengths[i]*sin(2*pi*frequencies[i]*n/sampleRate).
func Sine(frequencies, strengths []float64, durationSeconds float64, sampleRate int) ([]float32, error) {
	return generate(WaveSine, frequencies, strengths, durationSeconds, sampleRate)
}

// Sawtooth sums band-unlimited ramps rising from -1 to 1 over each period.
func Sawtooth(frequencies, strengths []float64, durationSeconds float64, sampleRate int) ([]float32, error) {
	return generate(WaveSaw, frequencies, strengths, durationSeconds, sampleRate)
}

// Square sums band-unlimited square waves: +1 on the first half period, -1 on the second.
func Square(frequencies, strengths []float64, durationSeconds float64, sampleRate int) ([]float32, error) {
	return generate(WaveSquare, frequencies, strengths, durationSeconds, sampleRate)
}

// Generate renders one waveform family for an OscillatorSpec into a new
// buffer. Renderer accumulates families in place with AccumulateWave instead.
func Generate(w Waveform, spec OscillatorSpec, durationSeconds float64, sampleRate int) ([]float32, error) {
	freqs, gains, err := spec.Series()
	if err != nil {
		return nil, err
	}
	return generate(w, freqs, gains, durationSeconds, sampleRate)
}

func generate(w Waveform, frequencies, strengths []float64, durationSeconds float64, sampleRate int) ([]float32, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0, got %d", ErrInvalidArgument, sampleRate)
	}
	if durationSeconds < 0 || !isFinite(durationSeconds) {
		return nil, fmt.Errorf("%w: duration must be >= 0, got %g", ErrInvalidArgument, durationSeconds)
	}
	out := make([]float32, SampleCount(durationSeconds, sampleRate))
	if err := AccumulateWave(out, w, frequencies, strengths, sampleRate); err != nil {
		return nil, err
	}
	return out, nil
}

// AccumulateWave adds the waveform sum into dst in place. Sample n sits at
// t = n/sampleRate for every shape, so buffers of the three families line up.
func AccumulateWave(dst []float32, w Waveform, frequencies, strengths []float64, sampleRate int) error {
	if len(frequencies) != len(strengths) {
		return fmt.Errorf("%w: %d frequencies but %d strengths", ErrInvalidArgument, len(frequencies), len(strengths))
	}
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be > 0, got %d", ErrInvalidArgument, sampleRate)
	}
	fs := float64(sampleRate)
	for i, f := range frequencies {
		g := strengths[i]
		if g == 0 {
			continue
		}
		if !isFinite(f) || !isFinite(g) {
			return fmt.Errorf("%w: non-finite partial %d", ErrInvalidArgument, i)
		}
		// cycles per sample
		step := f / fs
		switch w {
		case WaveSine:
			omega := 2 * math.Pi * step
			for n := range dst {
				dst[n] += float32(g * math.Sin(omega*float64(n)))
			}
		case WaveSaw:
			for n := range dst {
				dst[n] += float32(g * sawtooth(step*float64(n)))
			}
		case WaveSquare:
			for n := range dst {
				dst[n] += float32(g * square(step*float64(n)))
			}
		default:
			return fmt.Errorf("%w: unknown waveform %v", ErrInvalidArgument, w)
		}
	}
	return nil
}

// sawtooth maps a phase in cycles to a ramp in [-1,1).
func sawtooth(cycles float64) float64 {
	frac := cycles - math.Floor(cycles)
	return 2*frac - 1
}

func square(cycles float64) float64 {
	frac := cycles - math.Floor(cycles)
	if frac < 0.5 {
		return 1
	}
	return -1
}
