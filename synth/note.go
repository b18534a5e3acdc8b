package synth

import (
	"fmt"

	"github.com/cwbudde/algo-additive/dsp"
)

// NoteEvent is one played pitch, already resolved to absolute samples.
type NoteEvent struct {
	Pitch           float64 // Hz
	Velocity        float64 // linear gain in [0,1]
	StartSample     int
	DurationSamples int
}

// EndSample returns the first sample after the note.
func (e NoteEvent) EndSample() int {
	return e.StartSample + e.DurationSamples
}

// Validate checks the event fields.
func (e NoteEvent) Validate() error {
	if !(e.Pitch > 0) || !isFinite(e.Pitch) {
		return fmt.Errorf("%w: pitch must be > 0, got %g", ErrInvalidArgument, e.Pitch)
	}
	if !(e.Velocity >= 0 && e.Velocity <= 1) {
		return fmt.Errorf("%w: velocity must be in [0,1], got %g", ErrInvalidArgument, e.Velocity)
	}
	if e.StartSample < 0 {
		return fmt.Errorf("%w: start sample must be >= 0, got %d", ErrInvalidArgument, e.StartSample)
	}
	if e.DurationSamples < 0 {
		return fmt.Errorf("%w: duration must be >= 0, got %d", ErrInvalidArgument, e.DurationSamples)
	}
	return nil
}

// Track is one instrument's notes in playback order.
type Track struct {
	Name  string
	Notes []NoteEvent
}

// Sequence is a multi-track note list at a fixed sample rate.
type Sequence struct {
	SampleRate int
	Tracks     []Track
}

// Len returns the total number of notes.
func (s Sequence) Len() int {
	n := 0
	for _, t := range s.Tracks {
		n += len(t.Notes)
	}
	return n
}

// EndSample returns the largest note end, i.e. the output length that
// covers the whole sequence.
func (s Sequence) EndSample() int {
	end := 0
	for _, t := range s.Tracks {
		for _, e := range t.Notes {
			if e.EndSample() > end {
				end = e.EndSample()
			}
		}
	}
	return end
}

// Notes flattens the sequence in track order, then note order.
func (s Sequence) Notes() []NoteEvent {
	out := make([]NoteEvent, 0, s.Len())
	for _, t := range s.Tracks {
		out = append(out, t.Notes...)
	}
	return out
}

// Renderer turns single note events into shaped sample buffers. It is
// immutable after construction and safe for concurrent use.
type Renderer struct {
	cfg     Config
	weights MixWeights
	attack  int
	fade    int
}

// NewRenderer validates cfg and precomputes the mix weights and ramp lengths.
func NewRenderer(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m, err := NewMixer(cfg.Weights())
	if err != nil {
		return nil, err
	}
	return &Renderer{
		cfg:     cfg,
		weights: m.Weights(),
		attack:  dsp.EnvelopeSamples(cfg.AttackSeconds, cfg.SampleRate),
		fade:    dsp.EnvelopeSamples(cfg.FadeSeconds, cfg.SampleRate),
	}, nil
}

// Config returns the renderer's configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

func (r *Renderer) family(w Waveform) WaveParams {
	switch w {
	case WaveSaw:
		return r.cfg.Saw
	case WaveSquare:
		return r.cfg.Square
	default:
		return r.cfg.Sine
	}
}

// RenderNote synthesizes ev: the three harmonic stacks at ev.Pitch, mixed,
// smoothed, scaled by velocity/VolumeReduction and shaped by the envelope.
// The result has exactly ev.DurationSamples samples.
func (r *Renderer) RenderNote(ev NoteEvent) ([]float32, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	out := make([]float32, ev.DurationSamples)
	if len(out) == 0 {
		return out, nil
	}

	for _, w := range [...]Waveform{WaveSine, WaveSaw, WaveSquare} {
		weight := r.weights.Of(w)
		if weight == 0 {
			continue
		}
		p := r.family(w)
		freqs, gains, err := OscillatorSpec{BaseFrequency: ev.Pitch, HarmonicCount: p.Harmonics, Decay: p.Decay}.Series()
		if err != nil {
			return nil, err
		}
		// Fold the mix weight into the partial gains: one buffer per note.
		for i := range gains {
			gains[i] *= weight
		}
		if err := AccumulateWave(out, w, freqs, gains, r.cfg.SampleRate); err != nil {
			return nil, err
		}
	}

	dsp.Smooth(out, r.cfg.SmoothingRounds)
	dsp.Scale(out, float32(ev.Velocity/r.cfg.VolumeReduction))
	dsp.ApplyEnvelope(out, r.attack, r.fade)
	return out, nil
}
