package synth

import "fmt"

// DemoToneSeconds is the length of a preview tone.
const DemoToneSeconds = 1.0

// RenderTone renders a single full-velocity note of the given frequency and
// length through the same path as sequence notes.
func RenderTone(cfg Config, frequency, durationSeconds float64) ([]float32, error) {
	r, err := NewRenderer(cfg)
	if err != nil {
		return nil, err
	}
	if durationSeconds < 0 || !isFinite(durationSeconds) {
		return nil, fmt.Errorf("%w: tone duration must be >= 0, got %g", ErrInvalidArgument, durationSeconds)
	}
	return r.RenderNote(NoteEvent{
		Pitch:           frequency,
		Velocity:        1,
		StartSample:     0,
		DurationSamples: SampleCount(durationSeconds, cfg.SampleRate),
	})
}
