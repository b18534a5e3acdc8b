package synth

import (
	"errors"
	"math"
	"testing"
)

func TestRenderNoteHasRequestedLengthAndEnvelope(t *testing.T) {
	r, err := NewRenderer(testConfig())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	got, err := r.RenderNote(NoteEvent{Pitch: 440, Velocity: 1, StartSample: 100, DurationSamples: 800})
	if err != nil {
		t.Fatalf("RenderNote: %v", err)
	}
	if len(got) != 800 {
		t.Fatalf("note length = %d, want 800", len(got))
	}
	if got[0] != 0 {
		t.Fatalf("attack should start at zero, got %g", got[0])
	}
	if peakAbs(got) == 0 {
		t.Fatalf("expected non-silent note")
	}
	// Gain never exceeds 1/VolumeReduction of the unnormalized partial sum.
	if p := peakAbs(got); p > 1.0 {
		t.Fatalf("unexpected peak %g", p)
	}
}

func TestRenderNoteScalesWithVelocity(t *testing.T) {
	cfg := testConfig()
	cfg.AttackSeconds, cfg.FadeSeconds = 0, 0
	r, err := NewRenderer(cfg)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	full, err := r.RenderNote(NoteEvent{Pitch: 330, Velocity: 1, DurationSamples: 400})
	if err != nil {
		t.Fatalf("RenderNote: %v", err)
	}
	half, err := r.RenderNote(NoteEvent{Pitch: 330, Velocity: 0.5, DurationSamples: 400})
	if err != nil {
		t.Fatalf("RenderNote: %v", err)
	}
	for i := range full {
		assertClose(t, "half velocity", float64(half[i]), 0.5*float64(full[i]), 1e-6)
	}
	silent, err := r.RenderNote(NoteEvent{Pitch: 330, Velocity: 0, DurationSamples: 400})
	if err != nil {
		t.Fatalf("RenderNote: %v", err)
	}
	assertAllZero(t, "zero velocity", silent)
}

func TestRenderNoteMatchesMixerPath(t *testing.T) {
	cfg := testConfig()
	cfg.AttackSeconds, cfg.FadeSeconds = 0, 0
	cfg.VolumeReduction = 1
	r, err := NewRenderer(cfg)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	const pitch, n = 200.0, 320
	got, err := r.RenderNote(NoteEvent{Pitch: pitch, Velocity: 1, DurationSamples: n})
	if err != nil {
		t.Fatalf("RenderNote: %v", err)
	}

	dur := float64(n) / float64(cfg.SampleRate)
	sine, _ := Generate(WaveSine, OscillatorSpec{pitch, cfg.Sine.Harmonics, cfg.Sine.Decay}, dur, cfg.SampleRate)
	saw, _ := Generate(WaveSaw, OscillatorSpec{pitch, cfg.Saw.Harmonics, cfg.Saw.Decay}, dur, cfg.SampleRate)
	sq, _ := Generate(WaveSquare, OscillatorSpec{pitch, cfg.Square.Harmonics, cfg.Square.Decay}, dur, cfg.SampleRate)
	m, _ := NewMixer(cfg.Weights())
	want, err := m.Mix(sine, saw, sq)
	if err != nil {
		t.Fatalf("Mix: %v", err)
	}
	for i := range want {
		assertClose(t, "note vs mixer", float64(got[i]), float64(want[i]), 1e-5)
	}
}

func TestRenderNoteRejectsInvalidEvents(t *testing.T) {
	r, err := NewRenderer(testConfig())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	bad := []NoteEvent{
		{Pitch: 0, Velocity: 1, DurationSamples: 10},
		{Pitch: math.Inf(1), Velocity: 1, DurationSamples: 10},
		{Pitch: 440, Velocity: 1.5, DurationSamples: 10},
		{Pitch: 440, Velocity: 1, StartSample: -1, DurationSamples: 10},
		{Pitch: 440, Velocity: 1, DurationSamples: -5},
	}
	for _, ev := range bad {
		if _, err := r.RenderNote(ev); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("RenderNote(%+v): expected ErrInvalidArgument, got %v", ev, err)
		}
	}
}

func TestRenderNoteZeroDurationIsEmpty(t *testing.T) {
	r, err := NewRenderer(testConfig())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	got, err := r.RenderNote(NoteEvent{Pitch: 440, Velocity: 1})
	if err != nil {
		t.Fatalf("RenderNote: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty note, got %d samples", len(got))
	}
}

func TestSmoothingReducesNoteBrightness(t *testing.T) {
	cfg := testConfig()
	cfg.Sine.Weight, cfg.Square.Weight = 0, 1
	cfg.Square.Harmonics = 1
	cfg.AttackSeconds, cfg.FadeSeconds = 0, 0

	raw, err := RenderTone(cfg, 1000, 0.05)
	if err != nil {
		t.Fatalf("RenderTone: %v", err)
	}
	cfg.SmoothingRounds = 3
	smooth, err := RenderTone(cfg, 1000, 0.05)
	if err != nil {
		t.Fatalf("RenderTone: %v", err)
	}
	if peakAbs(smooth) >= peakAbs(raw) {
		t.Fatalf("expected smoothing to lower the square peak: raw=%g smooth=%g", peakAbs(raw), peakAbs(smooth))
	}
}

func TestSequenceHelpers(t *testing.T) {
	seq := Sequence{Tracks: []Track{
		{Name: "a", Notes: []NoteEvent{{StartSample: 0, DurationSamples: 10}, {StartSample: 50, DurationSamples: 30}}},
		{Name: "b", Notes: []NoteEvent{{StartSample: 20, DurationSamples: 5}}},
	}}
	if seq.Len() != 3 {
		t.Fatalf("Len = %d", seq.Len())
	}
	if seq.EndSample() != 80 {
		t.Fatalf("EndSample = %d", seq.EndSample())
	}
	notes := seq.Notes()
	if notes[0].StartSample != 0 || notes[1].StartSample != 50 || notes[2].StartSample != 20 {
		t.Fatalf("Notes not in track order: %+v", notes)
	}
}

func TestRenderNoteHugeAttackClampsToNoteLength(t *testing.T) {
	const n = 400
	clamped := testConfig()
	clamped.FadeSeconds = 0
	clamped.AttackSeconds = float64(n-1) / float64(clamped.SampleRate)
	huge := clamped
	huge.AttackSeconds = 1e300

	ev := NoteEvent{Pitch: 330, Velocity: 1, DurationSamples: n}
	var outs [2][]float32
	for i, cfg := range []Config{clamped, huge} {
		r, err := NewRenderer(cfg)
		if err != nil {
			t.Fatalf("NewRenderer: %v", err)
		}
		if outs[i], err = r.RenderNote(ev); err != nil {
			t.Fatalf("RenderNote: %v", err)
		}
	}
	for i := range outs[0] {
		if outs[0][i] != outs[1][i] {
			t.Fatalf("sample %d: huge attack=%g, want %g", i, outs[1][i], outs[0][i])
		}
	}
}
