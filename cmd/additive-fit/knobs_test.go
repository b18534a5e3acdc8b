package main

import (
	"testing"

	"github.com/cwbudde/algo-additive/synth"
)

func TestParseOptimizeGroups(t *testing.T) {
	tests := []struct {
		raw     string
		want    []string
		wantErr bool
	}{
		{raw: "mix", want: []string{"mix"}},
		{raw: "mix, decay", want: []string{"mix", "decay"}},
		{raw: "mix,decay,harmonics,shape", want: []string{"mix", "decay", "harmonics", "shape"}},
		{raw: "", wantErr: true},
		{raw: " , ", wantErr: true},
		{raw: "mix,bogus", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseOptimizeGroups(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseOptimizeGroups(%q) expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseOptimizeGroups(%q) unexpected error: %v", tt.raw, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("parseOptimizeGroups(%q) = %v, want %v", tt.raw, got, tt.want)
		}
		for _, g := range tt.want {
			if !got[g] {
				t.Fatalf("parseOptimizeGroups(%q) missing %q", tt.raw, g)
			}
		}
	}
}

func TestKnobDefsAllResolve(t *testing.T) {
	defs := knobDefs(map[string]bool{"mix": true, "decay": true, "harmonics": true, "shape": true})
	if len(defs) != 12 {
		t.Fatalf("knob count = %d, want 12", len(defs))
	}
	cfg := synth.NewDefaultConfig()
	for _, d := range defs {
		f, n := knobRef(&cfg, d.Name)
		if (f == nil) == (n == nil) {
			t.Fatalf("knob %q must map to exactly one field", d.Name)
		}
		if d.IsInt != (n != nil) {
			t.Fatalf("knob %q IsInt=%v does not match field type", d.Name, d.IsInt)
		}
	}
}

func TestInitCandidateReadsDefaults(t *testing.T) {
	defs := knobDefs(map[string]bool{"mix": true, "harmonics": true})
	got := initCandidate(synth.NewDefaultConfig(), defs)
	want := []float64{80, 0, 10, 80, 1, 5}
	for i := range want {
		if got.Vals[i] != want[i] {
			t.Fatalf("%s = %v, want %v", defs[i].Name, got.Vals[i], want[i])
		}
	}
}

func TestApplyCandidateWritesKnobs(t *testing.T) {
	defs := knobDefs(map[string]bool{"mix": true, "decay": true, "shape": true})
	base := synth.NewDefaultConfig()
	cand := candidate{Vals: []float64{10, 20, 30, 0.1, 0.2, 0.3, 2.6, 0.02, 0.1}}
	cfg := applyCandidate(base, defs, cand)

	if cfg.Sine.Weight != 10 || cfg.Saw.Weight != 20 || cfg.Square.Weight != 30 {
		t.Fatalf("weights = %+v", cfg.Weights())
	}
	if cfg.Sine.Decay != 0.1 || cfg.Saw.Decay != 0.2 || cfg.Square.Decay != 0.3 {
		t.Fatalf("decays = %v %v %v", cfg.Sine.Decay, cfg.Saw.Decay, cfg.Square.Decay)
	}
	if cfg.SmoothingRounds != 3 {
		t.Fatalf("SmoothingRounds = %d, want 3 (rounded)", cfg.SmoothingRounds)
	}
	if cfg.AttackSeconds != 0.02 || cfg.FadeSeconds != 0.1 {
		t.Fatalf("attack/fade = %v/%v", cfg.AttackSeconds, cfg.FadeSeconds)
	}
	if base.Sine.Weight != 80 {
		t.Fatalf("applyCandidate mutated base config")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("applied config invalid: %v", err)
	}
}

func TestFromNormalizedMapsAndRounds(t *testing.T) {
	defs := []knobDef{
		{Name: "a", Min: 0, Max: 100},
		{Name: "b", Min: 1, Max: 20, IsInt: true},
	}
	got := fromNormalized([]float64{0.25, 0.5}, defs)
	if got.Vals[0] != 25 {
		t.Fatalf("a = %v, want 25", got.Vals[0])
	}
	if got.Vals[1] != 11 {
		t.Fatalf("b = %v, want 11", got.Vals[1])
	}
	clamped := fromNormalized([]float64{-1, 3}, defs)
	if clamped.Vals[0] != 0 || clamped.Vals[1] != 20 {
		t.Fatalf("clamped = %v", clamped.Vals)
	}
}

func TestCloneCandidateCopiesSlice(t *testing.T) {
	orig := candidate{Vals: []float64{1.0, 2.0, 3.0}}
	cloned := cloneCandidate(orig)
	cloned.Vals[0] = 99.0

	if orig.Vals[0] != 1.0 {
		t.Fatalf("clone mutated original: got %.1f want 1.0", orig.Vals[0])
	}
	if candidateKey(orig) != "1,2,3" {
		t.Fatalf("candidateKey = %q", candidateKey(orig))
	}
}
