package main

import (
	"fmt"
	"math"
	"strings"

	fitcommon "github.com/cwbudde/algo-additive/internal/fitcommon"
	"github.com/cwbudde/algo-additive/synth"
)

type knobDef struct {
	Name  string
	Min   float64
	Max   float64
	IsInt bool
}

type candidate struct {
	Vals []float64
}

// parseOptimizeGroups parses a comma-separated string of group names.
// Valid groups: mix, decay, harmonics, shape.
func parseOptimizeGroups(raw string) (map[string]bool, error) {
	valid := map[string]bool{"mix": true, "decay": true, "harmonics": true, "shape": true}
	groups := make(map[string]bool)
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !valid[s] {
			return nil, fmt.Errorf("unknown optimize group %q (valid: mix, decay, harmonics, shape)", s)
		}
		groups[s] = true
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no optimize groups specified")
	}
	return groups, nil
}

// knobDefs lists the tunable parameters for the active groups in a fixed order.
func knobDefs(groups map[string]bool) []knobDef {
	var defs []knobDef
	if groups["mix"] {
		defs = append(defs,
			knobDef{Name: "sine_weight", Min: 0, Max: 100},
			knobDef{Name: "saw_weight", Min: 0, Max: 100},
			knobDef{Name: "square_weight", Min: 0, Max: 100},
		)
	}
	if groups["decay"] {
		defs = append(defs,
			knobDef{Name: "sine_decay", Min: 0, Max: 1},
			knobDef{Name: "saw_decay", Min: 0, Max: 1},
			knobDef{Name: "square_decay", Min: 0, Max: 1},
		)
	}
	if groups["harmonics"] {
		defs = append(defs,
			knobDef{Name: "sine_harmonics", Min: 1, Max: 100, IsInt: true},
			knobDef{Name: "saw_harmonics", Min: 1, Max: 20, IsInt: true},
			knobDef{Name: "square_harmonics", Min: 1, Max: 20, IsInt: true},
		)
	}
	if groups["shape"] {
		defs = append(defs,
			knobDef{Name: "smoothing_rounds", Min: 0, Max: 8, IsInt: true},
			knobDef{Name: "attack_seconds", Min: 0, Max: 0.2},
			knobDef{Name: "fade_seconds", Min: 0, Max: 0.5},
		)
	}
	return defs
}

// knobRef returns a pointer to the Config field a knob controls.
func knobRef(cfg *synth.Config, name string) (float64Ptr *float64, intPtr *int) {
	switch name {
	case "sine_weight":
		return &cfg.Sine.Weight, nil
	case "saw_weight":
		return &cfg.Saw.Weight, nil
	case "square_weight":
		return &cfg.Square.Weight, nil
	case "sine_decay":
		return &cfg.Sine.Decay, nil
	case "saw_decay":
		return &cfg.Saw.Decay, nil
	case "square_decay":
		return &cfg.Square.Decay, nil
	case "sine_harmonics":
		return nil, &cfg.Sine.Harmonics
	case "saw_harmonics":
		return nil, &cfg.Saw.Harmonics
	case "square_harmonics":
		return nil, &cfg.Square.Harmonics
	case "smoothing_rounds":
		return nil, &cfg.SmoothingRounds
	case "attack_seconds":
		return &cfg.AttackSeconds, nil
	case "fade_seconds":
		return &cfg.FadeSeconds, nil
	}
	return nil, nil
}

// initCandidate reads the starting knob values from base, clamped to range.
func initCandidate(base synth.Config, defs []knobDef) candidate {
	vals := make([]float64, len(defs))
	for i, d := range defs {
		f, n := knobRef(&base, d.Name)
		switch {
		case f != nil:
			vals[i] = *f
		case n != nil:
			vals[i] = float64(*n)
		}
		vals[i] = fitcommon.Clamp(vals[i], d.Min, d.Max)
	}
	return candidate{Vals: vals}
}

// applyCandidate returns a copy of base with the knob values written in.
func applyCandidate(base synth.Config, defs []knobDef, cand candidate) synth.Config {
	cfg := base
	for i, d := range defs {
		if i >= len(cand.Vals) {
			break
		}
		f, n := knobRef(&cfg, d.Name)
		switch {
		case f != nil:
			*f = cand.Vals[i]
		case n != nil:
			*n = int(math.Round(cand.Vals[i]))
		}
	}
	return cfg
}

func fromNormalized(pos []float64, defs []knobDef) candidate {
	vals := make([]float64, len(defs))
	for i := range defs {
		x := 0.0
		if i < len(pos) {
			x = fitcommon.Clamp(pos[i], 0, 1)
		}
		v := defs[i].Min + x*(defs[i].Max-defs[i].Min)
		if defs[i].IsInt {
			v = math.Round(v)
		}
		vals[i] = v
	}
	return candidate{Vals: vals}
}

func cloneCandidate(c candidate) candidate {
	vals := make([]float64, len(c.Vals))
	copy(vals, c.Vals)
	return candidate{Vals: vals}
}

func candidateKey(c candidate) string {
	var b strings.Builder
	for i, v := range c.Vals {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%.6g", v)
	}
	return b.String()
}
