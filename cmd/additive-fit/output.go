package main

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-additive/analysis"
	fitcommon "github.com/cwbudde/algo-additive/internal/fitcommon"
	"github.com/cwbudde/algo-additive/preset"
	"github.com/cwbudde/algo-additive/synth"
)

type runReport struct {
	ReferencePath  string             `json:"reference_path"`
	PresetPath     string             `json:"preset_path,omitempty"`
	OutputPreset   string             `json:"output_preset"`
	SampleRate     int                `json:"sample_rate"`
	FrequencyHz    float64            `json:"frequency_hz"`
	DurationSec    float64            `json:"elapsed_seconds"`
	Evaluations    int                `json:"evaluations"`
	MayflyVariant  string             `json:"mayfly_variant"`
	BestScore      float64            `json:"best_score"`
	BestSimilarity float64            `json:"best_similarity"`
	BestMetrics    analysis.Metrics   `json:"best_metrics"`
	BestKnobs      map[string]float64 `json:"best_knobs"`
	TopCandidates  []topCandidate     `json:"top_candidates,omitempty"`
}

// writeOutputs saves the fitted preset (format by extension), an optional
// rendered tone and the run report.
func writeOutputs(outputPreset, outputWAV, reportPath string, rep runReport, cfg synth.Config, frequency, duration float64) error {
	if err := preset.Save(outputPreset, cfg); err != nil {
		return err
	}

	if outputWAV != "" {
		tone, err := synth.RenderTone(cfg, frequency, duration)
		if err != nil {
			return err
		}
		if err := fitcommon.WriteMonoWAV(outputWAV, tone, cfg.SampleRate); err != nil {
			return err
		}
	}

	if reportPath == "" {
		reportPath = outputPreset + ".report.json"
	}
	return writeJSON(reportPath, rep)
}

func knobMap(defs []knobDef, c candidate) map[string]float64 {
	knobs := make(map[string]float64, len(defs))
	for i, d := range defs {
		knobs[d.Name] = c.Vals[i]
	}
	return knobs
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}

func loadCandidateFromReport(path string, defs []knobDef, fallback candidate) (candidate, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fallback, false, nil
		}
		return fallback, false, err
	}

	var rep struct {
		BestKnobs map[string]float64 `json:"best_knobs"`
	}
	if err := json.Unmarshal(b, &rep); err != nil {
		return fallback, false, err
	}
	if len(rep.BestKnobs) == 0 {
		return fallback, false, nil
	}

	vals := make([]float64, len(fallback.Vals))
	copy(vals, fallback.Vals)
	updated := false
	for i, d := range defs {
		if v, ok := rep.BestKnobs[d.Name]; ok {
			vals[i] = fitcommon.Clamp(v, d.Min, d.Max)
			if d.IsInt {
				vals[i] = math.Round(vals[i])
			}
			updated = true
		}
	}
	if !updated {
		return fallback, false, nil
	}
	return candidate{Vals: vals}, true, nil
}
