package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-additive/synth"
)

// File is the on-disk preset schema shared by the JSON, TOML and YAML loaders.
// Every field is optional; missing fields keep the defaults.
type File struct {
	SampleRate      *int      `json:"sample_rate" toml:"sample_rate" yaml:"sample_rate"`
	Sine            *WaveFile `json:"sine" toml:"sine" yaml:"sine"`
	Saw             *WaveFile `json:"saw" toml:"saw" yaml:"saw"`
	Square          *WaveFile `json:"square" toml:"square" yaml:"square"`
	SmoothingRounds *int      `json:"smoothing_rounds" toml:"smoothing_rounds" yaml:"smoothing_rounds"`
	AttackSeconds   *float64  `json:"attack_seconds" toml:"attack_seconds" yaml:"attack_seconds"`
	FadeSeconds     *float64  `json:"fade_seconds" toml:"fade_seconds" yaml:"fade_seconds"`
	VolumeReduction *float64  `json:"volume_reduction" toml:"volume_reduction" yaml:"volume_reduction"`
}

// WaveFile is a partial override of one waveform family.
type WaveFile struct {
	Weight    *float64 `json:"weight" toml:"weight" yaml:"weight"`
	Harmonics *int     `json:"harmonics" toml:"harmonics" yaml:"harmonics"`
	Decay     *float64 `json:"decay" toml:"decay" yaml:"decay"`
}

// Load reads a preset, choosing the decoder from the file extension
// (.toml, .yaml/.yml, anything else is JSON).
func Load(path string) (synth.Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	}
	return LoadJSON(path)
}

// Save writes cfg in the format implied by the file extension.
func Save(path string, cfg synth.Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return SaveTOML(path, cfg)
	case ".yaml", ".yml":
		return SaveYAML(path, cfg)
	}
	return SaveJSON(path, cfg)
}

// LoadJSON loads a preset JSON file and applies it on top of the defaults.
func LoadJSON(path string) (synth.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return synth.Config{}, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return synth.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := synth.NewDefaultConfig()
	if err := ApplyFile(&cfg, &f); err != nil {
		return synth.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveJSON writes cfg as a complete preset file.
func SaveJSON(path string, cfg synth.Config) error {
	b, err := json.MarshalIndent(FromConfig(cfg), "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// ApplyFile applies a parsed preset onto dst and validates the result.
func ApplyFile(dst *synth.Config, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination config")
	}
	if f == nil {
		return dst.Validate()
	}

	if f.SampleRate != nil {
		dst.SampleRate = *f.SampleRate
	}
	applyWave(&dst.Sine, f.Sine)
	applyWave(&dst.Saw, f.Saw)
	applyWave(&dst.Square, f.Square)
	if f.SmoothingRounds != nil {
		dst.SmoothingRounds = *f.SmoothingRounds
	}
	if f.AttackSeconds != nil {
		dst.AttackSeconds = *f.AttackSeconds
	}
	if f.FadeSeconds != nil {
		dst.FadeSeconds = *f.FadeSeconds
	}
	if f.VolumeReduction != nil {
		dst.VolumeReduction = *f.VolumeReduction
	}
	return dst.Validate()
}

func applyWave(dst *synth.WaveParams, w *WaveFile) {
	if w == nil {
		return
	}
	if w.Weight != nil {
		dst.Weight = *w.Weight
	}
	if w.Harmonics != nil {
		dst.Harmonics = *w.Harmonics
	}
	if w.Decay != nil {
		dst.Decay = *w.Decay
	}
}

// FromConfig returns a fully populated File for cfg.
func FromConfig(cfg synth.Config) *File {
	wave := func(p synth.WaveParams) *WaveFile {
		return &WaveFile{Weight: &p.Weight, Harmonics: &p.Harmonics, Decay: &p.Decay}
	}
	return &File{
		SampleRate:      &cfg.SampleRate,
		Sine:            wave(cfg.Sine),
		Saw:             wave(cfg.Saw),
		Square:          wave(cfg.Square),
		SmoothingRounds: &cfg.SmoothingRounds,
		AttackSeconds:   &cfg.AttackSeconds,
		FadeSeconds:     &cfg.FadeSeconds,
		VolumeReduction: &cfg.VolumeReduction,
	}
}
