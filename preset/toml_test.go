package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-additive/synth"
)

func TestLoadTOMLAppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.toml")
	content := `sample_rate = 22050
fade_seconds = 0.1

[square]
weight = 40.0
harmonics = 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SampleRate != 22050 || cfg.FadeSeconds != 0.1 {
		t.Fatalf("global fields mismatch: %+v", cfg)
	}
	if cfg.Square.Weight != 40 || cfg.Square.Harmonics != 7 || cfg.Square.Decay != synth.NewDefaultConfig().Square.Decay {
		t.Fatalf("square mismatch: %+v", cfg.Square)
	}
}

func TestLoadTOMLRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.toml")
	if err := os.WriteFile(path, []byte("sample_rat = 44100\n"), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	if _, err := LoadTOML(path); err == nil {
		t.Fatalf("expected error for misspelled key")
	}
}

func TestSaveTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "preset.toml")
	cfg := synth.NewDefaultConfig()
	cfg.Sine.Decay = 0.55
	cfg.AttackSeconds = 0.003
	if err := SaveTOML(path, cfg); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}
	got, err := LoadTOML(path)
	if err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip mismatch:\n got=%+v\nwant=%+v", got, cfg)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the preset file, found %d entries", len(entries))
	}
}
