package preset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-additive/synth"
	"gopkg.in/yaml.v3"
)

// LoadYAML loads a YAML preset and applies it on top of the defaults.
// Unknown keys are rejected.
func LoadYAML(path string) (synth.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return synth.Config{}, err
	}
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return synth.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := synth.NewDefaultConfig()
	if err := ApplyFile(&cfg, &f); err != nil {
		return synth.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func SaveYAML(path string, cfg synth.Config) error {
	b, err := yaml.Marshal(FromConfig(cfg))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
