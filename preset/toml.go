package preset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cwbudde/algo-additive/synth"
)

// LoadTOML loads a TOML preset and applies it on top of the defaults.
func LoadTOML(path string) (synth.Config, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return synth.Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return synth.Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	cfg := synth.NewDefaultConfig()
	if err := ApplyFile(&cfg, &f); err != nil {
		return synth.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveTOML writes cfg as TOML. The file is written to a temporary sibling
// and renamed into place, so an interrupted write keeps the old preset.
func SaveTOML(path string, cfg synth.Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".preset-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(FromConfig(cfg)); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}
