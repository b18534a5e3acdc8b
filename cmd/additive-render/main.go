package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	fitcommon "github.com/cwbudde/algo-additive/internal/fitcommon"
)

func main() {
	presetPath := flag.String("preset", "", "Preset JSON, TOML or YAML file path (empty uses built-in defaults)")
	inputs := flag.String("input", "", "Comma-separated MIDI (.mid) or note list (.json) files to render")
	tone := flag.Float64("tone", 0, "Render a single demo tone at this frequency in Hz instead of -input")
	duration := flag.Float64("duration", 0, "Demo tone duration in seconds (0 uses 1s)")
	sampleRate := flag.Int("sample-rate", 0, "Render sample rate in Hz (0 uses the preset)")
	outputRate := flag.Int("output-rate", 0, "Resample output to this rate before writing (0 keeps render rate)")
	gain := flag.Float64("gain", defaultGain, "Output gain applied before 16-bit conversion")
	workers := flag.String("workers", "auto", "Parallel note render workers (number or 'auto')")
	output := flag.String("output", "output.wav", "Output WAV file path (single input or tone)")
	outputDir := flag.String("output-dir", "out", "Output directory when several inputs are given")
	quiet := flag.Bool("quiet", false, "Suppress progress output")
	flag.Parse()

	parsedWorkers, err := fitcommon.ParseWorkers(*workers)
	if err != nil {
		die("invalid workers value: %v", err)
	}

	cfg, err := loadConfig(*presetPath, *sampleRate)
	if err != nil {
		die("failed to load preset: %v", err)
	}

	opts := renderOptions{
		cfg:        cfg,
		workers:    parsedWorkers,
		gain:       *gain,
		outputRate: *outputRate,
		verbose:    !*quiet,
	}

	if *tone != 0 {
		fmt.Printf("Rendering %.2f Hz demo tone at %d Hz...\n", *tone, cfg.SampleRate)
		frames, err := renderTone(opts, *tone, *duration, *output)
		if err != nil {
			die("tone render failed: %v", err)
		}
		fmt.Printf("Successfully wrote %s (%d frames, %s)\n", *output, frames, fileSize(*output))
		return
	}

	paths := splitInputs(*inputs)
	if len(paths) == 0 {
		die("either -input or -tone is required")
	}
	jobs := planJobs(paths, *output, *outputDir)
	if err := renderAll(opts, jobs); err != nil {
		die("%v", err)
	}
}

func splitInputs(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
