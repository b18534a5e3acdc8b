package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-additive/analysis"
	fitcommon "github.com/cwbudde/algo-additive/internal/fitcommon"
	"github.com/cwbudde/algo-additive/preset"
	"github.com/cwbudde/algo-additive/synth"
)

func main() {
	referencePath := flag.String("reference", "reference/a4.wav", "Reference WAV path")
	candidatePath := flag.String("candidate", "", "Candidate WAV path; if empty, render a tone from the preset")
	presetPath := flag.String("preset", "", "Preset JSON, TOML or YAML path for the rendered candidate (empty uses defaults)")
	frequency := flag.Float64("frequency", 0, "Rendered candidate frequency in Hz (0 derives it from -note)")
	note := flag.Int("note", 69, "MIDI note of the rendered candidate when -frequency is 0")
	duration := flag.Float64("duration", 0, "Rendered candidate duration in seconds (0 matches the reference)")
	sampleRate := flag.Int("sample-rate", 44100, "Analysis sample rate in Hz")
	writeCandidate := flag.String("write-candidate", "", "Optional path to write rendered candidate WAV")
	jsonOut := flag.Bool("json", false, "Print metrics as JSON")
	flag.Parse()

	ref, err := loadAt(*referencePath, *sampleRate)
	if err != nil {
		die("failed to read reference: %v", err)
	}

	var cand []float64
	if *candidatePath != "" {
		if cand, err = loadAt(*candidatePath, *sampleRate); err != nil {
			die("failed to read candidate: %v", err)
		}
	} else {
		dur := *duration
		if dur <= 0 {
			dur = float64(len(ref)) / float64(*sampleRate)
		}
		freq := *frequency
		if freq <= 0 {
			freq = synth.MIDINoteToFreq(*note)
		}
		tone, err := renderCandidate(*presetPath, *sampleRate, freq, dur)
		if err != nil {
			die("failed to render candidate: %v", err)
		}
		if *writeCandidate != "" {
			if err := fitcommon.WriteMonoWAV(*writeCandidate, tone, *sampleRate); err != nil {
				die("failed to write candidate wav: %v", err)
			}
		}
		cand = fitcommon.ToFloat64(tone)
	}

	metrics := analysis.Compare(ref, cand, *sampleRate)
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(metrics); err != nil {
			die("json encode failed: %v", err)
		}
		return
	}

	fmt.Printf("Reference frames: %d\n", metrics.ReferenceFrames)
	fmt.Printf("Candidate frames: %d\n", metrics.CandidateFrames)
	fmt.Printf("Aligned frames:   %d\n", metrics.AlignedFrames)
	fmt.Printf("Lag:              %d samples (%.3f ms)\n", metrics.LagSamples, 1000.0*float64(metrics.LagSamples)/float64(metrics.SampleRate))
	fmt.Println()
	fmt.Printf("Component        Raw          Norm   Weight  Contribution\n")
	printComp := func(name string, raw string, norm, weight float64, dominant bool) {
		marker := ""
		if dominant {
			marker = " <"
		}
		fmt.Printf("%-16s %-12s %5.1f%%  x%.2f   = %.4f%s\n", name, raw, norm*100, weight, norm*weight, marker)
	}
	printComp("Time RMSE", fmt.Sprintf("%.6f", metrics.TimeRMSE), metrics.TimeNorm, analysis.WeightTime, metrics.Dominant == "time")
	printComp("Envelope RMSE", fmt.Sprintf("%.1f dB", metrics.EnvelopeRMSEDB), metrics.EnvelopeNorm, analysis.WeightEnvelope, metrics.Dominant == "envelope")
	printComp("Spectral RMSE", fmt.Sprintf("%.1f dB", metrics.SpectralRMSEDB), metrics.SpectralNorm, analysis.WeightSpectral, metrics.Dominant == "spectral")
	fmt.Printf("Score:            %.4f  (0 best, 1 worst)\n", metrics.Score)
	fmt.Printf("Similarity:       %.2f%%\n", metrics.Similarity*100.0)
	fmt.Printf("Dominant factor:  %s\n", metrics.Dominant)
}

func loadAt(path string, sampleRate int) ([]float64, error) {
	x, rate, err := fitcommon.ReadWAVMono(path)
	if err != nil {
		return nil, err
	}
	return fitcommon.ResampleIfNeeded(x, rate, sampleRate)
}

func renderCandidate(presetPath string, sampleRate int, freq, duration float64) ([]float32, error) {
	cfg := synth.NewDefaultConfig()
	if presetPath != "" {
		var err error
		if cfg, err = preset.Load(presetPath); err != nil {
			return nil, err
		}
	}
	cfg.SampleRate = sampleRate
	return synth.RenderTone(cfg, freq, duration)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
