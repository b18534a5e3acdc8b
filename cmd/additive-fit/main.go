package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	fitcommon "github.com/cwbudde/algo-additive/internal/fitcommon"
	"github.com/cwbudde/algo-additive/preset"
	"github.com/cwbudde/algo-additive/synth"
	"github.com/hako/durafmt"
)

func main() {
	referencePath := flag.String("reference", "reference/a4.wav", "Reference single-tone WAV path")
	presetPath := flag.String("preset", "", "Base preset JSON, TOML or YAML path (empty uses built-in defaults)")
	outputPreset := flag.String("output-preset", "presets/fitted.json", "Path to write the fitted preset (.json, .toml or .yaml)")
	outputWAV := flag.String("output-wav", "", "Optional path to write the best rendered tone")
	reportPath := flag.String("report", "", "Optional report JSON path (default: <output-preset>.report.json)")
	optimize := flag.String("optimize", "mix,decay", "Comma-separated knob groups to optimize: mix, decay, harmonics, shape")
	frequency := flag.Float64("frequency", 0, "Reference fundamental in Hz (0 derives it from -note)")
	note := flag.Int("note", 69, "MIDI note of the reference tone when -frequency is 0")
	sampleRate := flag.Int("sample-rate", 0, "Render/analysis sample rate (0 uses the preset)")
	maxDuration := flag.Float64("max-duration", 2.0, "Maximum seconds of the reference to compare")
	seed := flag.Int64("seed", 1, "Random seed")
	timeBudget := flag.Float64("time-budget", 60.0, "Optimization time budget in seconds")
	maxEvals := flag.Int("max-evals", 2000, "Maximum objective evaluations")
	reportEvery := flag.Int("report-every", 20, "Print progress every N evaluations")
	topK := flag.Int("top-k", 5, "How many top candidates to keep in report")
	resume := flag.Bool("resume", true, "Resume from previous best_knobs report when available")
	workers := flag.String("workers", "1", "Parallel optimization workers running independent Mayfly rounds (number or 'auto')")

	mayflyVariant := flag.String("mayfly-variant", "desma", "Mayfly variant: ma|desma|olce|eobbma|gsasma|mpma|aoblmoa")
	mayflyPop := flag.Int("mayfly-pop", 10, "Male and female population size per Mayfly run")
	mayflyRoundEvals := flag.Int("mayfly-round-evals", 240, "Target eval budget per Mayfly round")
	flag.Parse()

	groups, err := parseOptimizeGroups(*optimize)
	if err != nil {
		die("invalid --optimize: %v", err)
	}
	if *outputPreset == "" {
		die("output-preset must not be empty")
	}
	if *maxEvals < 1 {
		die("max-evals must be >= 1")
	}
	if *timeBudget <= 0 {
		die("time-budget must be > 0")
	}
	if *reportEvery < 1 {
		*reportEvery = 1
	}
	if *mayflyPop < 2 {
		*mayflyPop = 2
	}
	if *mayflyRoundEvals < *mayflyPop*2 {
		*mayflyRoundEvals = *mayflyPop * 2
	}
	if *topK < 1 {
		*topK = 1
	}
	parsedWorkers, err := fitcommon.ParseWorkers(*workers)
	if err != nil {
		die("invalid workers value: %v", err)
	}

	base := synth.NewDefaultConfig()
	if *presetPath != "" {
		if base, err = preset.Load(*presetPath); err != nil {
			die("failed to load preset: %v", err)
		}
	}
	if *sampleRate > 0 {
		base.SampleRate = *sampleRate
	}

	freq := *frequency
	if freq <= 0 {
		freq = synth.MIDINoteToFreq(*note)
	}

	reference, duration, err := loadReference(*referencePath, base.SampleRate, *maxDuration)
	if err != nil {
		die("failed to load reference: %v", err)
	}

	defs := knobDefs(groups)
	startCand := initCandidate(base, defs)
	if *resume {
		resumePath := *reportPath
		if resumePath == "" {
			resumePath = *outputPreset + ".report.json"
		}
		cand, ok, err := loadCandidateFromReport(resumePath, defs, startCand)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ignoring resume report %s: %v\n", resumePath, err)
		} else if ok {
			fmt.Printf("Resuming from %s\n", resumePath)
			startCand = cand
		}
	}

	fmt.Printf("Fitting %d knobs (%s) to %s at %.2f Hz, %.2fs, %d Hz\n",
		len(defs), *optimize, *referencePath, freq, duration, base.SampleRate)

	result, err := runOptimization(&optimizationConfig{
		reference:        reference,
		baseConfig:       base,
		defs:             defs,
		initCandidate:    startCand,
		frequency:        freq,
		duration:         duration,
		seed:             *seed,
		timeBudget:       *timeBudget,
		maxEvals:         *maxEvals,
		reportEvery:      *reportEvery,
		mayflyVariant:    *mayflyVariant,
		mayflyPop:        *mayflyPop,
		mayflyRoundEvals: *mayflyRoundEvals,
		workers:          parsedWorkers,
		topK:             *topK,
	})
	if err != nil {
		die("optimization failed: %v", err)
	}

	variant := strings.ToLower(*mayflyVariant)
	rep := runReport{
		ReferencePath:  *referencePath,
		PresetPath:     *presetPath,
		OutputPreset:   *outputPreset,
		SampleRate:     base.SampleRate,
		FrequencyHz:    freq,
		DurationSec:    result.elapsed,
		Evaluations:    result.evals,
		MayflyVariant:  variant,
		BestScore:      result.bestMetrics.Score,
		BestSimilarity: result.bestMetrics.Similarity,
		BestMetrics:    result.bestMetrics,
		BestKnobs:      knobMap(defs, result.best),
		TopCandidates:  result.top,
	}
	if err := writeOutputs(*outputPreset, *outputWAV, *reportPath, rep, result.bestConfig, freq, duration); err != nil {
		die("failed to write outputs: %v", err)
	}

	elapsed := durafmt.Parse(time.Duration(result.elapsed * float64(time.Second))).LimitFirstN(2)
	fmt.Printf("Done evals=%d elapsed=%s best_score=%.4f best_similarity=%.2f%% variant=%s\n",
		result.evals, elapsed, result.bestMetrics.Score, result.bestMetrics.Similarity*100.0, variant)
}

// loadReference reads the reference WAV at sampleRate and trims it to
// maxDuration seconds. It returns the samples and their duration.
func loadReference(path string, sampleRate int, maxDuration float64) ([]float64, float64, error) {
	ref, rate, err := fitcommon.ReadWAVMono(path)
	if err != nil {
		return nil, 0, err
	}
	if ref, err = fitcommon.ResampleIfNeeded(ref, rate, sampleRate); err != nil {
		return nil, 0, err
	}
	if maxDuration > 0 {
		if n := synth.SecondsToSamples(maxDuration, sampleRate); n < len(ref) {
			ref = ref[:n]
		}
	}
	if len(ref) == 0 {
		return nil, 0, fmt.Errorf("%w: reference %s has no samples", synth.ErrResourceUnavailable, path)
	}
	return ref, float64(len(ref)) / float64(sampleRate), nil
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
