package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	fitcommon "github.com/cwbudde/algo-additive/internal/fitcommon"
	"github.com/cwbudde/algo-additive/preset"
	"github.com/cwbudde/algo-additive/sequence"
	"github.com/cwbudde/algo-additive/synth"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

const (
	defaultGain  = 0.5
	minToneHz    = 1.0
	maxToneHz    = 20000.0
	maxBatchJobs = 4
)

type renderOptions struct {
	cfg        synth.Config
	workers    int
	gain       float64
	outputRate int
	verbose    bool
}

type renderJob struct {
	input  string
	output string
}

func loadConfig(path string, sampleRate int) (synth.Config, error) {
	cfg := synth.NewDefaultConfig()
	if path != "" {
		var err error
		if cfg, err = preset.Load(path); err != nil {
			return synth.Config{}, err
		}
	}
	if sampleRate > 0 {
		cfg.SampleRate = sampleRate
	}
	if err := cfg.Validate(); err != nil {
		return synth.Config{}, err
	}
	return cfg, nil
}

// planJobs maps inputs to output files. A single input writes to output;
// several inputs write <outputDir>/<name>.wav each.
func planJobs(inputs []string, output string, outputDir string) []renderJob {
	if len(inputs) == 1 {
		return []renderJob{{input: inputs[0], output: output}}
	}
	jobs := make([]renderJob, len(inputs))
	for i, in := range inputs {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		jobs[i] = renderJob{input: in, output: filepath.Join(outputDir, base+".wav")}
	}
	return jobs
}

// renderAll renders every job concurrently and stops at the first failure.
func renderAll(opts renderOptions, jobs []renderJob) error {
	var g errgroup.Group
	g.SetLimit(maxBatchJobs)
	var mu sync.Mutex
	for _, job := range jobs {
		g.Go(func() error {
			stats, frames, err := renderFile(opts, job)
			if err != nil {
				return fmt.Errorf("%s: %w", job.input, err)
			}
			mu.Lock()
			fmt.Printf("Successfully wrote %s (%d frames, %s, %d/%d notes rendered, %d skipped)\n",
				job.output, frames, fileSize(job.output), stats.Rendered, stats.Notes, stats.Skipped)
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

func renderFile(opts renderOptions, job renderJob) (synth.RenderStats, int, error) {
	seq, err := sequence.Load(job.input, opts.cfg.SampleRate)
	if err != nil {
		return synth.RenderStats{}, 0, err
	}

	compOpts := []synth.Option{synth.WithWorkers(resolveWorkers(opts.workers))}
	if opts.verbose {
		prefix := filepath.Base(job.input) + ": "
		compOpts = append(compOpts,
			synth.WithLogger(log.New(os.Stderr, prefix, 0)),
			synth.WithProgress(progressPrinter(prefix)),
		)
	}
	comp, err := synth.NewCompositor(opts.cfg, compOpts...)
	if err != nil {
		return synth.RenderStats{}, 0, err
	}

	out, stats, err := comp.RenderSequence(seq)
	if err != nil {
		return stats, 0, err
	}
	frames, err := writeOutput(opts, job.output, out)
	return stats, frames, err
}

func renderTone(opts renderOptions, freq float64, duration float64, output string) (int, error) {
	if freq < minToneHz || freq > maxToneHz {
		return 0, fmt.Errorf("%w: tone frequency %.2f outside [%.0f, %.0f] Hz",
			synth.ErrInvalidArgument, freq, minToneHz, maxToneHz)
	}
	if duration <= 0 {
		duration = synth.DemoToneSeconds
	}
	out, err := synth.RenderTone(opts.cfg, freq, duration)
	if err != nil {
		return 0, err
	}
	return writeOutput(opts, output, out)
}

func writeOutput(opts renderOptions, path string, out []float32) (int, error) {
	rate := opts.cfg.SampleRate
	if opts.outputRate > 0 && opts.outputRate != rate {
		var err error
		if out, err = fitcommon.ResampleFloat32(out, rate, opts.outputRate); err != nil {
			return 0, err
		}
		rate = opts.outputRate
	}
	fitcommon.ApplyGain(out, opts.gain)
	if err := fitcommon.WriteMonoWAV(path, out, rate); err != nil {
		return 0, err
	}
	return len(out), nil
}

// fileSize formats the size of path for progress output.
func fileSize(path string) string {
	fi, err := os.Stat(path)
	if err != nil {
		return "?"
	}
	return humanize.Bytes(uint64(fi.Size()))
}

func resolveWorkers(n int) int {
	if n == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// progressPrinter reports every 10% of processed notes.
func progressPrinter(prefix string) func(done, total int) {
	last := -1
	return func(done, total int) {
		if total == 0 {
			return
		}
		step := done * 10 / total
		if step == last {
			return
		}
		last = step
		fmt.Printf("%sProgress %d/%d notes (%d%%)\n", prefix, done, total, done*100/total)
	}
}
