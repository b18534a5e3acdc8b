package synth

import (
	"fmt"
	"io"
	"log"
	"runtime"

	"github.com/remeh/sizedwaitgroup"
)

// maxReportedErrors caps RenderStats.Errors; Skipped still counts all failures.
const maxReportedErrors = 16

// RenderStats summarizes one sequence render.
type RenderStats struct {
	Notes    int
	Rendered int
	Skipped  int
	Errors   []error
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithWorkers sets how many notes are synthesized concurrently. n <= 0
// selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *Compositor) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		c.workers = n
	}
}

// WithLogger sets the logger used to report skipped notes.
func WithLogger(l *log.Logger) Option {
	return func(c *Compositor) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithProgress registers a callback invoked after each note is processed
// (rendered or skipped). It runs on the goroutine that called Render.
func WithProgress(fn func(done, total int)) Option {
	return func(c *Compositor) {
		c.progress = fn
	}
}

// Compositor renders whole note sequences into one mono output buffer.
type Compositor struct {
	renderer *Renderer
	workers  int
	logger   *log.Logger
	progress func(done, total int)
}

// NewCompositor validates cfg. Configuration errors are returned here, so a
// render never starts with a bad global setup.
func NewCompositor(cfg Config, opts ...Option) (*Compositor, error) {
	r, err := NewRenderer(cfg)
	if err != nil {
		return nil, err
	}
	c := &Compositor{
		renderer: r,
		workers:  runtime.GOMAXPROCS(0),
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Renderer returns the per-note renderer.
func (c *Compositor) Renderer() *Renderer {
	return c.renderer
}

// RenderSequence renders seq into a buffer that ends with its last note.
func (c *Compositor) RenderSequence(seq Sequence) ([]float32, RenderStats, error) {
	return c.Render(seq, seq.EndSample())
}

type noteResult struct {
	samples []float32
	err     error
}

// Render allocates a zeroed buffer of length samples and adds every note of
// seq into it, in track order then note order. Notes that fail validation
// or do not fit the buffer are logged, counted and skipped. An empty
// sequence yields an all-zero buffer.
//
// Notes are synthesized in parallel in windows of a few notes per worker;
// each window is deposited in order by the calling goroutine, which is the
// only writer of the output buffer. The result does not depend on the
// worker count.
func (c *Compositor) Render(seq Sequence, length int) ([]float32, RenderStats, error) {
	sampleRate := c.renderer.cfg.SampleRate
	if seq.SampleRate != 0 && seq.SampleRate != sampleRate {
		return nil, RenderStats{}, fmt.Errorf("%w: sequence sample rate %d does not match config %d", ErrInvalidArgument, seq.SampleRate, sampleRate)
	}
	if length < 0 {
		return nil, RenderStats{}, fmt.Errorf("%w: output length must be >= 0, got %d", ErrInvalidArgument, length)
	}

	out := make([]float32, length)
	notes := seq.Notes()
	stats := RenderStats{Notes: len(notes)}
	if len(notes) == 0 {
		return out, stats, nil
	}

	window := c.workers * 4
	if c.workers <= 1 {
		window = 1
	}
	results := make([]noteResult, window)
	done := 0
	for base := 0; base < len(notes); base += window {
		end := base + window
		if end > len(notes) {
			end = len(notes)
		}
		batch := notes[base:end]
		c.renderBatch(batch, results, length)

		for i, ev := range batch {
			res := results[i]
			results[i] = noteResult{}
			err := res.err
			if err == nil {
				err = Deposit(out, ev.StartSample, res.samples)
			}
			if err != nil {
				stats.Skipped++
				if len(stats.Errors) < maxReportedErrors {
					stats.Errors = append(stats.Errors, fmt.Errorf("note %d: %w", base+i, err))
				}
				c.logger.Printf("skipping note %d (pitch=%.2fHz start=%d dur=%d): %v", base+i, ev.Pitch, ev.StartSample, ev.DurationSamples, err)
			} else {
				stats.Rendered++
			}
			done++
			if c.progress != nil {
				c.progress(done, len(notes))
			}
		}
	}
	return out, stats, nil
}

func (c *Compositor) renderBatch(batch []NoteEvent, results []noteResult, length int) {
	if len(batch) == 1 {
		results[0] = c.renderOne(batch[0], length)
		return
	}
	wg := sizedwaitgroup.New(c.workers)
	for i := range batch {
		wg.Add()
		go func(i int) {
			defer wg.Done()
			results[i] = c.renderOne(batch[i], length)
		}(i)
	}
	wg.Wait()
}

func (c *Compositor) renderOne(ev NoteEvent, length int) noteResult {
	if err := ev.Validate(); err != nil {
		return noteResult{err: err}
	}
	if ev.EndSample() > length {
		return noteResult{err: fmt.Errorf("%w: note ends at sample %d but output has %d", ErrOutOfBounds, ev.EndSample(), length)}
	}
	samples, err := c.renderer.RenderNote(ev)
	return noteResult{samples: samples, err: err}
}

// Deposit adds samples into out starting at start. If the range does not
// fit, out is left untouched and ErrOutOfBounds is returned.
func Deposit(out []float32, start int, samples []float32) error {
	if start < 0 || start > len(out) || len(samples) > len(out)-start {
		return fmt.Errorf("%w: deposit [%d,%d) exceeds output length %d", ErrOutOfBounds, start, start+len(samples), len(out))
	}
	dst := out[start : start+len(samples)]
	for i, s := range samples {
		dst[i] += s
	}
	return nil
}
