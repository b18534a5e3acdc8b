package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

// PeakToPeak returns max(x) - min(x).
func PeakToPeak(x []float32) float64 {
	if len(x) == 0 {
		return 0
	}
	lo, hi := float64(x[0]), float64(x[0])
	for _, v := range x[1:] {
		f := float64(v)
		if f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}
	return hi - lo
}

// RMS returns the root mean square of x.
func RMS(x []float32) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		f := float64(v)
		sum += f * f
	}
	return math.Sqrt(sum / float64(len(x)))
}

// Peak returns the largest absolute sample.
func Peak(x []float32) float64 {
	var p float64
	for _, v := range x {
		if a := math.Abs(float64(v)); a > p {
			p = a
		}
	}
	return p
}

// Spectrum returns the Hann-windowed magnitude spectrum of x averaged over
// frames of fftSize with 50% overlap. fftSize must be a power of two; the
// result has fftSize/2+1 bins spaced sampleRate/fftSize apart.
func Spectrum(x []float64, fftSize int) ([]float64, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("fft size must be a power of two, got %d", fftSize)
	}
	plan, err := algofft.NewPlanReal64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("fft plan: %w", err)
	}

	window := make([]float64, fftSize)
	for i := range window {
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(fftSize-1))
	}
	frame := make([]float64, fftSize)
	spec := make([]complex128, fftSize/2+1)
	out := make([]float64, fftSize/2+1)

	hop := fftSize / 2
	frames := 0
	for pos := 0; pos == 0 || pos+fftSize <= len(x); pos += hop {
		for i := range frame {
			frame[i] = 0
			if pos+i < len(x) {
				frame[i] = x[pos+i] * window[i]
			}
		}
		plan.Forward(spec, frame)
		for k := range out {
			out[k] += cmplx.Abs(spec[k])
		}
		frames++
		if pos+fftSize >= len(x) {
			break
		}
	}
	inv := 1.0 / float64(frames)
	for k := range out {
		out[k] *= inv
	}
	return out, nil
}

// BandEnergy returns the fraction of spectral energy of x that lies in
// [loHz, hiHz).
func BandEnergy(x []float32, sampleRate int, loHz, hiHz float64) (float64, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("sample rate must be > 0")
	}
	fftSize := 1024
	for fftSize < 8192 && fftSize*2 <= len(x) {
		fftSize *= 2
	}
	mag, err := Spectrum(toFloat64(x), fftSize)
	if err != nil {
		return 0, err
	}
	binHz := float64(sampleRate) / float64(fftSize)
	var band, total float64
	for k, m := range mag {
		e := m * m
		total += e
		f := float64(k) * binHz
		if f >= loHz && f < hiHz {
			band += e
		}
	}
	if total == 0 {
		return 0, nil
	}
	return band / total, nil
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
