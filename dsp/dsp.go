package dsp

import (
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
)

// Smooth applies rounds passes of a centered 3-tap moving average in place:
//
//	y[n] = (x[n-1] + x[n] + x[n+1]) / 3
//
// Samples outside the buffer count as zero, so the result matches a
// same-length convolution with a [1/3 1/3 1/3] kernel. rounds <= 0 is a no-op.
func Smooth(buf []float32, rounds int) {
	if len(buf) == 0 {
		return
	}
	const third = 1.0 / 3.0
	for r := 0; r < rounds; r++ {
		var prev float32
		last := len(buf) - 1
		for n := 0; n <= last; n++ {
			cur := buf[n]
			var next float32
			if n < last {
				next = buf[n+1]
			}
			buf[n] = flush((prev + cur + next) * third)
			prev = cur
		}
	}
}

// maxRampSamples caps ramp lengths; ApplyEnvelope then clamps to the buffer.
const maxRampSamples = math.MaxInt32

// EnvelopeSamples converts a ramp length in seconds to a sample count
// (rounded, saturating at maxRampSamples).
func EnvelopeSamples(seconds float64, sampleRate int) int {
	if !(seconds > 0) || sampleRate <= 0 {
		return 0
	}
	v := math.Round(seconds * float64(sampleRate))
	if v >= maxRampSamples {
		return maxRampSamples
	}
	return int(v)
}

// ApplyEnvelope shapes buf in place with a linear attack over the first
// attack samples (gain x/attack) and a linear fade over the last fade samples
// (gain 1 - x/fade). Both lengths are clamped to len(buf)-1. Where the two
// regions overlap the gains multiply. A zero length skips that ramp.
func ApplyEnvelope(buf []float32, attack, fade int) {
	n := len(buf)
	if n == 0 {
		return
	}
	attack = clampRamp(attack, n)
	fade = clampRamp(fade, n)

	if attack > 0 {
		inv := 1.0 / float64(attack)
		for x := 0; x < attack; x++ {
			buf[x] = flush(buf[x] * float32(float64(x)*inv))
		}
	}
	if fade > 0 {
		inv := 1.0 / float64(fade)
		start := n - fade
		for x := 0; x < fade; x++ {
			buf[start+x] = flush(buf[start+x] * float32(1.0-float64(x)*inv))
		}
	}
}

// Scale multiplies buf in place by gain.
func Scale(buf []float32, gain float32) {
	if gain == 1 {
		return
	}
	for i := range buf {
		buf[i] *= gain
	}
}

func clampRamp(length, n int) int {
	if length < 0 {
		return 0
	}
	if length > n-1 {
		return n - 1
	}
	return length
}

func flush(x float32) float32 {
	return float32(dspcore.FlushDenormals(float64(x)))
}
