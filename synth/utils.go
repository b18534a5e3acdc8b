package synth

import (
	"math"

	"github.com/cwbudde/algo-approx"
)

// MIDINoteToFreq converts a MIDI note number to frequency in Hz (12-TET, A4 = 440 Hz).
func MIDINoteToFreq(note int) float64 {
	const a4Freq = 440.0
	const a4Note = 69
	exponent := float32(note-a4Note) / 12.0
	return a4Freq * float64(pow2Approx(exponent))
}

func pow2Approx(x float32) float32 {
	const ln2 = 0.69314718055994530942
	return approx.FastExp(x * ln2)
}

// VelocityToGain maps a MIDI velocity (0-127) to a linear gain in [0,1].
func VelocityToGain(velocity int) float64 {
	if velocity <= 0 {
		return 0
	}
	if velocity >= 127 {
		return 1
	}
	return float64(velocity) / 127.0
}

// SecondsToSamples converts an absolute time to a sample index (rounded).
func SecondsToSamples(seconds float64, sampleRate int) int {
	if seconds <= 0 || sampleRate <= 0 {
		return 0
	}
	return int(math.Round(seconds * float64(sampleRate)))
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
