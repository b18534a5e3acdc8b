package analysis

import (
	"math"
)

// Metrics contains distance and similarity measurements between two tones.
type Metrics struct {
	SampleRate int `json:"sample_rate"`

	ReferenceFrames int `json:"reference_frames"`
	CandidateFrames int `json:"candidate_frames"`
	AlignedFrames   int `json:"aligned_frames"`
	LagSamples      int `json:"lag_samples"`

	TimeRMSE       float64 `json:"time_rmse"`
	EnvelopeRMSEDB float64 `json:"envelope_rmse_db"`
	SpectralRMSEDB float64 `json:"spectral_rmse_db"`

	TimeNorm     float64 `json:"time_norm"`
	EnvelopeNorm float64 `json:"envelope_norm"`
	SpectralNorm float64 `json:"spectral_norm"`
	Dominant     string  `json:"dominant,omitempty"`

	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
}

// Score weights of the normalized components.
const (
	WeightTime     = 0.25
	WeightEnvelope = 0.25
	WeightSpectral = 0.5
)

const spectrumSize = 4096

// Compare returns objective distance metrics and a combined score in [0,1]
// (0 = identical). Both signals are trimmed of leading silence, RMS
// normalized and aligned by cross-correlation before comparison.
func Compare(reference []float64, candidate []float64, sampleRate int) Metrics {
	m := Metrics{
		SampleRate:      sampleRate,
		ReferenceFrames: len(reference),
		CandidateFrames: len(candidate),
		Score:           1,
	}
	if sampleRate <= 0 || len(reference) == 0 || len(candidate) == 0 {
		return m
	}

	ref := normalizeRMS(trimLeadingSilence(reference, 1e-6), 0.1)
	cand := normalizeRMS(trimLeadingSilence(candidate, 1e-6), 0.1)
	if len(ref) < 2 || len(cand) < 2 {
		return m
	}

	maxLag := sampleRate / 50
	if maxLag > len(ref)-1 {
		maxLag = len(ref) - 1
	}
	if maxLag > len(cand)-1 {
		maxLag = len(cand) - 1
	}
	m.LagSamples = estimateLag(ref, cand, maxLag)

	refA, candA := alignByLag(ref, cand, m.LagSamples)
	n := len(refA)
	if len(candA) < n {
		n = len(candA)
	}
	if n < 256 {
		return m
	}
	refA, candA = refA[:n], candA[:n]
	m.AlignedFrames = n

	m.TimeRMSE = rmse(refA, candA)

	refEnv := rmsEnvelope(refA, 256, 128)
	candEnv := rmsEnvelope(candA, 256, 128)
	if len(refEnv) > 0 {
		diff := make([]float64, len(refEnv))
		for i := range refEnv {
			diff[i] = linToDB(refEnv[i]) - linToDB(candEnv[i])
		}
		m.EnvelopeRMSEDB = rms1(diff)
	}

	m.SpectralRMSEDB = spectralRMSEDB(refA, candA)

	m.TimeNorm = clamp01(m.TimeRMSE / 0.25)
	m.EnvelopeNorm = clamp01(m.EnvelopeRMSEDB / 30.0)
	m.SpectralNorm = clamp01(m.SpectralRMSEDB / 30.0)
	m.Score = clamp01(WeightTime*m.TimeNorm + WeightEnvelope*m.EnvelopeNorm + WeightSpectral*m.SpectralNorm)
	m.Dominant = dominant(m)
	m.Similarity = clamp01(math.Exp(-4.0 * m.Score))
	return m
}

// dominant names the component with the largest weighted contribution.
func dominant(m Metrics) string {
	name, best := "time", WeightTime*m.TimeNorm
	if c := WeightEnvelope * m.EnvelopeNorm; c > best {
		name, best = "envelope", c
	}
	if c := WeightSpectral * m.SpectralNorm; c > best {
		name = "spectral"
	}
	return name
}

func trimLeadingSilence(x []float64, threshold float64) []float64 {
	for i := 0; i < len(x); i++ {
		if math.Abs(x[i]) > threshold {
			return x[i:]
		}
	}
	return nil
}

func normalizeRMS(x []float64, target float64) []float64 {
	if len(x) == 0 {
		return x
	}
	r := rms1(x)
	out := make([]float64, len(x))
	if r <= 1e-12 {
		copy(out, x)
		return out
	}
	g := target / r
	for i := range x {
		out[i] = x[i] * g
	}
	return out
}

// estimateLag returns the shift in [-maxLag, maxLag] that maximizes the
// correlation of ref[lag:] with cand (negative: cand is delayed).
func estimateLag(ref []float64, cand []float64, maxLag int) int {
	if len(ref) == 0 || len(cand) == 0 || maxLag <= 0 {
		return 0
	}
	bestLag := 0
	best := math.Inf(-1)
	for lag := -maxLag; lag <= maxLag; lag++ {
		s := dotAtLag(ref, cand, lag)
		if s > best {
			best = s
			bestLag = lag
		}
	}
	return bestLag
}

func dotAtLag(a []float64, b []float64, lag int) float64 {
	ai, bi := 0, 0
	if lag >= 0 {
		ai = lag
	} else {
		bi = -lag
	}
	n := len(a) - ai
	if len(b)-bi < n {
		n = len(b) - bi
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[ai+i] * b[bi+i]
	}
	return sum
}

func alignByLag(ref []float64, cand []float64, lag int) ([]float64, []float64) {
	if lag >= 0 {
		if lag >= len(ref) {
			return nil, nil
		}
		return ref[lag:], cand
	}
	o := -lag
	if o >= len(cand) {
		return nil, nil
	}
	return ref, cand[o:]
}

func rmse(a []float64, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}

func rms1(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func rmsEnvelope(x []float64, frame int, hop int) []float64 {
	if frame <= 0 || hop <= 0 || len(x) < frame {
		return nil
	}
	n := 1 + (len(x)-frame)/hop
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		start := i * hop
		out[i] = rms1(x[start : start+frame])
	}
	return out
}

// spectralRMSEDB compares averaged log spectra bin by bin, ignoring DC.
func spectralRMSEDB(a []float64, b []float64) float64 {
	size := spectrumSize
	for size > 256 && size > len(a) {
		size /= 2
	}
	sa, err := Spectrum(a, size)
	if err != nil {
		return 0
	}
	sb, err := Spectrum(b, size)
	if err != nil {
		return 0
	}
	var sum float64
	for k := 1; k < len(sa); k++ {
		d := linToDB(sa[k]) - linToDB(sb[k])
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(sa)-1))
}

func linToDB(x float64) float64 {
	if x < 1e-9 {
		x = 1e-9
	}
	return 20.0 * math.Log10(x)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
