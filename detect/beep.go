// Package detect implements the per-stream audio cue detectors: the
// spectral beep detector and the VAD-backed silence detector.
package detect

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

const (
	minChunkSamples = 1024

	beepBandLow  = 900.0
	beepBandHigh = 1100.0

	beepRatioFloor = 0.08
	beepAmpFloor   = 0.1

	maxRecentRatios = 5
	beepMinCount    = 2
	beepMaxSpan     = 0.3
)

// BeepDetector classifies chunks as beep/no-beep from the fraction of
// spectral magnitude in the 900-1100Hz band, debounced over time.
// Single-frame energy is noisy: a chunk qualifies only when both the
// band ratio and the peak amplitude clear their floors, and detection
// confirms only when enough qualifying chunks land inside a short span.
// Time is passed in explicitly as seconds from stream start.
type BeepDetector struct {
	recentRatios []float64
	candidates   []float64

	lastDetection float64
	confidence    float64

	fft  *fourier.FFT
	fftN int
}

func NewBeepDetector() *BeepDetector {
	return &BeepDetector{}
}

// ProcessChunk reports whether this chunk confirms a beep. Chunks
// shorter than 1024 samples return false without touching state.
func (d *BeepDetector) ProcessChunk(samples []float64, rate int, now float64) bool {
	n := len(samples)
	if n < minChunkSamples || rate <= 0 {
		return false
	}

	var peak float64
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}

	windowed := make([]float64, n)
	copy(windowed, samples)
	window.Hann(windowed)

	if d.fft == nil || d.fftN != n {
		d.fft = fourier.NewFFT(n)
		d.fftN = n
	}
	coeff := d.fft.Coefficients(nil, windowed)

	// The half spectrum is folded back into a full-spectrum total; the
	// band sum stays positive-side only, matching the ratio definition.
	var band, total float64
	nyquist := n%2 == 0
	for k, c := range coeff {
		mag := cmplx.Abs(c)
		if k == 0 || (nyquist && k == len(coeff)-1) {
			total += mag
		} else {
			total += 2 * mag
		}
		freq := float64(k) * float64(rate) / float64(n)
		if freq >= beepBandLow && freq <= beepBandHigh {
			band += mag
		}
	}
	if total == 0 {
		return false
	}

	ratio := band / total
	if ratio <= beepRatioFloor || peak <= beepAmpFloor {
		return false
	}

	d.recentRatios = append(d.recentRatios, ratio)
	if len(d.recentRatios) > maxRecentRatios {
		d.recentRatios = d.recentRatios[1:]
	}
	var avg float64
	for _, r := range d.recentRatios {
		avg += r
	}
	avg /= float64(len(d.recentRatios))
	if avg <= beepRatioFloor {
		return false
	}

	d.candidates = append(d.candidates, now)
	if len(d.candidates) >= beepMinCount && now-d.candidates[0] < beepMaxSpan {
		d.confidence = math.Min(1.0, avg)
		d.lastDetection = now
		d.candidates = d.candidates[:0]
		return true
	}
	return false
}

// Confidence is the rolling band-ratio average captured at the last
// confirmation, in [0, 1].
func (d *BeepDetector) Confidence() float64 { return d.confidence }

// LastDetection is the stream time of the last confirmation.
func (d *BeepDetector) LastDetection() float64 { return d.lastDetection }

func (d *BeepDetector) Reset() {
	d.recentRatios = d.recentRatios[:0]
	d.candidates = d.candidates[:0]
	d.lastDetection = 0
	d.confidence = 0
}
