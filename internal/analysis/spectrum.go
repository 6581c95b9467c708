package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Spectrum is a one-sided amplitude spectrum. Freqs are in Hz for a signal
// sampled every dt seconds.
type Spectrum struct {
	Freqs []float64
	Amps  []float64
}

// PowerSpectrum removes the mean, applies a Hann window and returns the
// magnitude of bins 0..n/2. Any length is accepted.
func PowerSpectrum(data []float64, dt float64) Spectrum {
	n := len(data)
	if n < 2 || dt <= 0 {
		return Spectrum{}
	}
	x := make([]float64, n)
	copy(x, data)
	floats.AddConst(-stat.Mean(x, nil), x)
	window.Apply(x, window.Hann)

	coeffs := fft.FFTReal(x)
	bins := n/2 + 1
	s := Spectrum{Freqs: make([]float64, bins), Amps: make([]float64, bins)}
	for k := 0; k < bins; k++ {
		s.Freqs[k] = float64(k) / (float64(n) * dt)
		s.Amps[k] = cmplx.Abs(coeffs[k])
	}
	return s
}

// DominantFrequency is the strongest non-DC bin of the spectrum and its
// amplitude. Both are zero for a constant or too-short signal.
func DominantFrequency(data []float64, dt float64) (float64, float64) {
	s := PowerSpectrum(data, dt)
	if len(s.Amps) < 2 {
		return 0, 0
	}
	k := floats.MaxIdx(s.Amps[1:]) + 1
	if s.Amps[k] == 0 {
		return 0, 0
	}
	return s.Freqs[k], s.Amps[k]
}
