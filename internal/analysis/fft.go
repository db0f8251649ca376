package analysis

import (
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum removes the mean, zero-pads to a power of two and returns
// the magnitudes of the non-negative frequency bins along with the padded
// length.
func PowerSpectrum(data []float64) ([]float64, int) {
	n := 1
	for n < len(data) {
		n *= 2
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	if len(data) > 0 {
		mean /= float64(len(data))
	}

	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - mean
	}

	bins := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps, n
}

type Peak struct {
	Frequency float64
	Power     float64
}

// DominantFrequencies returns up to limit local maxima of the spectrum of
// a series sampled every dt, strongest first.
func DominantFrequencies(series []float64, dt float64, limit int) []Peak {
	if len(series) < 4 || dt <= 0 {
		return nil
	}
	ps, n := PowerSpectrum(series)
	df := 1 / (float64(n) * dt)

	var peaks []Peak
	for i := 1; i < len(ps)-1; i++ {
		if ps[i] > ps[i-1] && ps[i] >= ps[i+1] && ps[i] > 0 {
			peaks = append(peaks, Peak{Frequency: float64(i) * df, Power: ps[i]})
		}
	}
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].Power > peaks[j].Power })
	if len(peaks) > limit {
		peaks = peaks[:limit]
	}
	return peaks
}
