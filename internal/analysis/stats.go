package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
	RMS    float64
}

// Summarize returns descriptive statistics of data. StdDev is the sample
// standard deviation and is zero for fewer than two values.
func Summarize(data []float64) Summary {
	n := len(data)
	if n == 0 {
		return Summary{}
	}
	s := Summary{
		N:   n,
		Min: floats.Min(data),
		Max: floats.Max(data),
		RMS: math.Sqrt(floats.Dot(data, data) / float64(n)),
	}
	if n > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(data, nil)
	} else {
		s.Mean = data[0]
	}

	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)
	if n%2 == 1 {
		s.Median = sorted[n/2]
	} else {
		s.Median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return s
}
