package analysis

import (
	"math"

	"github.com/san-kum/particlesim/internal/dynamo"
)

// RadialDistribution estimates the pair correlation g(r) of s in bins of
// width dr up to rMax, normalized by the ideal gas density over the
// given area. Edge effects are not corrected.
func RadialDistribution(s dynamo.Snapshot, dr, rMax, area float64) []float64 {
	n := len(s)
	if n < 2 || dr <= 0 || rMax <= 0 || area <= 0 {
		return nil
	}
	bins := int(math.Ceil(rMax / dr))
	counts := make([]float64, bins)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := s[j].X - s[i].X
			dy := s[j].Y - s[i].Y
			r := math.Sqrt(dx*dx + dy*dy)
			if r >= rMax {
				continue
			}
			counts[int(r/dr)] += 2
		}
	}

	density := float64(n) / area
	g := make([]float64, bins)
	for k := range counts {
		rIn := float64(k) * dr
		rOut := rIn + dr
		shell := math.Pi * (rOut*rOut - rIn*rIn)
		g[k] = counts[k] / (float64(n) * density * shell)
	}
	return g
}

// SpeedHistogram counts particle speeds in equal-width bins spanning
// [0, max speed]. The fastest particle lands in the last bin.
func SpeedHistogram(s dynamo.Snapshot, bins int) (counts []int, binWidth float64) {
	if bins <= 0 {
		return nil, 0
	}
	counts = make([]int, bins)
	if len(s) == 0 {
		return counts, 0
	}

	top := 0.0
	for _, p := range s {
		top = max(top, p.Speed())
	}
	if top == 0 {
		counts[0] = len(s)
		return counts, 0
	}

	binWidth = top / float64(bins)
	for _, p := range s {
		k := int(p.Speed() / binWidth)
		if k >= bins {
			k = bins - 1
		}
		counts[k]++
	}
	return counts, binWidth
}

// Series extracts one coordinate of particle index from each frame.
func Series(frames []dynamo.Snapshot, index int, c Coordinate) ([]float64, error) {
	out := make([]float64, 0, len(frames))
	for _, f := range frames {
		if index < 0 || index >= len(f) {
			continue
		}
		v, err := c.value(f[index])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
