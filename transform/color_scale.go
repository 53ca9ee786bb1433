package transform

import (
	"math"
	"slices"

	"covid-dashboard/models"
)

// HeatPalette is the nine-step color range used by the maps.
var HeatPalette = []string{
	"#FFEDEA",
	"#FFCEC5",
	"#FFAD9F",
	"#FF8A75",
	"#FF5533",
	"#E2492D",
	"#BE3D26",
	"#9A311F",
	"#782618",
}

// DefaultColor fills regions with no data.
const DefaultColor = "#EEE"

// ColorScale maps a value to a palette color. A quantile scale splits the
// observed values into len(Palette) groups of equal size; a constant scale
// paints every value the same.
type ColorScale struct {
	Palette    []string
	Thresholds []float64
	constant   string
}

// Constant reports the single color of a constant scale.
func (s ColorScale) Constant() (string, bool) {
	return s.constant, s.constant != ""
}

// Color returns the color for v. NaN maps to DefaultColor.
func (s ColorScale) Color(v float64) string {
	if s.constant != "" {
		return s.constant
	}
	if math.IsNaN(v) || len(s.Palette) == 0 {
		return DefaultColor
	}
	return s.Palette[bisectRight(s.Thresholds, v)]
}

// ColorScaleFor builds the scale for a displayed series: DefaultColor when
// the series is empty, the first palette color when no value exceeds 1, a
// quantile scale over HeatPalette otherwise.
func ColorScaleFor(series []models.CategoryCount) ColorScale {
	if len(series) == 0 {
		return ColorScale{constant: DefaultColor}
	}
	values := make([]float64, 0, len(series))
	maxValue := math.Inf(-1)
	for _, c := range series {
		values = append(values, c.Value)
		maxValue = math.Max(maxValue, c.Value)
	}
	if maxValue <= 1 {
		return ColorScale{constant: HeatPalette[0]}
	}
	return NewQuantileScale(values, HeatPalette)
}

// NewQuantileScale builds a quantile scale over domain. Thresholds are the
// len(palette)-1 inner quantiles of the sorted domain, interpolated
// linearly between order statistics.
func NewQuantileScale(domain []float64, palette []string) ColorScale {
	sorted := make([]float64, 0, len(domain))
	for _, v := range domain {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	slices.Sort(sorted)

	scale := ColorScale{Palette: palette}
	if len(sorted) == 0 || len(palette) == 0 {
		return scale
	}
	n := len(palette)
	scale.Thresholds = make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		scale.Thresholds = append(scale.Thresholds, quantileSorted(sorted, float64(i)/float64(n)))
	}
	return scale
}

func quantileSorted(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := float64(len(sorted)-1) * p
	lo := int(math.Floor(pos))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*(pos-float64(lo))
}

// bisectRight returns the number of thresholds <= v.
func bisectRight(thresholds []float64, v float64) int {
	lo, hi := 0, len(thresholds)
	for lo < hi {
		mid := (lo + hi) / 2
		if v < thresholds[mid] {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
