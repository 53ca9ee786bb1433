package services

import (
	"fmt"

	"covid-dashboard/models"
	"covid-dashboard/presenter/format"
	"covid-dashboard/transform"
)

// Sentinels shown when a statistic has no input.
const (
	NoData       = "No data"
	NoRate       = "0.00"
	NotAvailable = "No disponible"
)

// Rate returns the value of the named category with two decimals, NoRate
// when the category is missing.
func Rate(series []models.CategoryCount, name string) string {
	c, ok := transform.Find(series, name)
	if !ok {
		return NoRate
	}
	return format.Fixed2(c.Value)
}

func RecoveryRate(estado []models.CategoryCount) string { return Rate(estado, "RECUPERADO") }

func MortalityRate(estado []models.CategoryCount) string { return Rate(estado, "FALLECIDO") }

func ActiveRate(estado []models.CategoryCount) string { return Rate(estado, "ACTIVO") }

// LargestAgeGroup names the age group with the highest value.
func LargestAgeGroup(groups []models.CategoryCount) string {
	c, ok := transform.Largest(groups)
	if !ok {
		return NoData
	}
	return c.Name
}

// AgeGroupShare returns the value of one age group with two decimals.
func AgeGroupShare(groups []models.CategoryCount, label string) string {
	return Rate(groups, label)
}

// TotalCases sums the cases of a time series.
func TotalCases(points []models.TimePoint) float64 {
	var total float64
	for _, p := range points {
		total += p.Cases
	}
	return total
}

// Peak returns the point with the most cases; on ties the later one.
func Peak(points []models.TimePoint) (models.TimePoint, bool) {
	if len(points) == 0 {
		return models.TimePoint{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if !(best.Cases > p.Cases) {
			best = p
		}
	}
	return best, true
}

// PeakLabel renders the peak as "Julio 2021 (1.234 casos)".
func PeakLabel(points []models.TimePoint) string {
	p, ok := Peak(points)
	if !ok {
		return NoData
	}
	return fmt.Sprintf("%s (%s casos)", p.FormattedName, format.Thousands(p.Cases))
}

// TrendDirection classifies the change between the two latest periods.
type TrendDirection string

const (
	TrendIncreasing   TrendDirection = "increasing"
	TrendDecreasing   TrendDirection = "decreasing"
	TrendStable       TrendDirection = "stable"
	TrendInsufficient TrendDirection = "insufficient"
)

// Trend is the percent change of the latest period over the previous one.
type Trend struct {
	Direction TrendDirection
	Percent   float64
}

// ComputeTrend compares the two most recent points of a chronological
// series. Fewer than two points, or a previous period with zero cases, is
// insufficient data.
func ComputeTrend(points []models.TimePoint) Trend {
	if len(points) < 2 {
		return Trend{Direction: TrendInsufficient}
	}
	last := points[len(points)-1].Cases
	prev := points[len(points)-2].Cases
	if prev == 0 {
		return Trend{Direction: TrendInsufficient}
	}
	pct := (last - prev) / prev * 100
	switch {
	case pct > 0:
		return Trend{Direction: TrendIncreasing, Percent: pct}
	case pct < 0:
		return Trend{Direction: TrendDecreasing, Percent: pct}
	}
	return Trend{Direction: TrendStable}
}

// Label renders the trend for display.
func (t Trend) Label() string {
	switch t.Direction {
	case TrendIncreasing:
		return fmt.Sprintf("En aumento (+%.1f%%)", t.Percent)
	case TrendDecreasing:
		return fmt.Sprintf("En descenso (%.1f%%)", t.Percent)
	case TrendStable:
		return "Estable"
	}
	return "Datos insuficientes"
}

// PeriodRow is one line of the period comparison table.
type PeriodRow struct {
	Period string  `json:"period"`
	Cases  float64 `json:"cases"`
	// Share is the percentage of the total, two decimals.
	Share string `json:"share"`
	// Variation is the change over the previous row, "-" when undefined.
	Variation string         `json:"variation"`
	Direction TrendDirection `json:"direction"`
}

// PeriodComparison builds the comparison rows of a series against total.
func PeriodComparison(points []models.TimePoint, total float64) []PeriodRow {
	rows := make([]PeriodRow, 0, len(points))
	for i, p := range points {
		row := PeriodRow{
			Period:    p.FormattedName,
			Cases:     p.Cases,
			Share:     NoRate,
			Variation: "-",
			Direction: TrendInsufficient,
		}
		if total > 0 {
			row.Share = format.Fixed2(p.Cases / total * 100)
		}
		if i > 0 && points[i-1].Cases > 0 {
			prev := points[i-1].Cases
			change := (p.Cases - prev) / prev * 100
			row.Variation = fmt.Sprintf("%.2f%%", change)
			switch {
			case change > 0:
				row.Direction = TrendIncreasing
			case change < 0:
				row.Direction = TrendDecreasing
			default:
				row.Direction = TrendStable
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// DateRange returns the first and last day of a chronological daily
// series as long Spanish dates, NotAvailable when empty.
func DateRange(days []models.TimePoint) (start, end string) {
	if len(days) == 0 {
		return NotAvailable, NotAvailable
	}
	return transform.LongDate(days[0].TimeBucket), transform.LongDate(days[len(days)-1].TimeBucket)
}

// TimelineSummary holds the headline statistics of the timeline page.
type TimelineSummary struct {
	TotalCases float64
	PeakYear   string
	PeakMonth  string
	Trend      Trend
	RangeStart string
	RangeEnd   string
}
