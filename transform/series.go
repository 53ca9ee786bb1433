// Package transform reshapes the dashboard API's key/value aggregates into
// chart-ready series. Everything here is pure: no I/O, no logging.
package transform

import (
	"cmp"
	"slices"
	"strconv"

	"covid-dashboard/models"
)

// SortRule selects the order of a series built by ToSeries.
type SortRule int

const (
	// SortNone keeps mapping order.
	SortNone SortRule = iota
	// SortValueDesc ranks by value, largest first. Ties keep mapping order.
	SortValueDesc
	// SortKeyAsc orders by key: numerically when both keys are numbers,
	// lexicographically otherwise (chronological for ISO dates).
	SortKeyAsc
)

// ToSeries turns a RawAggregate into a sequence of CategoryCount.
func ToSeries(raw models.RawAggregate, rule SortRule) []models.CategoryCount {
	series := make([]models.CategoryCount, 0, raw.Len())
	for _, e := range raw.Entries {
		series = append(series, models.CategoryCount{Name: e.Key, Value: e.Value})
	}
	SortSeries(series, rule)
	return series
}

// SortSeries orders series in place.
func SortSeries(series []models.CategoryCount, rule SortRule) {
	switch rule {
	case SortValueDesc:
		slices.SortStableFunc(series, func(a, b models.CategoryCount) int {
			return cmp.Compare(b.Value, a.Value)
		})
	case SortKeyAsc:
		slices.SortStableFunc(series, func(a, b models.CategoryCount) int {
			return compareKeys(a.Name, b.Name)
		})
	}
}

func compareKeys(a, b string) int {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return cmp.Compare(na, nb)
	}
	return cmp.Compare(a, b)
}

// Relabel maps raw codes to display names, keeping mapping order. Codes
// missing from dict keep their raw value.
func Relabel(raw models.RawAggregate, dict map[string]string) []models.CategoryCount {
	series := make([]models.CategoryCount, 0, raw.Len())
	for _, e := range raw.Entries {
		name := e.Key
		if label, ok := dict[e.Key]; ok {
			name = label
		}
		series = append(series, models.CategoryCount{Name: name, Value: e.Value})
	}
	return series
}

// TopN returns the first n entries of an already ordered series. A shorter
// series is returned whole; n <= 0 yields an empty series.
func TopN(series []models.CategoryCount, n int) []models.CategoryCount {
	if n <= 0 {
		return []models.CategoryCount{}
	}
	if n > len(series) {
		n = len(series)
	}
	out := make([]models.CategoryCount, n)
	copy(out, series[:n])
	return out
}

// Total sums the values of a series.
func Total(series []models.CategoryCount) float64 {
	var total float64
	for _, c := range series {
		total += c.Value
	}
	return total
}

// Find returns the entry called name.
func Find(series []models.CategoryCount, name string) (models.CategoryCount, bool) {
	for _, c := range series {
		if c.Name == name {
			return c, true
		}
	}
	return models.CategoryCount{}, false
}
