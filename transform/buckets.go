package transform

import (
	"strconv"
	"strings"

	"covid-dashboard/models"
)

// StandardAgeBuckets are the ten-year ranges used by the age charts.
var StandardAgeBuckets = []models.AgeBucket{
	{Min: 0, Max: 9, Label: "0-9"},
	{Min: 10, Max: 19, Label: "10-19"},
	{Min: 20, Max: 29, Label: "20-29"},
	{Min: 30, Max: 39, Label: "30-39"},
	{Min: 40, Max: 49, Label: "40-49"},
	{Min: 50, Max: 59, Label: "50-59"},
	{Min: 60, Max: 69, Label: "60-69"},
	{Min: 70, Max: 79, Label: "70-79"},
	{Min: 80, Max: 150, Label: "80+"},
}

// BucketResult is the outcome of Bucketize. Discarded holds the points that
// fell in no bucket so callers can report them.
type BucketResult struct {
	Series    []models.CategoryCount
	Discarded []models.AgePoint
}

// Bucketize sums the points whose age satisfies Min <= age <= Max of each
// bucket. Output follows bucket order; empty buckets are present with 0.
func Bucketize(points []models.AgePoint, buckets []models.AgeBucket) BucketResult {
	result := BucketResult{Series: make([]models.CategoryCount, len(buckets))}
	for i, b := range buckets {
		result.Series[i] = models.CategoryCount{Name: b.Label}
	}

	for _, p := range points {
		matched := false
		for i, b := range buckets {
			if p.Age >= b.Min && p.Age <= b.Max {
				result.Series[i].Value += p.Value
				matched = true
			}
		}
		if !matched {
			result.Discarded = append(result.Discarded, p)
		}
	}
	return result
}

// ParseAgeSeries reads the per-age aggregate into points sorted by age.
// Keys that are not integers are returned in rejected.
func ParseAgeSeries(raw models.RawAggregate) (points []models.AgePoint, rejected []string) {
	var ages models.RawAggregate
	for _, e := range raw.Entries {
		key := strings.TrimSpace(e.Key)
		if _, err := strconv.Atoi(key); err != nil {
			rejected = append(rejected, e.Key)
			continue
		}
		ages.Entries = append(ages.Entries, models.AggregateEntry{Key: key, Value: e.Value})
	}

	series := ToSeries(ages, SortKeyAsc)
	points = make([]models.AgePoint, 0, len(series))
	for _, c := range series {
		age, _ := strconv.Atoi(c.Name)
		points = append(points, models.AgePoint{Age: age, Value: c.Value})
	}
	return points, rejected
}

// Largest returns the entry with the highest value. On ties the later
// entry wins.
func Largest(series []models.CategoryCount) (models.CategoryCount, bool) {
	if len(series) == 0 {
		return models.CategoryCount{}, false
	}
	best := series[0]
	for _, c := range series[1:] {
		if !(best.Value > c.Value) {
			best = c
		}
	}
	return best, true
}
