package transform

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"covid-dashboard/models"
)

// ErrMalformedTimeKey is returned for keys matching no known time format.
var ErrMalformedTimeKey = errors.New("malformed time bucket key")

// MonthNames are the Spanish month names, January first.
var MonthNames = []string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// monthNamesLower are the long month names used inside dates.
var monthNamesLower = []string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var monthAbbrev = []string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sept", "oct", "nov", "dic",
}

// ParseTimeBucketKey parses "2021", "2021-S1", "2021-07" or "2021-07-15".
func ParseTimeBucketKey(key string) (models.TimeBucket, error) {
	bucket := models.TimeBucket{Key: key}
	malformed := fmt.Errorf("%w: %q", ErrMalformedTimeKey, key)

	switch {
	case len(key) == 4:
		year, err := parseYear(key)
		if err != nil {
			return bucket, malformed
		}
		bucket.Granularity = models.GranularityYear
		bucket.Year = year
		bucket.FormattedName = key

	case len(key) == 7 && key[4] == '-' && key[5] == 'S':
		year, err := parseYear(key[:4])
		if err != nil || (key[6] != '1' && key[6] != '2') {
			return bucket, malformed
		}
		bucket.Granularity = models.GranularitySemester
		bucket.Year = year
		bucket.Semester = int(key[6] - '0')
		bucket.FormattedName = fmt.Sprintf("%d - Semestre %d", year, bucket.Semester)

	case len(key) == 7 && key[4] == '-':
		year, err := parseYear(key[:4])
		if err != nil {
			return bucket, malformed
		}
		month, err := strconv.Atoi(key[5:])
		if err != nil || month < 1 || month > 12 {
			return bucket, malformed
		}
		bucket.Granularity = models.GranularityMonth
		bucket.Year = year
		bucket.Month = month
		bucket.FormattedName = fmt.Sprintf("%s %d", MonthNames[month-1], year)

	case len(key) == 10:
		t, err := time.Parse("2006-01-02", key)
		if err != nil {
			return bucket, malformed
		}
		bucket.Granularity = models.GranularityDay
		bucket.Year = t.Year()
		bucket.Month = int(t.Month())
		bucket.Day = t.Day()
		bucket.FormattedName = fmt.Sprintf("%02d %s %d", t.Day(), monthAbbrev[t.Month()-1], t.Year())

	default:
		return bucket, malformed
	}
	return bucket, nil
}

func parseYear(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// TimeSeries parses every key of raw and returns the points in
// chronological order. Keys that do not parse are returned in rejected.
func TimeSeries(raw models.RawAggregate) (points []models.TimePoint, rejected []string) {
	points = make([]models.TimePoint, 0, raw.Len())
	for _, e := range raw.Entries {
		bucket, err := ParseTimeBucketKey(e.Key)
		if err != nil {
			rejected = append(rejected, e.Key)
			continue
		}
		points = append(points, models.TimePoint{TimeBucket: bucket, Cases: e.Value})
	}
	slices.SortStableFunc(points, func(a, b models.TimePoint) int {
		return CompareBuckets(a.TimeBucket, b.TimeBucket)
	})
	return points, rejected
}

// CompareBuckets orders buckets chronologically.
func CompareBuckets(a, b models.TimeBucket) int {
	if c := cmp.Compare(a.Year, b.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Semester, b.Semester); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Month, b.Month); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Day, b.Day); c != 0 {
		return c
	}
	return strings.Compare(a.Key, b.Key)
}

// LongDate formats a day bucket as "15 de julio de 2021".
func LongDate(b models.TimeBucket) string {
	if b.Granularity != models.GranularityDay || b.Month < 1 || b.Month > 12 {
		return b.FormattedName
	}
	return fmt.Sprintf("%02d de %s de %d", b.Day, monthNamesLower[b.Month-1], b.Year)
}
