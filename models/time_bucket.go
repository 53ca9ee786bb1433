package models

// Granularity is the period size a TimeBucketKey encodes.
type Granularity string

const (
	GranularityYear     Granularity = "year"
	GranularitySemester Granularity = "semester"
	GranularityMonth    Granularity = "month"
	GranularityDay      Granularity = "day"
)

// TimeBucket is a parsed TimeBucketKey ("2021", "2021-S1", "2021-07" or
// "2021-07-15"). Fields that the granularity does not carry are zero.
type TimeBucket struct {
	Key           string      `json:"name"`
	Granularity   Granularity `json:"granularity"`
	Year          int         `json:"year"`
	Semester      int         `json:"semester,omitempty"`
	Month         int         `json:"month,omitempty"`
	Day           int         `json:"day,omitempty"`
	FormattedName string      `json:"formattedName"`
}

// TimePoint is a TimeBucket with its case count.
type TimePoint struct {
	TimeBucket
	Cases float64 `json:"cases"`
}
