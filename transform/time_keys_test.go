package transform

import (
	"errors"
	"testing"

	"covid-dashboard/models"
	"covid-dashboard/models/modelstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeBucketKey(t *testing.T) {
	tests := []struct {
		key       string
		gran      models.Granularity
		formatted string
	}{
		{"2021", models.GranularityYear, "2021"},
		{"2021-S1", models.GranularitySemester, "2021 - Semestre 1"},
		{"2020-S2", models.GranularitySemester, "2020 - Semestre 2"},
		{"2021-07", models.GranularityMonth, "Julio 2021"},
		{"2021-07-15", models.GranularityDay, "15 jul 2021"},
		{"2020-09-03", models.GranularityDay, "03 sept 2020"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			bucket, err := ParseTimeBucketKey(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.gran, bucket.Granularity)
			assert.Equal(t, tt.formatted, bucket.FormattedName)
			assert.Equal(t, tt.key, bucket.Key)
		})
	}
}

func TestParseTimeBucketKey_Malformed(t *testing.T) {
	for _, key := range []string{"", "21", "abcd", "2021-S3", "2021-13", "2021-00", "2021-02-30", "2021/07", "2021-07-15T00"} {
		t.Run(key, func(t *testing.T) {
			_, err := ParseTimeBucketKey(key)
			assert.True(t, errors.Is(err, ErrMalformedTimeKey), "got %v", err)
		})
	}
}

func TestTimeSeries_SortsChronologically(t *testing.T) {
	raw := modelstest.Aggregate("2021-02", 5, "2020-12", 3, "bogus", 1, "2021-01", 4)

	points, rejected := TimeSeries(raw)

	require.Len(t, points, 3)
	assert.Equal(t, "2020-12", points[0].Key)
	assert.Equal(t, "2021-01", points[1].Key)
	assert.Equal(t, "2021-02", points[2].Key)
	assert.Equal(t, 5.0, points[2].Cases)
	assert.Equal(t, []string{"bogus"}, rejected)
}

func TestLongDate(t *testing.T) {
	bucket, err := ParseTimeBucketKey("2021-07-05")
	require.NoError(t, err)

	assert.Equal(t, "05 de julio de 2021", LongDate(bucket))
}
