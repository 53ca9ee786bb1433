package services

import (
	"context"
	"testing"

	"covid-dashboard/api/dashboard"
	"covid-dashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedTimeline(t *testing.T) *TimelineController {
	t.Helper()
	ctrl := NewTimelineController()
	require.NoError(t, ctrl.Load(context.Background(), newFakeDashboardAPI().withTimeline()))
	return ctrl
}

func TestTimelineController_SeriesAreChronological(t *testing.T) {
	ctrl := loadedTimeline(t)

	years := ctrl.CurrentSeries()
	require.Len(t, years, 2)
	assert.Equal(t, "2020", years[0].Key)

	months := ctrl.Series(models.GranularityMonth)
	assert.Equal(t, "Diciembre 2020", months[0].FormattedName)
	assert.Equal(t, "Febrero 2021", months[2].FormattedName)
}

func TestTimelineController_TabIsGranularity(t *testing.T) {
	ctrl := loadedTimeline(t)
	area := models.ChartArea

	require.NoError(t, ctrl.Apply(models.ViewRequest{Tab: strPtr(TimelineTabSemesters), ChartStyle: &area}))

	assert.Equal(t, models.GranularitySemester, ctrl.Granularity())
	assert.Equal(t, models.ChartArea, ctrl.State().ChartStyle)
	assert.Equal(t, "2020 - Semestre 2", ctrl.CurrentSeries()[0].FormattedName)
}

func TestTimelineController_InvalidTransitions(t *testing.T) {
	ctrl := loadedTimeline(t)
	pie := models.ChartStyle("pie")

	assert.ErrorIs(t, ctrl.Apply(models.ViewRequest{Tab: strPtr("weeks")}), ErrInvalidTransition)
	assert.ErrorIs(t, ctrl.Apply(models.ViewRequest{ChartStyle: &pie}), ErrInvalidTransition)
	assert.ErrorIs(t, ctrl.Apply(models.ViewRequest{Entity: strPtr("ANTIOQUIA")}), ErrInvalidTransition)
}

func TestTimelineController_Summary(t *testing.T) {
	summary := loadedTimeline(t).Summary()

	assert.Equal(t, 400.0, summary.TotalCases)
	assert.Equal(t, "2021 (300 casos)", summary.PeakYear)
	assert.Equal(t, "Febrero 2021 (150 casos)", summary.PeakMonth)
	assert.Equal(t, TrendIncreasing, summary.Trend.Direction)
	assert.Equal(t, "En aumento (+50.0%)", summary.Trend.Label())
	assert.Equal(t, "31 de diciembre de 2020", summary.RangeStart)
	assert.Equal(t, "02 de enero de 2021", summary.RangeEnd)
}

func TestTimelineController_Comparison(t *testing.T) {
	ctrl := loadedTimeline(t)
	require.NoError(t, ctrl.Apply(models.ViewRequest{Tab: strPtr(TimelineTabMonths)}))

	rows := ctrl.Comparison()

	require.Len(t, rows, 3)
	assert.Equal(t, "-", rows[0].Variation)
	assert.Equal(t, "-", rows[1].Variation, "previous period has zero cases")
	assert.Equal(t, "50.00%", rows[2].Variation)
	assert.Equal(t, "37.50", rows[2].Share)
}

func TestTimelineController_OneFailureFailsPage(t *testing.T) {
	fake := newFakeDashboardAPI().withTimeline()
	fake.fail[dashboard.EndpointTiempoDia] = true
	ctrl := NewTimelineController()

	require.Error(t, ctrl.Load(context.Background(), fake))

	assert.Equal(t, models.StatusFailed, ctrl.Status())
	assert.Equal(t, TimelineErrorMessage, ctrl.ErrorMessage())
	assert.Empty(t, ctrl.CurrentSeries())
}

func TestTimelineController_SnapshotRestore(t *testing.T) {
	ctrl := loadedTimeline(t)
	require.NoError(t, ctrl.Apply(models.ViewRequest{Tab: strPtr(TimelineTabDays)}))
	snap, err := ctrl.Snapshot()
	require.NoError(t, err)

	restored := NewTimelineController()
	require.NoError(t, restored.Restore(snap))

	assert.Equal(t, ctrl.CurrentSeries(), restored.CurrentSeries())
	assert.Equal(t, ctrl.Summary(), restored.Summary())
}
