package services

import (
	"context"
	"testing"

	"covid-dashboard/api/dashboard"
	"covid-dashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestOverviewController_Load(t *testing.T) {
	// Arrange
	fake := newFakeDashboardAPI().withOverview()
	ctrl := NewOverviewController()
	require.Equal(t, models.StatusLoading, ctrl.Status())

	// Act
	err := ctrl.Load(context.Background(), fake)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, ctrl.Status())
	data := ctrl.Data()
	assert.Equal(t, []models.CategoryCount{{Name: "Femenino", Value: 51}, {Name: "Masculino", Value: 49}}, data.Sexo)
	assert.Equal(t, "RECUPERADO", data.Estado[0].Name)
	assert.Len(t, data.EdadGroups, 9)
	assert.Equal(t, 1.0, data.EdadGroups[0].Value)
	assert.Equal(t, 2.0, data.EdadGroups[1].Value)
	assert.Equal(t, 1.0, data.EdadGroups[8].Value)
	assert.Equal(t, []models.AgePoint{{Age: 200, Value: 0.5}}, data.DiscardedAges)
	assert.Equal(t, 5, fake.totalCalls())
}

func TestOverviewController_OneFailureFailsPage(t *testing.T) {
	fake := newFakeDashboardAPI().withOverview()
	fake.fail[dashboard.EndpointTipoContagio] = true
	ctrl := NewOverviewController()

	err := ctrl.Load(context.Background(), fake)

	assert.Error(t, err)
	assert.Equal(t, models.StatusFailed, ctrl.Status())
	assert.Equal(t, OverviewErrorMessage, ctrl.ErrorMessage())
	assert.Empty(t, ctrl.Data().Estado, "no partial data")
}

func TestOverviewController_Apply(t *testing.T) {
	ctrl := NewOverviewController()
	require.NoError(t, ctrl.Load(context.Background(), newFakeDashboardAPI().withOverview()))
	bar := models.ChartBar
	area := models.ChartArea

	require.NoError(t, ctrl.Apply(models.ViewRequest{Tab: strPtr(OverviewTabDetail), ChartStyle: &bar}))
	assert.Equal(t, OverviewTabDetail, ctrl.State().ActiveTab)
	assert.Equal(t, models.ChartBar, ctrl.State().ChartStyle)

	assert.ErrorIs(t, ctrl.Apply(models.ViewRequest{Tab: strPtr("otra")}), ErrInvalidTransition)
	assert.ErrorIs(t, ctrl.Apply(models.ViewRequest{ChartStyle: &area}), ErrInvalidTransition)
	assert.ErrorIs(t, ctrl.Apply(models.ViewRequest{Semester: strPtr("2021-S1")}), ErrInvalidTransition)
	assert.Equal(t, OverviewTabDetail, ctrl.State().ActiveTab, "rejected requests change nothing")
}

func TestOverviewController_ApplyBeforeLoad(t *testing.T) {
	ctrl := NewOverviewController()

	assert.ErrorIs(t, ctrl.Apply(models.ViewRequest{Tab: strPtr(OverviewTabDetail)}), ErrNotReady)
}

func TestOverviewController_SnapshotRestore(t *testing.T) {
	ctrl := NewOverviewController()
	require.NoError(t, ctrl.Load(context.Background(), newFakeDashboardAPI().withOverview()))
	require.NoError(t, ctrl.Apply(models.ViewRequest{Tab: strPtr(OverviewTabDetail)}))

	snap, err := ctrl.Snapshot()
	require.NoError(t, err)

	restored := NewOverviewController()
	require.NoError(t, restored.Restore(snap))

	assert.Equal(t, models.StatusReady, restored.Status())
	assert.Equal(t, ctrl.State(), restored.State())
	assert.Equal(t, ctrl.Data(), restored.Data())
}

func TestOverviewController_RestoreFailed(t *testing.T) {
	restored := NewOverviewController()

	err := restored.Restore(models.PageSnapshot{Page: models.PageOverview, Status: models.StatusFailed})

	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, restored.Status())
	assert.Equal(t, OverviewErrorMessage, restored.ErrorMessage())
}

func TestOverviewController_RestoreWrongPage(t *testing.T) {
	err := NewOverviewController().Restore(models.PageSnapshot{Page: models.PageTimeline, Status: models.StatusReady})

	assert.Error(t, err)
}
