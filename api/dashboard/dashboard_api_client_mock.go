package dashboard

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"covid-dashboard/models"
	"covid-dashboard/util"
)

// DashboardApiClientMock serves dashboard responses from JSON fixtures on disk.
type DashboardApiClientMock struct {
	fixturesDir string
}

// NewDashboardApiClientMock creates a mock reading fixtures from fixturesDir.
func NewDashboardApiClientMock(fixturesDir string) *DashboardApiClientMock {
	return &DashboardApiClientMock{fixturesDir: fixturesDir}
}

// FixtureFile maps an endpoint to its fixture file name:
// "/dashboard/tiempo/anio" -> "tiempo-anio.json".
func FixtureFile(endpoint string) string {
	name := strings.TrimPrefix(endpoint, "/dashboard/")
	return strings.ReplaceAll(name, "/", "-") + ".json"
}

// GetAggregate reads the fixture of endpoint.
func (c *DashboardApiClientMock) GetAggregate(ctx context.Context, endpoint string) (models.RawAggregate, error) {
	if err := ctx.Err(); err != nil {
		return models.RawAggregate{}, err
	}
	path := filepath.Join(c.fixturesDir, FixtureFile(endpoint))
	raw, err := util.ReadRawAggregateFromJSON(path)
	if err != nil {
		log.Printf("[DashboardApiClientMock] Could not read fixture for %s: %v", endpoint, err)
		return models.RawAggregate{}, fmt.Errorf("mock %s: %w", endpoint, err)
	}
	return raw, nil
}

// GetSemesterMatrix reads the semester/department/municipality fixture.
func (c *DashboardApiClientMock) GetSemesterMatrix(ctx context.Context) (models.SemesterDepartmentMatrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(c.fixturesDir, FixtureFile(EndpointSemestreDeptoMunicipio))
	matrix, err := util.ReadSemesterMatrixFromJSON(path)
	if err != nil {
		log.Printf("[DashboardApiClientMock] Could not read semester matrix fixture: %v", err)
		return nil, fmt.Errorf("mock %s: %w", EndpointSemestreDeptoMunicipio, err)
	}
	return matrix, nil
}
