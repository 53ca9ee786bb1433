package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"covid-dashboard/api"
	"covid-dashboard/api/dashboard"
	"covid-dashboard/models"
	"covid-dashboard/models/modelstest"
)

// fakeDashboardAPI answers from memory. Endpoints listed in fail return an
// HTTP 500; endpoints listed in block wait until their context is done.
type fakeDashboardAPI struct {
	mu         sync.Mutex
	aggregates map[string]models.RawAggregate
	matrix     models.SemesterDepartmentMatrix
	fail       map[string]bool
	block      map[string]bool
	calls      map[string]int
	blocked    chan string
}

func newFakeDashboardAPI() *fakeDashboardAPI {
	return &fakeDashboardAPI{
		aggregates: map[string]models.RawAggregate{},
		matrix:     models.SemesterDepartmentMatrix{},
		fail:       map[string]bool{},
		block:      map[string]bool{},
		calls:      map[string]int{},
		blocked:    make(chan string, 16),
	}
}

func (f *fakeDashboardAPI) GetAggregate(ctx context.Context, endpoint string) (models.RawAggregate, error) {
	if err := f.enter(ctx, endpoint); err != nil {
		return models.RawAggregate{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.aggregates[endpoint], nil
}

func (f *fakeDashboardAPI) GetSemesterMatrix(ctx context.Context) (models.SemesterDepartmentMatrix, error) {
	if err := f.enter(ctx, dashboard.EndpointSemestreDeptoMunicipio); err != nil {
		return nil, err
	}
	return f.matrix, nil
}

func (f *fakeDashboardAPI) enter(ctx context.Context, endpoint string) error {
	f.mu.Lock()
	f.calls[endpoint]++
	fail, block := f.fail[endpoint], f.block[endpoint]
	f.mu.Unlock()

	if fail {
		return &api.HTTPError{Endpoint: endpoint, StatusCode: 500, Status: "500 Internal Server Error"}
	}
	if block {
		f.blocked <- endpoint
		<-ctx.Done()
		return &api.NetworkError{Endpoint: endpoint, Err: ctx.Err()}
	}
	return ctx.Err()
}

func (f *fakeDashboardAPI) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeDashboardAPI) withOverview() *fakeDashboardAPI {
	f.aggregates[dashboard.EndpointEstado] = modelstest.Aggregate("RECUPERADO", 95.123, "FALLECIDO", 2.5, "ACTIVO", 2.377)
	f.aggregates[dashboard.EndpointSexo] = modelstest.Aggregate("F", 51.0, "M", 49.0)
	f.aggregates[dashboard.EndpointTipoContagio] = modelstest.Aggregate("Comunitaria", 80.0, "Importado", 20.0)
	f.aggregates[dashboard.EndpointEdad] = modelstest.Aggregate("5", 1, "15", 2, "85", 1, "200", 0.5)
	f.aggregates[dashboard.EndpointRangoEdad] = modelstest.Aggregate("0-9", 25.0)
	return f
}

func (f *fakeDashboardAPI) withLocation(t *testing.T) *fakeDashboardAPI {
	t.Helper()
	f.aggregates[dashboard.EndpointDepartamento] = modelstest.Aggregate("VALLE", 30, "ANTIOQUIA", 50)
	f.aggregates[dashboard.EndpointCasosPais] = modelstest.Aggregate("COLOMBIA", 1000, "VENEZUELA", 20)
	f.aggregates[dashboard.EndpointCasosCiudadMunicipio] = modelstest.Aggregate("MEDELLIN", 11, "CALI", 7)
	if err := json.Unmarshal([]byte(`{
		"2021-S1": {"ANTIOQUIA": {"ENVIGADO": 5, "MEDELLIN": 10}, "VALLE": {"CALI": 7}},
		"2020-S2": {"ANTIOQUIA": {"MEDELLIN": 3}, "VALLE": {"CALI": 9}}
	}`), &f.matrix); err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *fakeDashboardAPI) withTimeline() *fakeDashboardAPI {
	f.aggregates[dashboard.EndpointTiempoAnio] = modelstest.Aggregate("2021", 300, "2020", 100)
	f.aggregates[dashboard.EndpointTiempoSemestre] = modelstest.Aggregate("2020-S2", 100, "2021-S1", 200, "2021-S2", 100)
	f.aggregates[dashboard.EndpointTiempoMes] = modelstest.Aggregate("2021-02", 150, "2021-01", 100, "2020-12", 0)
	f.aggregates[dashboard.EndpointTiempoDia] = modelstest.Aggregate("2021-01-02", 7, "2020-12-31", 3, "2021-01-01", 5)
	return f
}
