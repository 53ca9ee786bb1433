package dashboard

import (
	"context"

	"covid-dashboard/models"
)

// Endpoints served by the dashboard API.
const (
	EndpointEstado                 = "/dashboard/estado"
	EndpointSexo                   = "/dashboard/sexo"
	EndpointTipoContagio           = "/dashboard/tipo-contagio"
	EndpointEdad                   = "/dashboard/edad"
	EndpointRangoEdad              = "/dashboard/rango-edad"
	EndpointDepartamento           = "/dashboard/departamento"
	EndpointCasosPais              = "/dashboard/casos-pais"
	EndpointCasosCiudadMunicipio   = "/dashboard/casos-ciudad-municipio"
	EndpointSemestreDeptoMunicipio = "/dashboard/por-semestre-departamento-municipio"
	EndpointTiempoAnio             = "/dashboard/tiempo/anio"
	EndpointTiempoMes              = "/dashboard/tiempo/mes"
	EndpointTiempoDia              = "/dashboard/tiempo/dia"
	EndpointTiempoSemestre         = "/dashboard/tiempo/semestre"
)

// DashboardAPI defines the interface for reading pre-aggregated statistics.
type DashboardAPI interface {
	// GetAggregate fetches one category -> number dimension.
	GetAggregate(ctx context.Context, endpoint string) (models.RawAggregate, error)
	GetSemesterMatrix(ctx context.Context) (models.SemesterDepartmentMatrix, error)
}
