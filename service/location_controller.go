package services

import (
	"context"
	"log"
	"strings"

	"covid-dashboard/api/dashboard"
	"covid-dashboard/models"
	"covid-dashboard/transform"
)

// Location tabs.
const (
	LocationTabDepartments    = "departamentos"
	LocationTabMunicipalities = "municipios"
	LocationTabCountries      = "paises"
)

// TopCount is how many entries the ranking charts show.
const TopCount = 10

// LocationRaw is the raw fetch batch of the location page.
type LocationRaw struct {
	Departamentos models.RawAggregate             `json:"departamentos"`
	Paises        models.RawAggregate             `json:"paises"`
	Municipios    models.RawAggregate             `json:"municipios"`
	PorSemestre   models.SemesterDepartmentMatrix `json:"por_semestre"`
}

// LocationController drives the geographic page.
type LocationController struct {
	pageBase
	raw       LocationRaw
	semesters []string
}

func NewLocationController() *LocationController {
	return &LocationController{
		pageBase: pageBase{
			page:   models.PageLocation,
			status: models.StatusLoading,
			state: models.PageViewState{
				ActiveTab: LocationTabDepartments,
				ViewType:  models.ViewMap,
			},
		},
	}
}

func (c *LocationController) Load(ctx context.Context, api dashboard.DashboardAPI) error {
	c.status = models.StatusLoading
	var raw LocationRaw
	err := fetchBatch(ctx, api, []aggregateTarget{
		{dashboard.EndpointDepartamento, &raw.Departamentos},
		{dashboard.EndpointCasosPais, &raw.Paises},
		{dashboard.EndpointCasosCiudadMunicipio, &raw.Municipios},
	}, func(ctx context.Context) error {
		matrix, err := api.GetSemesterMatrix(ctx)
		if err != nil {
			return err
		}
		raw.PorSemestre = matrix
		return nil
	})
	if err != nil {
		log.Printf("[LocationController] Error fetching geographic data: %v", err)
		c.fail(LocationErrorMessage)
		return err
	}

	c.setRaw(raw)
	c.state.SelectedSemester = ""
	if len(c.semesters) > 0 {
		c.state.SelectedSemester = c.semesters[0]
	}
	c.state.SelectedEntity = nil
	return nil
}

func (c *LocationController) setRaw(raw LocationRaw) {
	if raw.PorSemestre == nil {
		raw.PorSemestre = models.SemesterDepartmentMatrix{}
	}
	c.raw = raw
	c.semesters = transform.Semesters(raw.PorSemestre)
	c.ready()
}

// Semesters lists the selectable semesters in ascending order.
func (c *LocationController) Semesters() []string { return c.semesters }

// CurrentData is the aggregate shown by the active tab: per-semester
// department totals (raw department data when there is no semester),
// countries or municipalities.
func (c *LocationController) CurrentData() models.RawAggregate {
	switch c.state.ActiveTab {
	case LocationTabCountries:
		return c.raw.Paises
	case LocationTabMunicipalities:
		return c.raw.Municipios
	}
	if c.state.SelectedSemester != "" {
		return transform.DepartmentTotals(c.raw.PorSemestre, c.state.SelectedSemester)
	}
	return c.raw.Departamentos
}

// CurrentSeries is CurrentData ranked by value.
func (c *LocationController) CurrentSeries() []models.CategoryCount {
	return transform.ToSeries(c.CurrentData(), transform.SortValueDesc)
}

// ChartData is the ranked series of the chart: the municipality breakdown
// of the selected department, or CurrentSeries at department level.
func (c *LocationController) ChartData() []models.CategoryCount {
	if c.state.SelectedEntity != nil {
		return transform.MunicipalitiesOf(c.raw.PorSemestre, c.state.SelectedSemester, *c.state.SelectedEntity)
	}
	return c.CurrentSeries()
}

// Top10 is the first TopCount entries of ChartData.
func (c *LocationController) Top10() []models.CategoryCount {
	return transform.TopN(c.ChartData(), TopCount)
}

// Apply validates and performs the request. Order matters: a new tab or
// semester clears the selected department before a new one is selected.
func (c *LocationController) Apply(req models.ViewRequest) error {
	if err := c.requireReady(); err != nil {
		return err
	}
	if req.ChartStyle != nil {
		return invalid("the location page has no chart style toggle")
	}
	tab := c.state.ActiveTab
	if req.Tab != nil {
		if !oneOf(*req.Tab, LocationTabDepartments, LocationTabMunicipalities, LocationTabCountries) {
			return invalid("unknown location tab %q", *req.Tab)
		}
		tab = *req.Tab
	}
	if req.ViewType != nil && *req.ViewType != models.ViewMap && *req.ViewType != models.ViewChart {
		return invalid("unknown view type %q", *req.ViewType)
	}
	if req.Semester != nil && !oneOf(*req.Semester, c.semesters...) {
		return invalid("unknown semester %q", *req.Semester)
	}
	var entity string
	if req.Entity != nil {
		entity = models.CanonicalDepartment(*req.Entity)
		if entity == "" {
			return invalid("empty department")
		}
		if tab != LocationTabDepartments {
			return invalid("departments can only be selected on the %s tab", LocationTabDepartments)
		}
	}

	if req.Tab != nil && *req.Tab != c.state.ActiveTab {
		c.state.ActiveTab = *req.Tab
		c.state.SelectedEntity = nil
	}
	if req.ViewType != nil {
		c.state.ViewType = *req.ViewType
	}
	if req.Semester != nil {
		c.state.SelectedSemester = *req.Semester
		c.state.SelectedEntity = nil
	}
	if req.ClearEntity {
		c.state.SelectedEntity = nil
	}
	if req.Entity != nil {
		c.state.SelectedEntity = &entity
	}
	return nil
}

// SelectedEntity returns the drilled-down department, "" at department level.
func (c *LocationController) SelectedEntity() string {
	if c.state.SelectedEntity == nil {
		return ""
	}
	return strings.TrimSpace(*c.state.SelectedEntity)
}

func (c *LocationController) Snapshot() (models.PageSnapshot, error) {
	return c.snapshot(c.raw)
}

func (c *LocationController) Restore(snap models.PageSnapshot) error {
	var raw LocationRaw
	ok, err := c.restore(snap, &raw)
	if err != nil || !ok {
		return err
	}
	c.setRaw(raw)
	return nil
}
