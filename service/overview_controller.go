package services

import (
	"context"
	"log"

	"covid-dashboard/api/dashboard"
	"covid-dashboard/models"
	"covid-dashboard/transform"
)

// Overview tabs.
const (
	OverviewTabGeneral = "general"
	OverviewTabDetail  = "detalle"
)

// SexLabels relabels the sex codes of /dashboard/sexo.
var SexLabels = map[string]string{
	"F": "Femenino",
	"M": "Masculino",
}

// OverviewRaw is the raw fetch batch of the overview page.
type OverviewRaw struct {
	Estado       models.RawAggregate `json:"estado"`
	Sexo         models.RawAggregate `json:"sexo"`
	TipoContagio models.RawAggregate `json:"tipo_contagio"`
	Edad         models.RawAggregate `json:"edad"`
	RangoEdad    models.RawAggregate `json:"rango_edad"`
}

// OverviewData is the chart-ready data derived from OverviewRaw.
type OverviewData struct {
	Estado       []models.CategoryCount
	Sexo         []models.CategoryCount
	TipoContagio []models.CategoryCount
	Edad         []models.AgePoint
	EdadGroups   []models.CategoryCount
	// RangoEdad is the API's own age-range aggregate.
	RangoEdad []models.CategoryCount

	DiscardedAges   []models.AgePoint
	RejectedAgeKeys []string
}

// OverviewController drives the general page: case status, sex, contagion
// type and age distributions.
type OverviewController struct {
	pageBase
	raw  OverviewRaw
	data OverviewData
}

func NewOverviewController() *OverviewController {
	return &OverviewController{
		pageBase: pageBase{
			page:   models.PageOverview,
			status: models.StatusLoading,
			state: models.PageViewState{
				ActiveTab:  OverviewTabGeneral,
				ChartStyle: models.ChartLine,
			},
		},
	}
}

// Data returns the derived series. It is empty unless the page is Ready.
func (c *OverviewController) Data() OverviewData { return c.data }

func (c *OverviewController) Load(ctx context.Context, api dashboard.DashboardAPI) error {
	c.status = models.StatusLoading
	var raw OverviewRaw
	err := fetchBatch(ctx, api, []aggregateTarget{
		{dashboard.EndpointEstado, &raw.Estado},
		{dashboard.EndpointSexo, &raw.Sexo},
		{dashboard.EndpointTipoContagio, &raw.TipoContagio},
		{dashboard.EndpointEdad, &raw.Edad},
		{dashboard.EndpointRangoEdad, &raw.RangoEdad},
	})
	if err != nil {
		log.Printf("[OverviewController] Error fetching dashboard data: %v", err)
		c.fail(OverviewErrorMessage)
		return err
	}
	c.setRaw(raw)
	return nil
}

func (c *OverviewController) setRaw(raw OverviewRaw) {
	c.raw = raw
	edad, rejected := transform.ParseAgeSeries(raw.Edad)
	if len(rejected) > 0 {
		log.Printf("[OverviewController] Ignoring non-numeric age keys: %v", rejected)
	}
	groups := transform.Bucketize(edad, transform.StandardAgeBuckets)
	if len(groups.Discarded) > 0 {
		log.Printf("[OverviewController] %d age points fell outside every age group: %v", len(groups.Discarded), groups.Discarded)
	}

	c.data = OverviewData{
		Estado:          transform.ToSeries(raw.Estado, transform.SortNone),
		Sexo:            transform.Relabel(raw.Sexo, SexLabels),
		TipoContagio:    transform.ToSeries(raw.TipoContagio, transform.SortNone),
		Edad:            edad,
		EdadGroups:      groups.Series,
		RangoEdad:       transform.ToSeries(raw.RangoEdad, transform.SortNone),
		DiscardedAges:   groups.Discarded,
		RejectedAgeKeys: rejected,
	}
	c.ready()
}

func (c *OverviewController) Apply(req models.ViewRequest) error {
	if err := c.requireReady(); err != nil {
		return err
	}
	if req.ViewType != nil || req.Semester != nil || req.Entity != nil || req.ClearEntity {
		return invalid("the overview page has no map, semester or entity selection")
	}
	if req.Tab != nil && !oneOf(*req.Tab, OverviewTabGeneral, OverviewTabDetail) {
		return invalid("unknown overview tab %q", *req.Tab)
	}
	if req.ChartStyle != nil && *req.ChartStyle != models.ChartLine && *req.ChartStyle != models.ChartBar {
		return invalid("age chart style %q", *req.ChartStyle)
	}

	if req.Tab != nil {
		c.state.ActiveTab = *req.Tab
	}
	if req.ChartStyle != nil {
		c.state.ChartStyle = *req.ChartStyle
	}
	return nil
}

func (c *OverviewController) Snapshot() (models.PageSnapshot, error) {
	return c.snapshot(c.raw)
}

func (c *OverviewController) Restore(snap models.PageSnapshot) error {
	var raw OverviewRaw
	ok, err := c.restore(snap, &raw)
	if err != nil || !ok {
		return err
	}
	c.setRaw(raw)
	return nil
}
