package services

import (
	"context"
	"log"

	"covid-dashboard/api/dashboard"
	"covid-dashboard/models"
	"covid-dashboard/transform"
)

// Timeline tabs. The active tab is the displayed time granularity.
const (
	TimelineTabYears     = "years"
	TimelineTabSemesters = "semesters"
	TimelineTabMonths    = "months"
	TimelineTabDays      = "days"
)

// TabGranularity maps each timeline tab to its granularity.
var TabGranularity = map[string]models.Granularity{
	TimelineTabYears:     models.GranularityYear,
	TimelineTabSemesters: models.GranularitySemester,
	TimelineTabMonths:    models.GranularityMonth,
	TimelineTabDays:      models.GranularityDay,
}

// TimelineRaw is the raw fetch batch of the timeline page.
type TimelineRaw struct {
	Years     models.RawAggregate `json:"years"`
	Semesters models.RawAggregate `json:"semesters"`
	Months    models.RawAggregate `json:"months"`
	Days      models.RawAggregate `json:"days"`
}

// TimelineController drives the time evolution page.
type TimelineController struct {
	pageBase
	raw    TimelineRaw
	series map[models.Granularity][]models.TimePoint
}

func NewTimelineController() *TimelineController {
	return &TimelineController{
		pageBase: pageBase{
			page:   models.PageTimeline,
			status: models.StatusLoading,
			state: models.PageViewState{
				ActiveTab:  TimelineTabYears,
				ChartStyle: models.ChartLine,
			},
		},
		series: map[models.Granularity][]models.TimePoint{},
	}
}

func (c *TimelineController) Load(ctx context.Context, api dashboard.DashboardAPI) error {
	c.status = models.StatusLoading
	var raw TimelineRaw
	err := fetchBatch(ctx, api, []aggregateTarget{
		{dashboard.EndpointTiempoAnio, &raw.Years},
		{dashboard.EndpointTiempoMes, &raw.Months},
		{dashboard.EndpointTiempoDia, &raw.Days},
		{dashboard.EndpointTiempoSemestre, &raw.Semesters},
	})
	if err != nil {
		log.Printf("[TimelineController] Error fetching timeline data: %v", err)
		c.fail(TimelineErrorMessage)
		return err
	}
	c.setRaw(raw)
	return nil
}

func (c *TimelineController) setRaw(raw TimelineRaw) {
	c.raw = raw
	for gran, agg := range map[models.Granularity]models.RawAggregate{
		models.GranularityYear:     raw.Years,
		models.GranularitySemester: raw.Semesters,
		models.GranularityMonth:    raw.Months,
		models.GranularityDay:      raw.Days,
	} {
		points, rejected := transform.TimeSeries(agg)
		if len(rejected) > 0 {
			log.Printf("[TimelineController] Ignoring malformed %s keys: %v", gran, rejected)
		}
		c.series[gran] = points
	}
	c.ready()
}

// Granularity is the granularity of the active tab.
func (c *TimelineController) Granularity() models.Granularity {
	return TabGranularity[c.state.ActiveTab]
}

// Series returns the points of one granularity in chronological order.
func (c *TimelineController) Series(gran models.Granularity) []models.TimePoint {
	return c.series[gran]
}

// CurrentSeries is the series of the active tab.
func (c *TimelineController) CurrentSeries() []models.TimePoint {
	return c.series[c.Granularity()]
}

// Summary computes the headline statistics of the page.
func (c *TimelineController) Summary() TimelineSummary {
	years := c.series[models.GranularityYear]
	months := c.series[models.GranularityMonth]
	start, end := DateRange(c.series[models.GranularityDay])
	return TimelineSummary{
		TotalCases: TotalCases(years),
		PeakYear:   PeakLabel(years),
		PeakMonth:  PeakLabel(months),
		Trend:      ComputeTrend(months),
		RangeStart: start,
		RangeEnd:   end,
	}
}

// Comparison builds the period comparison rows of the active tab. Shares
// are relative to the yearly total.
func (c *TimelineController) Comparison() []PeriodRow {
	return PeriodComparison(c.CurrentSeries(), TotalCases(c.series[models.GranularityYear]))
}

func (c *TimelineController) Apply(req models.ViewRequest) error {
	if err := c.requireReady(); err != nil {
		return err
	}
	if req.ViewType != nil || req.Semester != nil || req.Entity != nil || req.ClearEntity {
		return invalid("the timeline page has no map, semester or entity selection")
	}
	if req.Tab != nil {
		if _, ok := TabGranularity[*req.Tab]; !ok {
			return invalid("unknown timeline tab %q", *req.Tab)
		}
	}
	if req.ChartStyle != nil && !oneOf(string(*req.ChartStyle), string(models.ChartLine), string(models.ChartBar), string(models.ChartArea)) {
		return invalid("timeline chart style %q", *req.ChartStyle)
	}

	if req.Tab != nil {
		c.state.ActiveTab = *req.Tab
	}
	if req.ChartStyle != nil {
		c.state.ChartStyle = *req.ChartStyle
	}
	return nil
}

func (c *TimelineController) Snapshot() (models.PageSnapshot, error) {
	return c.snapshot(c.raw)
}

func (c *TimelineController) Restore(snap models.PageSnapshot) error {
	var raw TimelineRaw
	ok, err := c.restore(snap, &raw)
	if err != nil || !ok {
		return err
	}
	c.setRaw(raw)
	return nil
}
