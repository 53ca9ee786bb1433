package presenter

import (
	"fmt"
	"strings"

	"covid-dashboard/models"
	"covid-dashboard/presenter/format"
	services "covid-dashboard/service"
)

var timelineChartTitles = map[string]string{
	services.TimelineTabYears:     "Casos por Año",
	services.TimelineTabSemesters: "Casos por Semestre",
	services.TimelineTabMonths:    "Casos por Mes",
	services.TimelineTabDays:      "Casos por Día",
}

func buildTimeline(view *PageView, c *services.TimelineController) {
	state := c.State()
	summary := c.Summary()
	gran := c.Granularity()

	view.Subtitle = "Análisis de la distribución de casos a lo largo del tiempo"
	view.Stats = []Stat{
		{Label: "Total de Casos", Value: format.Thousands(summary.TotalCases), Accent: "blue"},
		{Label: "Año con más casos", Value: summary.PeakYear, Accent: "green"},
		{Label: "Mes con más casos", Value: summary.PeakMonth, Accent: "red"},
		{Label: "Tendencia Actual", Value: summary.Trend.Label(), Accent: "purple"},
	}
	view.Tabs = tabs(state.ActiveTab,
		services.TimelineTabYears, "Por Año",
		services.TimelineTabSemesters, "Por Semestre",
		services.TimelineTabMonths, "Por Mes",
		services.TimelineTabDays, "Por Día",
	)
	view.Controls = []Control{
		toggle("chart", "", string(state.ChartStyle),
			string(models.ChartLine), "Línea",
			string(models.ChartBar), "Barras",
			string(models.ChartArea), "Área",
		),
	}
	view.Charts = []ChartSpec{TimelineChart(c.CurrentSeries(), gran, state.ChartStyle, timelineChartTitles[state.ActiveTab])}
	view.Notes = timelineNotes(c, gran, summary)

	if gran != models.GranularityDay {
		view.Table = comparisonTable(c.Comparison())
	}
}

// TimelineChart is the case series of one granularity drawn in style.
func TimelineChart(points []models.TimePoint, gran models.Granularity, style models.ChartStyle, title string) ChartSpec {
	color := TimelineColors[gran]
	chart := ChartSpec{
		ID:          "timeline",
		Kind:        KindLine,
		Title:       title,
		SeriesName:  "Casos",
		X:           TimelineAxis(gran),
		Y:           Axis{Key: "cases"},
		Data:        timeData(points),
		SeriesColor: color,
		Tooltip:     "{b}<br/>Casos: {c}",
		ValueFormat: ValueThousands,
		Legend:      true,
	}
	switch style {
	case models.ChartBar:
		chart.Kind = KindBar
	case models.ChartArea:
		chart.Kind = KindArea
		chart.FillColor = AreaFill(color)
	}
	return chart
}

func timelineNotes(c *services.TimelineController, gran models.Granularity, summary services.TimelineSummary) []string {
	var notes []string
	switch gran {
	case models.GranularityYear:
		if p, ok := services.Peak(c.Series(models.GranularityYear)); ok {
			notes = append(notes, fmt.Sprintf("La distribución anual de casos muestra que %s fue el año con mayor incidencia.", p.FormattedName))
		}
	case models.GranularitySemester:
		if p, ok := services.Peak(c.Series(models.GranularitySemester)); ok {
			notes = append(notes, fmt.Sprintf("El análisis semestral revela que %s registró el mayor número de casos.", p.FormattedName))
		}
	case models.GranularityMonth:
		if p, ok := services.Peak(c.Series(models.GranularityMonth)); ok {
			notes = append(notes, fmt.Sprintf("El mes con mayor número de casos registrados fue %s.", p.FormattedName))
		}
	case models.GranularityDay:
		notes = append(notes, "La visualización diaria muestra la volatilidad en el registro de casos, con fluctuaciones significativas entre días consecutivos.")
	}
	return append(notes, fmt.Sprintf("Período analizado: %s - %s", summary.RangeStart, summary.RangeEnd))
}

func comparisonTable(rows []services.PeriodRow) *Table {
	table := &Table{
		Title:   "Comparativa de Períodos",
		Columns: []string{"Período", "Casos", "% del Total", "Variación respecto período anterior"},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, TableRow{
			Cells:     []string{r.Period, format.Thousands(r.Cases), r.Share + "%", VariationLabel(r)},
			Direction: r.Direction,
		})
	}
	return table
}

// VariationLabel renders the change column: an arrow and the percentage,
// "→ 0%" when flat, "-" when there is no previous period to compare.
func VariationLabel(r services.PeriodRow) string {
	switch r.Direction {
	case services.TrendIncreasing:
		return "↑ " + r.Variation
	case services.TrendDecreasing:
		return "↓ " + strings.TrimPrefix(r.Variation, "-")
	case services.TrendStable:
		return "→ 0%"
	}
	return r.Variation
}
