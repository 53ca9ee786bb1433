package presenter

import (
	"fmt"
	"strings"

	"covid-dashboard/models"
	"covid-dashboard/models/geo"
	services "covid-dashboard/service"
	"covid-dashboard/transform"
)

const casesTooltip = "{b}<br/>Cases: {c}"

func (b *Builder) buildLocation(view *PageView, c *services.LocationController) {
	state := c.State()

	view.Subtitle = "Geographic visualization of epidemiological data"
	view.Tabs = tabs(state.ActiveTab,
		services.LocationTabDepartments, "Departments",
		services.LocationTabMunicipalities, "Municipalities",
		services.LocationTabCountries, "Countries",
	)
	view.Controls = []Control{
		toggle("view", "", string(state.ViewType),
			string(models.ViewMap), "Map",
			string(models.ViewChart), "Chart",
		),
	}

	switch state.ActiveTab {
	case services.LocationTabMunicipalities:
		view.Charts = []ChartSpec{rankingChart("municipios", "Top 10 Municipalities with Most Cases", c.Top10(), MunicipalityColor)}
	case services.LocationTabCountries:
		buildCountries(view, c.ChartData())
	default:
		b.buildDepartments(view, c)
	}
}

func (b *Builder) buildDepartments(view *PageView, c *services.LocationController) {
	state := c.State()
	semester := state.SelectedSemester

	semesters := toggle("semester", "Semester:", semester)
	semesters.Select = true
	for _, s := range c.Semesters() {
		semesters.Options = append(semesters.Options, Option{Value: s, Label: s, Selected: s == semester, Query: query("semester", s)})
	}
	view.Controls = append(view.Controls, semesters)

	if state.ViewType == models.ViewMap {
		title := "Cases by Department"
		if semester != "" {
			title += " - " + semester
		}
		chart, join := b.mapChart(title, c.CurrentData(), c.CurrentSeries())
		view.Charts = []ChartSpec{chart}
		if n := len(join.Unknown); n > 0 {
			view.Notes = append(view.Notes, fmt.Sprintf("%d map regions have no readable name.", n))
		}
		if len(join.UnmatchedKeys) > 0 {
			view.Notes = append(view.Notes, "No map region for: "+strings.Join(join.UnmatchedKeys, ", "))
		}
		return
	}

	if entity := c.SelectedEntity(); entity != "" {
		view.Charts = []ChartSpec{rankingChart("departamento", fmt.Sprintf("Municipalities of %s - %s", entity, semester), c.ChartData(), DepartmentColor)}
		view.Links = []Link{{Label: "Return to all departments", Query: query("entity", "")}}
		return
	}
	view.Charts = []ChartSpec{rankingChart("departamentos", "Top 10 Departments with Most Cases - "+semester, c.Top10(), DepartmentColor)}
}

func rankingChart(id, title string, series []models.CategoryCount, color string) ChartSpec {
	return ChartSpec{
		ID:          id,
		Kind:        KindHorizontalBar,
		Title:       title,
		SeriesName:  "Cases",
		X:           Axis{Key: "value"},
		Y:           Axis{Key: "name"},
		Data:        plainData(series, ValueAbbreviated),
		SeriesColor: color,
		Tooltip:     casesTooltip,
		ValueFormat: ValueAbbreviated,
	}
}

func buildCountries(view *PageView, series []models.CategoryCount) {
	view.Charts = []ChartSpec{{
		ID:          "paises",
		Kind:        KindPie,
		Title:       "Cases by Country",
		SeriesName:  "Cases",
		X:           Axis{Key: "name"},
		Y:           Axis{Key: "value"},
		Data:        paletteData(series, transform.HeatPalette, ValueAbbreviated),
		Tooltip:     casesTooltip,
		ValueFormat: ValueAbbreviated,
	}}

	table := &Table{Title: "Details by Country", Columns: []string{"Country", "Cases"}}
	for _, s := range series {
		table.Rows = append(table.Rows, TableRow{Cells: []string{s.Name, ValueAbbreviated.Format(s.Value)}})
	}
	view.Table = table
}

// mapChart joins the boundary features with data. The color scale is built
// from the displayed series so the map and the legend agree.
func (b *Builder) mapChart(title string, data models.RawAggregate, series []models.CategoryCount) (ChartSpec, RegionJoin) {
	fc := geo.FeatureCollection{Type: "FeatureCollection"}
	if b.Geo != nil {
		fc = *b.Geo
	}
	scale := transform.ColorScaleFor(series)
	join := JoinRegions(fc, data, scale)

	legend := &ColorLegend{Palette: transform.HeatPalette, Thresholds: scale.Thresholds}
	if constant, ok := scale.Constant(); ok {
		legend.Constant = constant
	}

	chart := ChartSpec{
		ID:          "mapa",
		Kind:        KindMap,
		Title:       title,
		SeriesName:  "Cases",
		Tooltip:     "{b}: {c} cases",
		ValueFormat: ValueAbbreviated,
		MapName:     b.MapName,
		Regions:     &join,
		Scale:       legend,
	}
	for _, r := range join.Regions {
		chart.Data = append(chart.Data, Datum{Name: r.Key, Value: r.Value, Label: r.Label, Color: r.Color})
	}
	return chart, join
}
