package presenter

import (
	"fmt"
	"net/url"

	"covid-dashboard/models"
	"covid-dashboard/models/geo"
	services "covid-dashboard/service"
)

// PageView is everything the shell needs to draw one page.
type PageView struct {
	Page     models.PageName      `json:"page"`
	Title    string               `json:"title"`
	Subtitle string               `json:"subtitle,omitempty"`
	Status   models.LoadStatus    `json:"status"`
	Error    string               `json:"error,omitempty"`
	State    models.PageViewState `json:"state"`
	Tabs     []Tab                `json:"tabs,omitempty"`
	Controls []Control            `json:"controls,omitempty"`
	Stats    []Stat               `json:"stats,omitempty"`
	Charts   []ChartSpec          `json:"charts,omitempty"`
	Table    *Table               `json:"table,omitempty"`
	Links    []Link               `json:"links,omitempty"`
	Notes    []string             `json:"notes,omitempty"`
}

// Tab is one entry of the page's tab bar.
type Tab struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
	Query  string `json:"query"`
}

// Control is a toggle group or a select; every option is a query string
// that performs the transition.
type Control struct {
	Param   string   `json:"param"`
	Label   string   `json:"label,omitempty"`
	Select  bool     `json:"select,omitempty"`
	Options []Option `json:"options"`
}

type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
	Query    string `json:"query"`
}

// Stat is a headline figure card.
type Stat struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Accent string `json:"accent,omitempty"`
}

type Table struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

// TableRow holds display cells. Direction marks a change column.
type TableRow struct {
	Cells     []string                `json:"cells"`
	Direction services.TrendDirection `json:"direction,omitempty"`
}

type Link struct {
	Label string `json:"label"`
	Query string `json:"query"`
}

// Page titles.
const (
	OverviewTitle = "Dashboard COVID-19"
	LocationTitle = "COVID-19 Dashboard by Location"
	TimelineTitle = "Evolución Temporal COVID-19"
)

// Loading messages.
const (
	OverviewLoading = "Cargando datos del dashboard..."
	LocationLoading = "Loading geographic data..."
	TimelineLoading = "Cargando datos temporales..."
)

// Builder turns page controllers into views. Geo is the boundary dataset
// drawn by the location map; it may be nil.
type Builder struct {
	Geo     *geo.FeatureCollection
	MapName string
}

// DefaultMapName is the name the boundary map is registered under.
const DefaultMapName = "colombia"

func NewBuilder(fc *geo.FeatureCollection) *Builder {
	return &Builder{Geo: fc, MapName: DefaultMapName}
}

// Build renders the current view of ctrl. A failed page shows only its
// error message; a loading page only its title and loading note.
func (b *Builder) Build(ctrl services.PageController) (PageView, error) {
	view := PageView{
		Page:   ctrl.Page(),
		Status: ctrl.Status(),
		State:  ctrl.State(),
	}
	switch ctrl.Page() {
	case models.PageOverview:
		view.Title = OverviewTitle
	case models.PageLocation:
		view.Title = LocationTitle
	case models.PageTimeline:
		view.Title = TimelineTitle
	}

	switch ctrl.Status() {
	case models.StatusFailed:
		view.Error = ctrl.ErrorMessage()
		return view, nil
	case models.StatusLoading:
		view.Notes = []string{loadingMessage(ctrl.Page())}
		return view, nil
	}

	switch c := ctrl.(type) {
	case *services.OverviewController:
		buildOverview(&view, c)
	case *services.LocationController:
		b.buildLocation(&view, c)
	case *services.TimelineController:
		buildTimeline(&view, c)
	default:
		return PageView{}, fmt.Errorf("no view for page %q", ctrl.Page())
	}
	return view, nil
}

func loadingMessage(page models.PageName) string {
	switch page {
	case models.PageLocation:
		return LocationLoading
	case models.PageTimeline:
		return TimelineLoading
	}
	return OverviewLoading
}

func query(kv ...string) string {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v.Encode()
}

func tabs(active string, idLabels ...string) []Tab {
	out := make([]Tab, 0, len(idLabels)/2)
	for i := 0; i+1 < len(idLabels); i += 2 {
		id := idLabels[i]
		out = append(out, Tab{ID: id, Label: idLabels[i+1], Active: id == active, Query: query("tab", id)})
	}
	return out
}

func toggle(param, label, selected string, valueLabels ...string) Control {
	c := Control{Param: param, Label: label}
	for i := 0; i+1 < len(valueLabels); i += 2 {
		value := valueLabels[i]
		c.Options = append(c.Options, Option{
			Value:    value,
			Label:    valueLabels[i+1],
			Selected: value == selected,
			Query:    query(param, value),
		})
	}
	return c
}
