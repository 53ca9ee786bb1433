package presenter

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/event"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/go-echarts/go-echarts/v2/types"

	"covid-dashboard/models/geo"
)

// EchartsAssetURL is the echarts build the rendered snippets expect.
const EchartsAssetURL = "https://go-echarts.github.io/go-echarts-assets/assets/" + opts.EchartsJS

// Chart is a go-echarts chart.
type Chart interface {
	RenderSnippet() render.ChartSnippet
}

// RenderedChart is a chart ready to be embedded in a page. Preamble must
// run before Script.
type RenderedChart struct {
	ID       string
	Title    string
	Element  template.HTML
	Preamble template.JS
	Script   template.HTML
	Option   string
}

// Plotter turns ChartSpecs into go-echarts charts.
type Plotter struct {
	Width  string
	Height string
	// Geo is registered under each map chart's MapName.
	Geo *geo.FeatureCollection
}

func NewPlotter(fc *geo.FeatureCollection) *Plotter {
	return &Plotter{Width: "100%", Height: "400px", Geo: fc}
}

// Render builds and renders every chart of a view.
func (p *Plotter) Render(specs []ChartSpec) ([]RenderedChart, error) {
	out := make([]RenderedChart, 0, len(specs))
	for _, spec := range specs {
		chart, err := p.Chart(spec)
		if err != nil {
			return nil, err
		}
		snippet := chart.RenderSnippet()
		rc := RenderedChart{
			ID:      spec.ID,
			Title:   spec.Title,
			Element: template.HTML(snippet.Element),
			Script:  template.HTML(snippet.Script),
			Option:  snippet.Option,
		}
		if spec.Kind == KindMap {
			preamble, err := p.mapRegistration(spec)
			if err != nil {
				return nil, err
			}
			rc.Preamble = preamble
		}
		out = append(out, rc)
	}
	return out, nil
}

// Chart builds the go-echarts chart of one spec.
func (p *Plotter) Chart(spec ChartSpec) (Chart, error) {
	switch spec.Kind {
	case KindBar, KindHorizontalBar:
		return p.bar(spec), nil
	case KindLine, KindArea:
		return p.line(spec), nil
	case KindPie, KindDonut:
		return p.pie(spec), nil
	case KindMap:
		return p.geoMap(spec), nil
	}
	return nil, fmt.Errorf("unsupported chart kind %q", spec.Kind)
}

func (p *Plotter) globalOpts(spec ChartSpec) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: spec.Title,
			Width:     p.Width,
			Height:    p.Height,
			ChartID:   spec.ID,
		}),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: tooltipFormatter(spec),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(spec.Legend), Bottom: "0"}),
	}
}

func categoryLabel(axis Axis) *opts.AxisLabel {
	return &opts.AxisLabel{Interval: strconv.Itoa(axis.Interval), Rotate: axis.Rotate}
}

func names(data []Datum) []string {
	out := make([]string, 0, len(data))
	for _, d := range data {
		out = append(out, d.Name)
	}
	return out
}

func (p *Plotter) bar(spec ChartSpec) *charts.Bar {
	bar := charts.NewBar()
	options := p.globalOpts(spec)
	if spec.Kind == KindHorizontalBar {
		options = append(options,
			charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: spec.X.Name}),
			charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: spec.Y.Name, Inverse: opts.Bool(true), AxisLabel: categoryLabel(spec.Y)}),
		)
	} else {
		options = append(options,
			charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: spec.X.Name, AxisLabel: categoryLabel(spec.X)}),
			charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: spec.Y.Name}),
		)
	}
	bar.SetGlobalOptions(options...)

	items := make([]opts.BarData, 0, len(spec.Data))
	for _, d := range spec.Data {
		item := opts.BarData{Name: d.Name, Value: d.Value}
		if d.Color != "" {
			item.ItemStyle = &opts.ItemStyle{Color: d.Color}
		}
		items = append(items, item)
	}

	var series []charts.SeriesOpts
	if spec.SeriesColor != "" {
		series = append(series, charts.WithItemStyleOpts(opts.ItemStyle{Color: spec.SeriesColor}))
	}
	bar.SetXAxis(names(spec.Data)).AddSeries(spec.SeriesName, items, series...)
	if spec.Kind == KindHorizontalBar {
		bar.XYReversal()
	}
	return bar
}

func (p *Plotter) line(spec ChartSpec) *charts.Line {
	line := charts.NewLine()
	options := append(p.globalOpts(spec),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: spec.X.Name, AxisLabel: categoryLabel(spec.X)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: spec.Y.Name}),
	)
	line.SetGlobalOptions(options...)

	items := make([]opts.LineData, 0, len(spec.Data))
	for _, d := range spec.Data {
		items = append(items, opts.LineData{Name: d.Name, Value: d.Value})
	}

	series := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: spec.SeriesColor, Width: 2}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: spec.SeriesColor}),
	}
	if spec.Kind == KindArea {
		series = append(series, charts.WithAreaStyleOpts(opts.AreaStyle{Color: spec.FillColor}))
	}
	line.SetXAxis(names(spec.Data)).AddSeries(spec.SeriesName, items, series...)
	return line
}

func (p *Plotter) pie(spec ChartSpec) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(p.globalOpts(spec)...)

	items := make([]opts.PieData, 0, len(spec.Data))
	for _, d := range spec.Data {
		item := opts.PieData{Name: d.Name, Value: d.Value}
		if d.Color != "" {
			item.ItemStyle = &opts.ItemStyle{Color: d.Color}
		}
		items = append(items, item)
	}

	radius := interface{}("65%")
	if spec.Kind == KindDonut {
		radius = []string{"40%", "65%"}
	}
	pie.AddSeries(spec.SeriesName, items,
		charts.WithPieChartOpts(opts.PieChart{Radius: radius}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)
	return pie
}

// mapItem is a map data item carrying its own fill color; opts.MapData has
// no item style.
type mapItem struct {
	Name      string         `json:"name"`
	Value     float64        `json:"value"`
	ItemStyle opts.ItemStyle `json:"itemStyle"`
}

// drillDownHandler selects the clicked department and switches to the
// municipality chart.
const drillDownHandler = `function (params) {
	if (!params.name || params.name.indexOf('` + UnknownRegion + `-') === 0) { return; }
	window.location.search = '?view=chart&entity=' + encodeURIComponent(params.name);
}`

func (p *Plotter) geoMap(spec ChartSpec) *charts.Map {
	m := charts.NewMap()
	m.RegisterMapType(spec.MapName)
	m.SetGlobalOptions(append(p.globalOpts(spec),
		charts.WithEventListeners(event.Listener{EventName: "click", Handler: opts.FuncOpts(drillDownHandler)}),
	)...)

	items := make([]mapItem, 0, len(spec.Data))
	for _, d := range spec.Data {
		items = append(items, mapItem{Name: d.Name, Value: d.Value, ItemStyle: opts.ItemStyle{AreaColor: d.Color, BorderColor: MapBorderColor, BorderWidth: 0.5}})
	}
	m.AddSeries(spec.SeriesName, nil,
		charts.WithSeriesOpts(func(s *charts.SingleSeries) {
			s.Data = items
			s.Roam = opts.Bool(true)
		}),
		charts.WithEmphasisOpts(opts.Emphasis{ItemStyle: &opts.ItemStyle{AreaColor: MapHoverColor}}),
	)
	return m
}

// mapRegistration registers the boundary features under the chart's map
// name, keyed the way the map items are named.
func (p *Plotter) mapRegistration(spec ChartSpec) (template.JS, error) {
	fc := geo.FeatureCollection{Type: "FeatureCollection"}
	if p.Geo != nil {
		fc = *p.Geo
	}
	if spec.Regions != nil {
		fc = spec.Regions.NamedFeatures(fc)
	}
	body, err := json.Marshal(fc)
	if err != nil {
		return "", fmt.Errorf("failed to encode map %s: %w", spec.MapName, err)
	}
	name, _ := json.Marshal(spec.MapName)
	return template.JS(fmt.Sprintf("echarts.registerMap(%s, %s);", name, body)), nil
}

// tooltipFormatter fills the chart's tooltip template, formatting {c} the
// way the chart's ValueFormat does. Function bodies end up inside a JSON
// string, so they only use single-quoted literals.
func tooltipFormatter(spec ChartSpec) types.FuncStr {
	return opts.FuncOpts(fmt.Sprintf(`function (params) {
	var v = Number(params.value);
	var c = %s;
	return %s.replace('{b}', params.name).replace('{c}', c).replace('{d}', params.percent);
}`, jsValueFormat(spec.ValueFormat), jsString(spec.Tooltip)))
}

func jsValueFormat(vf ValueFormat) string {
	switch vf {
	case ValuePercent:
		return `v.toFixed(2)`
	case ValueAbbreviated:
		return strings.Join([]string{
			`v >= 1000000 ? (v / 1000000).toFixed(1) + 'M'`,
			`v >= 1000 ? (v / 1000).toFixed(1) + 'K'`,
			`String(v)`,
		}, " : ")
	}
	return `v.toLocaleString('es-ES')`
}

// jsString renders s as a JS string expression. Quote, backslash and newline
// characters are spliced in with String.fromCharCode: the function body is
// JSON-encoded later, which would double any backslash escape written here.
func jsString(s string) string {
	var parts []string
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, "'"+lit.String()+"'")
			lit.Reset()
		}
	}
	for _, r := range s {
		switch r {
		case '\'', '\\', '\n', '\r':
			flush()
			parts = append(parts, "String.fromCharCode("+strconv.Itoa(int(r))+")")
		default:
			lit.WriteRune(r)
		}
	}
	flush()
	if len(parts) == 0 {
		parts = append(parts, "''")
	}
	return "(" + strings.Join(parts, " + ") + ")"
}
