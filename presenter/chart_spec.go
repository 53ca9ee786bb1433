package presenter

import (
	"strconv"

	"covid-dashboard/models"
	"covid-dashboard/presenter/format"
)

// ChartKind selects how a ChartSpec is drawn.
type ChartKind string

const (
	KindPie           ChartKind = "pie"
	KindDonut         ChartKind = "donut"
	KindBar           ChartKind = "bar"
	KindHorizontalBar ChartKind = "horizontal_bar"
	KindLine          ChartKind = "line"
	KindArea          ChartKind = "area"
	KindMap           ChartKind = "map"
)

// ValueFormat selects how values are written in labels and tooltips.
type ValueFormat string

const (
	// ValuePercent: "12.34%".
	ValuePercent ValueFormat = "percent"
	// ValueAbbreviated: "1.5M", "2.5K", "42".
	ValueAbbreviated ValueFormat = "abbreviated"
	// ValueThousands: "1.234.567".
	ValueThousands ValueFormat = "thousands"
)

// Format renders v in the given format.
func (f ValueFormat) Format(v float64) string {
	switch f {
	case ValuePercent:
		return format.Percent(v)
	case ValueAbbreviated:
		return format.Number(v)
	}
	return format.Thousands(v)
}

// Datum is one plotted value. Color is set when the chart colors each item
// individually.
type Datum struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Color string  `json:"color,omitempty"`
}

// Axis binds a data field to a chart axis. Interval is the label interval
// (0 shows every label); Rotate tilts the labels in degrees.
type Axis struct {
	Key      string  `json:"key"`
	Name     string  `json:"name,omitempty"`
	Interval int     `json:"interval"`
	Rotate   float64 `json:"rotate,omitempty"`
}

// ColorLegend is the palette and the quantile thresholds of a map.
type ColorLegend struct {
	Palette    []string  `json:"palette"`
	Thresholds []float64 `json:"thresholds,omitempty"`
	Constant   string    `json:"constant,omitempty"`
}

// ChartSpec is a renderer-independent chart description.
type ChartSpec struct {
	ID          string      `json:"id"`
	Kind        ChartKind   `json:"kind"`
	Title       string      `json:"title"`
	SeriesName  string      `json:"series_name"`
	X           Axis        `json:"x"`
	Y           Axis        `json:"y"`
	Data        []Datum     `json:"data"`
	SeriesColor string      `json:"series_color,omitempty"`
	FillColor   string      `json:"fill_color,omitempty"`
	Tooltip     string      `json:"tooltip"`
	ValueFormat ValueFormat `json:"value_format"`
	Legend      bool        `json:"legend"`

	// Map charts only.
	MapName string       `json:"map_name,omitempty"`
	Regions *RegionJoin  `json:"regions,omitempty"`
	Scale   *ColorLegend `json:"scale,omitempty"`
}

// Empty reports whether there is nothing to plot.
func (c ChartSpec) Empty() bool {
	return len(c.Data) == 0
}

// Fixed palettes.
var (
	EstadoColors       = []string{"#4CAF50", "#FF5252", "#9E9E9E", "#2196F3"}
	SexoColors         = []string{"#FF80AB", "#42A5F5"}
	TipoContagioColors = []string{"#FF6B6B", "#4DB6AC", "#FFD54F"}
)

const (
	AgeColor          = "#8884d8"
	DepartmentColor   = "#8884d8"
	MunicipalityColor = "#82ca9d"
	MapHoverColor     = "#F53"
	MapBorderColor    = "#FFFFFF"
)

// TimelineColors is the series color of each granularity.
var TimelineColors = map[models.Granularity]string{
	models.GranularityYear:     "#3498db",
	models.GranularitySemester: "#2ecc71",
	models.GranularityMonth:    "#e74c3c",
	models.GranularityDay:      "#9b59b6",
}

// AreaFill is the translucent fill drawn under an area series.
func AreaFill(color string) string {
	return color + "80"
}

// TimelineAxis is the category axis of a timeline chart: days show one label
// every 30 and tilt them, months one every 2.
func TimelineAxis(gran models.Granularity) Axis {
	axis := Axis{Key: "formattedName"}
	switch gran {
	case models.GranularityDay:
		axis.Interval = 30
		axis.Rotate = -45
	case models.GranularityMonth:
		axis.Interval = 2
	}
	return axis
}

// paletteData colors each entry by position, cycling the palette.
func paletteData(series []models.CategoryCount, palette []string, vf ValueFormat) []Datum {
	data := make([]Datum, 0, len(series))
	for i, c := range series {
		d := Datum{Name: c.Name, Value: c.Value, Label: vf.Format(c.Value)}
		if len(palette) > 0 {
			d.Color = palette[i%len(palette)]
		}
		data = append(data, d)
	}
	return data
}

func plainData(series []models.CategoryCount, vf ValueFormat) []Datum {
	return paletteData(series, nil, vf)
}

func timeData(points []models.TimePoint) []Datum {
	data := make([]Datum, 0, len(points))
	for _, p := range points {
		data = append(data, Datum{Name: p.FormattedName, Value: p.Cases, Label: format.Thousands(p.Cases)})
	}
	return data
}

func ageData(points []models.AgePoint) []Datum {
	data := make([]Datum, 0, len(points))
	for _, p := range points {
		data = append(data, Datum{Name: strconv.Itoa(p.Age), Value: p.Value, Label: format.Percent(p.Value)})
	}
	return data
}
