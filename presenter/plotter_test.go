package presenter

import (
	"strings"
	"testing"

	"covid-dashboard/models"
	"covid-dashboard/models/modelstest"
	"covid-dashboard/transform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotter_RendersItemColors(t *testing.T) {
	spec := ChartSpec{
		ID:          "estado",
		Kind:        KindDonut,
		Title:       "Estado de los Casos",
		SeriesName:  "Estado",
		Data:        paletteData([]models.CategoryCount{{Name: "RECUPERADO", Value: 95}, {Name: "FALLECIDO", Value: 5}}, EstadoColors, ValuePercent),
		Tooltip:     percentTooltip,
		ValueFormat: ValuePercent,
		Legend:      true,
	}

	rendered, err := NewPlotter(nil).Render([]ChartSpec{spec})

	require.NoError(t, err)
	require.Len(t, rendered, 1)
	rc := rendered[0]
	assert.Equal(t, "estado", rc.ID)
	assert.Contains(t, rc.Option, "RECUPERADO")
	assert.Contains(t, rc.Option, EstadoColors[0])
	assert.Contains(t, rc.Option, EstadoColors[1])
	assert.Contains(t, rc.Option, "40%")
	assert.Contains(t, string(rc.Element), "estado")
	assert.Empty(t, rc.Preamble)
}

func TestPlotter_AllKinds(t *testing.T) {
	data := []Datum{{Name: "2020", Value: 10}, {Name: "2021", Value: 20}}
	p := NewPlotter(nil)

	for _, kind := range []ChartKind{KindPie, KindDonut, KindBar, KindHorizontalBar, KindLine, KindArea} {
		chart, err := p.Chart(ChartSpec{ID: "c", Kind: kind, Data: data, SeriesColor: "#3498db", FillColor: AreaFill("#3498db")})
		require.NoError(t, err, kind)
		assert.NotNil(t, chart, kind)
	}
}

func TestPlotter_UnknownKind(t *testing.T) {
	_, err := NewPlotter(nil).Render([]ChartSpec{{ID: "x", Kind: "radar"}})

	assert.Error(t, err)
}

func TestPlotter_AreaFill(t *testing.T) {
	spec := TimelineChart([]models.TimePoint{{TimeBucket: models.TimeBucket{FormattedName: "2020"}, Cases: 5}}, models.GranularityYear, models.ChartArea, "Casos por Año")

	rendered, err := NewPlotter(nil).Render([]ChartSpec{spec})

	require.NoError(t, err)
	assert.Contains(t, rendered[0].Option, AreaFill(TimelineColors[models.GranularityYear]))
}

func TestPlotter_MapRegistersNamedFeatures(t *testing.T) {
	// Arrange
	fc := testCollection()
	data := modelstest.Aggregate("ANTIOQUIA", 100.0, "VALLE", 50.0)
	series := transform.ToSeries(data, transform.SortValueDesc)
	b := &Builder{Geo: &fc, MapName: "colombia"}
	spec, _ := b.mapChart("Cases by Department", data, series)

	// Act
	rendered, err := NewPlotter(&fc).Render([]ChartSpec{spec})

	// Assert
	require.NoError(t, err)
	rc := rendered[0]
	preamble := string(rc.Preamble)
	assert.True(t, strings.HasPrefix(preamble, `echarts.registerMap("colombia", `))
	assert.Contains(t, preamble, `"name":"ANTIOQUIA"`)
	assert.Contains(t, preamble, `"name":"UNKNOWN-3"`)
	assert.Contains(t, rc.Option, "ANTIOQUIA")
	assert.Contains(t, rc.Option, transform.DefaultColor)
	assert.Contains(t, string(rc.Script), "click")
}

func TestTooltipFormatter_UsesSingleQuotes(t *testing.T) {
	f := string(tooltipFormatter(ChartSpec{Tooltip: "{b}: {c} casos", ValueFormat: ValueAbbreviated}))

	assert.Contains(t, f, `('{b}: {c} casos')`)
	assert.Contains(t, f, `'M'`)
	assert.NotContains(t, f, `"`)
}

func TestJsString_KeepsQuotesAndBackslashes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "('')"},
		{"Casos d'Or", "('Casos d' + String.fromCharCode(39) + 'Or')"},
		{`a\b`, "('a' + String.fromCharCode(92) + 'b')"},
		{"'x'", "(String.fromCharCode(39) + 'x' + String.fromCharCode(39))"},
		{"uno\ndos", "('uno' + String.fromCharCode(10) + 'dos')"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := jsString(tt.in)

			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "\\")
		})
	}
}
