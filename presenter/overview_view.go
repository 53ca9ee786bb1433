package presenter

import (
	"fmt"

	"covid-dashboard/models"
	services "covid-dashboard/service"
)

const percentTooltip = "{b}: {c}%"

func buildOverview(view *PageView, c *services.OverviewController) {
	data := c.Data()
	state := c.State()

	view.Subtitle = "Visualización de datos epidemiológicos actualizada"
	view.Tabs = tabs(state.ActiveTab,
		services.OverviewTabGeneral, "Vista General",
		services.OverviewTabDetail, "Detalle por Edad",
	)

	if state.ActiveTab == services.OverviewTabDetail {
		buildAgeDetail(view, data, state.ChartStyle)
		return
	}

	view.Stats = []Stat{
		{Label: "Recuperados", Value: services.RecoveryRate(data.Estado) + "%", Accent: "green"},
		{Label: "Fallecidos", Value: services.MortalityRate(data.Estado) + "%", Accent: "red"},
		{Label: "Casos Activos", Value: services.ActiveRate(data.Estado) + "%", Accent: "blue"},
		{Label: "Grupo de edad con más casos", Value: services.LargestAgeGroup(data.EdadGroups), Accent: "yellow"},
	}
	view.Charts = []ChartSpec{
		{
			ID:          "estado",
			Kind:        KindDonut,
			Title:       "Estado de los Casos",
			SeriesName:  "Estado",
			X:           Axis{Key: "name"},
			Y:           Axis{Key: "value"},
			Data:        paletteData(data.Estado, EstadoColors, ValuePercent),
			Tooltip:     percentTooltip,
			ValueFormat: ValuePercent,
			Legend:      true,
		},
		{
			ID:          "sexo",
			Kind:        KindHorizontalBar,
			Title:       "Distribución por Sexo",
			SeriesName:  "Sexo",
			X:           Axis{Key: "value"},
			Y:           Axis{Key: "name"},
			Data:        paletteData(data.Sexo, SexoColors, ValuePercent),
			Tooltip:     percentTooltip,
			ValueFormat: ValuePercent,
		},
		{
			ID:          "tipo_contagio",
			Kind:        KindHorizontalBar,
			Title:       "Tipo de Contagio",
			SeriesName:  "Tipo de contagio",
			X:           Axis{Key: "value"},
			Y:           Axis{Key: "name"},
			Data:        paletteData(data.TipoContagio, TipoContagioColors, ValuePercent),
			Tooltip:     percentTooltip,
			ValueFormat: ValuePercent,
		},
		{
			ID:          "grupos_edad",
			Kind:        KindBar,
			Title:       "Distribución por Grupo de Edad",
			SeriesName:  "Porcentaje",
			X:           Axis{Key: "name"},
			Y:           Axis{Key: "value"},
			Data:        plainData(data.EdadGroups, ValuePercent),
			SeriesColor: AgeColor,
			Tooltip:     percentTooltip,
			ValueFormat: ValuePercent,
		},
	}
	view.Links = []Link{{Label: "Ver detalle completo", Query: query("tab", services.OverviewTabDetail)}}
}

func buildAgeDetail(view *PageView, data services.OverviewData, style models.ChartStyle) {
	view.Controls = []Control{
		toggle("chart", "", string(style),
			string(models.ChartLine), "Línea",
			string(models.ChartBar), "Barras",
		),
	}

	chart := ChartSpec{
		ID:          "edad",
		Kind:        KindLine,
		Title:       "Distribución Detallada por Edad",
		SeriesName:  "Porcentaje",
		X:           Axis{Key: "age", Name: "Edad"},
		Y:           Axis{Key: "value"},
		Data:        ageData(data.Edad),
		SeriesColor: AgeColor,
		Tooltip:     "Edad: {b} años<br/>{c}%",
		ValueFormat: ValuePercent,
	}
	if style == models.ChartBar {
		chart.Kind = KindBar
		chart.X.Interval = 9
	}
	view.Charts = []ChartSpec{chart}

	view.Notes = []string{
		"Este gráfico muestra el porcentaje de casos por cada edad específica.",
		fmt.Sprintf("El grupo de edad con mayor porcentaje de casos es el de %s.", services.LargestAgeGroup(data.EdadGroups)),
		fmt.Sprintf("Los menores de 10 años representan aproximadamente el %s%% del total de casos.", services.AgeGroupShare(data.EdadGroups, "0-9")),
		fmt.Sprintf("Las personas mayores de 80 años constituyen el %s%% del total de casos.", services.AgeGroupShare(data.EdadGroups, "80+")),
	}
	if n := len(data.DiscardedAges); n > 0 {
		view.Notes = append(view.Notes, fmt.Sprintf("%d edades fuera de los grupos estándar no se incluyen en los grupos.", n))
	}
	if n := len(data.RejectedAgeKeys); n > 0 {
		view.Notes = append(view.Notes, fmt.Sprintf("%d claves de edad no numéricas fueron ignoradas.", n))
	}
}
