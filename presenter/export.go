package presenter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"covid-dashboard/models"
	services "covid-dashboard/service"
)

// ExportFileName is the download name of a page export.
func ExportFileName(ctrl services.PageController) string {
	state := ctrl.State()
	name := fmt.Sprintf("covid-%s-%s", ctrl.Page(), state.ActiveTab)
	if state.SelectedSemester != "" && state.ActiveTab == services.LocationTabDepartments {
		name += "-" + state.SelectedSemester
	}
	if state.SelectedEntity != nil {
		name += "-" + *state.SelectedEntity
	}
	return name + ".csv"
}

// WritePageCSV writes the data behind the current view of a Ready page:
// the category series of the overview tab, the ranked series of the
// location tab, or the period comparison of the timeline tab.
func WritePageCSV(w io.Writer, ctrl services.PageController) error {
	if ctrl.Status() != models.StatusReady {
		return services.ErrNotReady
	}
	switch c := ctrl.(type) {
	case *services.OverviewController:
		data := c.Data()
		if c.State().ActiveTab == services.OverviewTabDetail {
			return WriteAgeCSV(w, data.Edad)
		}
		return WriteDimensionsCSV(w, []Dimension{
			{Name: "estado", Series: data.Estado},
			{Name: "sexo", Series: data.Sexo},
			{Name: "tipo_contagio", Series: data.TipoContagio},
			{Name: "grupo_edad", Series: data.EdadGroups},
		})
	case *services.LocationController:
		return WriteSeriesCSV(w, []string{"Name", "Cases"}, c.ChartData())
	case *services.TimelineController:
		return WritePeriodComparisonCSV(w, c.Comparison())
	}
	return fmt.Errorf("no export for page %q", ctrl.Page())
}

// Dimension is one named category series of a multi-series export.
type Dimension struct {
	Name   string
	Series []models.CategoryCount
}

// WriteDimensionsCSV emits several category series as long-format rows.
func WriteDimensionsCSV(w io.Writer, dims []Dimension) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Dimension", "Category", "Value"}); err != nil {
		return err
	}
	for _, d := range dims {
		for _, c := range d.Series {
			if err := writer.Write([]string{d.Name, c.Name, formatFloat(c.Value)}); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSeriesCSV emits a single category series.
func WriteSeriesCSV(w io.Writer, header []string, series []models.CategoryCount) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, c := range series {
		if err := writer.Write([]string{c.Name, formatFloat(c.Value)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteAgeCSV emits the per-age distribution.
func WriteAgeCSV(w io.Writer, points []models.AgePoint) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Edad", "Porcentaje"}); err != nil {
		return err
	}
	for _, p := range points {
		if err := writer.Write([]string{strconv.Itoa(p.Age), formatFloat(p.Value)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WritePeriodComparisonCSV emits the period comparison table.
func WritePeriodComparisonCSV(w io.Writer, rows []services.PeriodRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Periodo", "Casos", "Porcentaje del total", "Variacion"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writer.Write([]string{r.Period, formatFloat(r.Cases), r.Share, r.Variation}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
