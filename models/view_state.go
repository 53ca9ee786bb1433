// models/view_state.go
package models

import "encoding/json"

// PageName identifies a dashboard page; it is also the last path segment of
// the page route.
type PageName string

const (
	PageOverview PageName = "general"
	PageLocation PageName = "localizacion"
	PageTimeline PageName = "tiempo"
)

// Pages lists the dashboard pages in sidebar order.
var Pages = []PageName{PageOverview, PageLocation, PageTimeline}

// Valid reports whether p is a known page.
func (p PageName) Valid() bool {
	for _, known := range Pages {
		if p == known {
			return true
		}
	}
	return false
}

// LoadStatus is the page's load state machine: Loading -> Ready | Failed.
type LoadStatus string

const (
	StatusLoading LoadStatus = "loading"
	StatusReady   LoadStatus = "ready"
	StatusFailed  LoadStatus = "failed"
)

// ViewType toggles the location page between map and chart.
type ViewType string

const (
	ViewMap   ViewType = "map"
	ViewChart ViewType = "chart"
)

// ChartStyle is the chart-type toggle of the age detail and timeline charts.
type ChartStyle string

const (
	ChartLine ChartStyle = "line"
	ChartBar  ChartStyle = "bar"
	ChartArea ChartStyle = "area"
)

// PageViewState is the navigational state owned by one mounted page.
type PageViewState struct {
	ActiveTab        string     `json:"active_tab"`
	ViewType         ViewType   `json:"view_type,omitempty"`
	SelectedSemester string     `json:"selected_semester,omitempty"`
	SelectedEntity   *string    `json:"selected_entity"`
	ChartStyle       ChartStyle `json:"chart_style,omitempty"`
}

// ViewRequest carries the transitions asked for by one request. Nil fields
// leave the state untouched. ClearEntity returns a drill-down to the
// department level.
type ViewRequest struct {
	Tab         *string
	ViewType    *ViewType
	Semester    *string
	Entity      *string
	ClearEntity bool
	ChartStyle  *ChartStyle
}

// Empty reports whether the request asks for no transition.
func (r ViewRequest) Empty() bool {
	return r.Tab == nil && r.ViewType == nil && r.Semester == nil &&
		r.Entity == nil && !r.ClearEntity && r.ChartStyle == nil
}

// PageSnapshot is what the page-state store keeps for a mounted page: its
// view state and the raw responses of its fetch batch.
type PageSnapshot struct {
	Page   PageName        `json:"page"`
	Status LoadStatus      `json:"status"`
	State  PageViewState   `json:"state"`
	Raw    json.RawMessage `json:"raw"`
}
