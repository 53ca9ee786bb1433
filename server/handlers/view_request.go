package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"covid-dashboard/models"
)

// Query arguments of the page routes.
const (
	TAB_QUERY_ARG      = "tab"
	VIEW_QUERY_ARG     = "view"
	SEMESTER_QUERY_ARG = "semester"
	ENTITY_QUERY_ARG   = "entity"
	CHART_QUERY_ARG    = "chart"
	RELOAD_QUERY_ARG   = "reload"
)

// ParseViewRequest reads the transitions asked for by a query string. Only
// present arguments become transitions; an empty entity clears the
// drill-down. Values are validated by the page controller.
func ParseViewRequest(vals url.Values) (req models.ViewRequest, reload bool, err error) {
	if vals.Has(TAB_QUERY_ARG) {
		tab := vals.Get(TAB_QUERY_ARG)
		req.Tab = &tab
	}
	if vals.Has(VIEW_QUERY_ARG) {
		view := models.ViewType(vals.Get(VIEW_QUERY_ARG))
		req.ViewType = &view
	}
	if vals.Has(SEMESTER_QUERY_ARG) {
		semester := vals.Get(SEMESTER_QUERY_ARG)
		req.Semester = &semester
	}
	if vals.Has(ENTITY_QUERY_ARG) {
		if entity := vals.Get(ENTITY_QUERY_ARG); entity != "" {
			req.Entity = &entity
		} else {
			req.ClearEntity = true
		}
	}
	if vals.Has(CHART_QUERY_ARG) {
		style := models.ChartStyle(vals.Get(CHART_QUERY_ARG))
		req.ChartStyle = &style
	}
	if v := vals.Get(RELOAD_QUERY_ARG); v != "" {
		reload, err = strconv.ParseBool(v)
		if err != nil {
			return req, false, fmt.Errorf("invalid argument %s: %q", RELOAD_QUERY_ARG, v)
		}
	}
	return req, reload, nil
}
