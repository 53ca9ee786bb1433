package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"covid-dashboard/models"
	"covid-dashboard/presenter"
	services "covid-dashboard/service"

	"github.com/gorilla/mux"
)

// PAGE_ROUTE_VAR is the mux variable holding the page name.
const PAGE_ROUTE_VAR = "page"

type DashboardHandler struct {
	dashboardService *services.DashboardService
	builder          *presenter.Builder
	plotter          *presenter.Plotter
	sessions         *SessionStore
}

func NewDashboardHandler(
	dashboardService *services.DashboardService,
	builder *presenter.Builder,
	plotter *presenter.Plotter,
	sessions *SessionStore) *DashboardHandler {

	return &DashboardHandler{
		dashboardService: dashboardService,
		builder:          builder,
		plotter:          plotter,
		sessions:         sessions,
	}
}

// requestError is a failure already mapped to an HTTP status.
type requestError struct {
	status int
	err    error
}

func (e *requestError) Error() string { return e.err.Error() }

// openPage mounts the requested page for the caller's session and applies
// the query's transitions. A Failed page is returned without applying
// anything.
func (h *DashboardHandler) openPage(w http.ResponseWriter, r *http.Request) (services.PageController, error) {
	page := models.PageName(mux.Vars(r)[PAGE_ROUTE_VAR])
	if !page.Valid() {
		return nil, &requestError{http.StatusNotFound, fmt.Errorf("unknown page %q", page)}
	}
	req, reload, err := ParseViewRequest(r.URL.Query())
	if err != nil {
		return nil, &requestError{http.StatusBadRequest, err}
	}
	session, err := h.sessions.ID(w, r)
	if err != nil {
		return nil, &requestError{http.StatusInternalServerError, err}
	}

	ctrl, lease, err := h.dashboardService.Open(r.Context(), session, page, reload)
	if err != nil {
		return nil, mapServiceError(err)
	}
	if ctrl.Status() != models.StatusReady || req.Empty() {
		return ctrl, nil
	}

	if err := ctrl.Apply(req); err != nil {
		return nil, mapServiceError(err)
	}
	if err := h.dashboardService.Save(r.Context(), lease, ctrl); err != nil {
		if errors.Is(err, services.ErrPageUnmounted) {
			return nil, mapServiceError(err)
		}
		log.Printf("[DashboardHandler] Failed to store %s view state: %v", page, err)
	}
	return ctrl, nil
}

func mapServiceError(err error) *requestError {
	switch {
	case errors.Is(err, services.ErrInvalidTransition):
		return &requestError{http.StatusBadRequest, err}
	case errors.Is(err, services.ErrNotReady), errors.Is(err, services.ErrPageUnmounted):
		return &requestError{http.StatusConflict, err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &requestError{http.StatusServiceUnavailable, err}
	}
	return &requestError{http.StatusInternalServerError, err}
}

func writeRequestError(w http.ResponseWriter, err error) {
	var reqErr *requestError
	if !errors.As(err, &reqErr) {
		reqErr = &requestError{http.StatusInternalServerError, err}
	}
	if reqErr.status >= http.StatusInternalServerError {
		log.Println("[DashboardHandler] Error serving page:", reqErr.err)
		http.Error(w, "Internal server error", reqErr.status)
		return
	}
	http.Error(w, reqErr.Error(), reqErr.status)
}

// pageStatus is the HTTP status of a rendered page.
func pageStatus(ctrl services.PageController) int {
	if ctrl.Status() == models.StatusFailed {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

// GetPage handles GET /dashboard/{page}
func (h *DashboardHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	ctrl, err := h.openPage(w, r)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	view, err := h.builder.Build(ctrl)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	charts, err := h.plotter.Render(view.Charts)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	shell := ShellPage{
		Nav:      Navigation(ctrl.Page()),
		View:     view,
		Charts:   charts,
		AssetURL: presenter.EchartsAssetURL,
	}
	if ctrl.Status() == models.StatusReady {
		shell.ExportURL = ExportPath(ctrl.Page())
	}

	var body bytes.Buffer
	if err := RenderShell(&body, shell); err != nil {
		writeRequestError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(pageStatus(ctrl))
	if _, err := body.WriteTo(w); err != nil {
		log.Println("[DashboardHandler] Error writing page:", err)
	}
}

// GetPageView handles GET /api/v1/pages/{page}
func (h *DashboardHandler) GetPageView(w http.ResponseWriter, r *http.Request) {
	ctrl, err := h.openPage(w, r)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	view, err := h.builder.Build(ctrl)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	writeJSON(w, pageStatus(ctrl), view)
}

// ExportPage handles GET /api/v1/pages/{page}/export.csv
func (h *DashboardHandler) ExportPage(w http.ResponseWriter, r *http.Request) {
	ctrl, err := h.openPage(w, r)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	if ctrl.Status() == models.StatusFailed {
		http.Error(w, ctrl.ErrorMessage(), http.StatusBadGateway)
		return
	}

	var body bytes.Buffer
	if err := presenter.WritePageCSV(&body, ctrl); err != nil {
		writeRequestError(w, mapServiceError(err))
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", presenter.ExportFileName(ctrl)))
	w.WriteHeader(http.StatusOK)
	if _, err := body.WriteTo(w); err != nil {
		log.Println("[DashboardHandler] Error writing export:", err)
	}
}

// CloseSession handles DELETE /api/v1/session
func (h *DashboardHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if session, ok := h.sessions.Lookup(r); ok {
		if err := h.dashboardService.Close(r.Context(), session); err != nil {
			log.Printf("[DashboardHandler] Failed to discard page of session %s: %v", session, err)
		}
	}
	if err := h.sessions.Forget(w, r); err != nil {
		log.Println("[DashboardHandler] Failed to expire session cookie:", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// RedirectHome handles GET /
func (h *DashboardHandler) RedirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, PagePath(models.PageOverview), http.StatusFound)
}

// Ping handles GET /ping
func (h *DashboardHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

// ExportPath is the CSV export route of page.
func ExportPath(page models.PageName) string {
	return "/api/v1/pages/" + string(page) + "/export.csv"
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("[DashboardHandler] Error encoding response:", err)
	}
}
