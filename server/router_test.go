package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// MockPageHandler answers every route with its own name.
type MockPageHandler struct{}

func (h *MockPageHandler) reply(w http.ResponseWriter, body string) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

func (h *MockPageHandler) RedirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard/general", http.StatusFound)
}

func (h *MockPageHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	h.reply(w, "page "+mux.Vars(r)["page"])
}

func (h *MockPageHandler) GetPageView(w http.ResponseWriter, r *http.Request) {
	h.reply(w, "view "+mux.Vars(r)["page"])
}

func (h *MockPageHandler) ExportPage(w http.ResponseWriter, r *http.Request) {
	h.reply(w, "export "+mux.Vars(r)["page"])
}

func (h *MockPageHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *MockPageHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.reply(w, `{"status":"pong"}`)
}

func TestRouter_RegisterRoutes(t *testing.T) {
	// Setup
	router := mux.NewRouter()
	appRouter := NewRouter(&MockPageHandler{}, router)
	appRouter.RegisterRoutes()

	// Test Cases
	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{
			name:       "Home Redirect",
			method:     "GET",
			path:       "/",
			statusCode: http.StatusFound,
		},
		{
			name:       "Dashboard Page",
			method:     "GET",
			path:       "/dashboard/tiempo?tab=months",
			statusCode: http.StatusOK,
			response:   "page tiempo",
		},
		{
			name:       "Page View",
			method:     "GET",
			path:       "/api/v1/pages/localizacion",
			statusCode: http.StatusOK,
			response:   "view localizacion",
		},
		{
			name:       "Page Export",
			method:     "GET",
			path:       "/api/v1/pages/general/export.csv",
			statusCode: http.StatusOK,
			response:   "export general",
		},
		{
			name:       "Close Session",
			method:     "DELETE",
			path:       "/api/v1/session",
			statusCode: http.StatusNoContent,
		},
		{
			name:       "Ping Route",
			method:     "GET",
			path:       "/ping",
			statusCode: http.StatusOK,
			response:   `{"status":"pong"}`,
		},
		{
			name:       "Wrong Method",
			method:     "POST",
			path:       "/ping",
			statusCode: http.StatusMethodNotAllowed,
		},
		{
			name:       "Invalid Route",
			method:     "GET",
			path:       "/invalid",
			statusCode: http.StatusNotFound,
		},
	}

	// Run tests
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			// Assert status code
			if rr.Code != test.statusCode {
				t.Errorf("Expected status %d, got %d", test.statusCode, rr.Code)
			}

			// Assert response body, if applicable
			if test.response != "" && rr.Body.String() != test.response {
				t.Errorf("Expected response %s, got %s", test.response, rr.Body.String())
			}
		})
	}
}
