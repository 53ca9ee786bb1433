package server

import (
	"net/http"
	"time"

	"covid-dashboard/server/handlers"

	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
)

// API_RATE_LIMIT is how many API requests one client may make per minute.
const API_RATE_LIMIT = 120

// PageHandler serves the dashboard routes.
type PageHandler interface {
	RedirectHome(w http.ResponseWriter, r *http.Request)
	GetPage(w http.ResponseWriter, r *http.Request)
	GetPageView(w http.ResponseWriter, r *http.Request)
	ExportPage(w http.ResponseWriter, r *http.Request)
	CloseSession(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	pageHandler PageHandler
	router      *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	pageHandler PageHandler,
	router *mux.Router) *Router {
	return &Router{
		pageHandler: pageHandler,
		router:      router,
	}
}

func (r *Router) RegisterRoutes() {
	page := "{" + handlers.PAGE_ROUTE_VAR + "}"

	r.router.HandleFunc("/", r.pageHandler.RedirectHome).Methods("GET")
	// expects ?tab=&view=&semester=&entity=&chart=&reload=, all optional
	r.router.HandleFunc("/dashboard/"+page, r.pageHandler.GetPage).Methods("GET")

	apiRouter := r.router.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(httprate.Limit(API_RATE_LIMIT, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
	apiRouter.HandleFunc("/pages/"+page, r.pageHandler.GetPageView).Methods("GET")
	apiRouter.HandleFunc("/pages/"+page+"/export.csv", r.pageHandler.ExportPage).Methods("GET")
	apiRouter.HandleFunc("/session", r.pageHandler.CloseSession).Methods("DELETE")

	r.router.HandleFunc("/ping", r.pageHandler.Ping).Methods("GET")
}
