package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
)

// SHUTDOWN_TIMEOUT bounds how long in-flight requests may take to finish.
const SHUTDOWN_TIMEOUT = 5 * time.Second

type DashboardHttpServer struct {
	addr      string
	router    *Router
	muxRouter *mux.Router
}

func NewDashboardHttpServer(addr string, router *Router, muxRouter *mux.Router) *DashboardHttpServer {
	return &DashboardHttpServer{
		addr:      addr,
		router:    router,
		muxRouter: muxRouter,
	}
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *DashboardHttpServer) Start() {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[DashboardHttpServer] Starting server on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	<-stop
	log.Println("[DashboardHttpServer] Shutting down the server...")

	ctx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[DashboardHttpServer] Server exiting")
}
