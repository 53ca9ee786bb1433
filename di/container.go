package di

import (
	"context"
	"fmt"
	"log"

	"covid-dashboard/api"
	"covid-dashboard/api/dashboard"
	"covid-dashboard/config"
	"covid-dashboard/dao/redis"
	"covid-dashboard/db"
	"covid-dashboard/presenter"
	"covid-dashboard/server"
	"covid-dashboard/server/handlers"
	services "covid-dashboard/service"
	"covid-dashboard/util"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

// Container holds all application dependencies.
type Container struct {
	Config                      *config.Config
	RedisClient                 db.RedisClient
	RedisPageStateDao           *redis.RedisPageStateDAO
	DashboardAPI                dashboard.DashboardAPI
	Lifetimes                   *services.Lifetimes
	DashboardService            *services.DashboardService
	PageLifetimesSweeperService *services.PageLifetimesSweeperService
	DashboardHandler            *handlers.DashboardHandler
	MuxRouter                   *mux.Router
	Router                      *server.Router
	DashboardHttpServer         *server.DashboardHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Printf("initializing container - env: %s", cfg.AppEnv)

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	redisClient, err := db.NewGoRedisClient(ctx, redisInternalClient)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	redisPageStateDao := redis.NewRedisPageStateDAO(redisClient, cfg.PageStateTTL)

	var dashboardAPI dashboard.DashboardAPI
	if !cfg.IsProduction() {
		fixturesDir := config.GetResourcePath(config.DASHBOARD_FIXTURES_DIR)
		dashboardAPI = dashboard.NewDashboardApiClientMock(fixturesDir)
		log.Printf("Using mock dashboard api (%s)", fixturesDir)
	} else {
		log.Printf("Using prod dashboard api at %s", cfg.DashboardAPIBaseURL)
		httpClient := api.NewHTTPClient(cfg.DashboardAPIBaseURL, api.Credentials{Token: cfg.DashboardAPIToken})
		httpClient.HTTPClient.Timeout = cfg.DashboardAPITimeout
		dashboardAPI = dashboard.NewDashboardApiClient(httpClient)
	}

	lifetimes := services.NewLifetimes()
	dashboardService := services.NewDashboardService(dashboardAPI, redisPageStateDao, lifetimes)
	sweeperService := services.NewPageLifetimesSweeperService(lifetimes, cfg.PageStateTTL)

	geoPath := config.GetResourcePath(cfg.GeoResource)
	boundaries, err := util.ReadFeatureCollectionFromJSON(geoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load map boundaries %s: %w", geoPath, err)
	}

	sessions := handlers.NewSessionStore(
		cfg.SessionSecret,
		config.SESSION_COOKIE_NAME,
		config.SESSION_ID_KEY,
		int(cfg.PageStateTTL.Seconds()),
		cfg.IsProduction(),
	)
	dashboardHandler := handlers.NewDashboardHandler(
		dashboardService,
		presenter.NewBuilder(boundaries),
		presenter.NewPlotter(boundaries),
		sessions,
	)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(dashboardHandler, muxRouter)
	dashboardHttpServer := server.NewDashboardHttpServer(cfg.AppAddr, router, muxRouter)

	return &Container{
		Config:                      cfg,
		RedisClient:                 redisClient,
		RedisPageStateDao:           redisPageStateDao,
		DashboardAPI:                dashboardAPI,
		Lifetimes:                   lifetimes,
		DashboardService:            dashboardService,
		PageLifetimesSweeperService: sweeperService,
		DashboardHandler:            dashboardHandler,
		MuxRouter:                   muxRouter,
		Router:                      router,
		DashboardHttpServer:         dashboardHttpServer,
	}, nil
}
