package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	handlers "github.com/quantamisecode-hub/groona-insights/pkg/handlers/reports"
	insightsmiddleware "github.com/quantamisecode-hub/groona-insights/pkg/server/middleware"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/insights"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/repository"
	reportstore "github.com/quantamisecode-hub/groona-insights/pkg/store/duckdb/report"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Source   repository.Source
	Engine   *insights.Engine
	Insights handlers.InsightGenerator
	Reports  reportstore.Store
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	handler := handlers.NewHandler(
		config.Dependencies.Source,
		config.Dependencies.Engine,
		config.Dependencies.Insights,
		config.Dependencies.Reports,
	)

	router := chi.NewRouter()

	router.Use(insightsmiddleware.Logger(&logger))
	router.Use(insightsmiddleware.Metrics())
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/projects/{project}/profitability", handler.GetProfitability)
		r.Get("/projects/{project}/health", handler.GetHealth)
		r.Get("/projects/{project}/risk", handler.GetRisk)
		r.Get("/projects/{project}/timeline", handler.GetTimeline)
		r.Get("/utilization", handler.GetUtilization)
		r.Get("/timesheets/groups", handler.GetTimesheetGroups)
		r.Get("/timesheets/export", handler.ExportTimesheet)
		r.Get("/reports/{project}/export", handler.ExportReport)
		r.Get("/reports/{project}/ai-export", handler.ExportAIReport)
		r.Post("/reports", handler.SaveReport)
	})
	router.Handle("/metrics", promhttp.Handler())

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: timeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// Router exposes the configured mux, used by tests.
func (w *WebAPI) Router() http.Handler {
	return w.router
}
