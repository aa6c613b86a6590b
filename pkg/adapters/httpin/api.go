package httpin

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jademcosta/logroller/pkg/adapters/httpin/httpmiddleware"
	"github.com/jademcosta/logroller/pkg/config"
	"github.com/jademcosta/logroller/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
)

const APIComponentType = "api"

const shutdownGracePeriod = 5 * time.Second

// API is the operational HTTP surface: metrics, health and version. The
// rollover pipeline owns no ingest routes.
type API struct {
	mux  *chi.Mux
	log  *slog.Logger
	srv  *http.Server
	port int
}

func New(
	l *slog.Logger, conf config.APIConfig, metricRegistry *prometheus.Registry,
	appVersion string,
) *API {

	router := chi.NewRouter()
	logg := l.With(logger.ComponentKey, APIComponentType)

	api := &API{
		mux:  router,
		log:  logg,
		srv:  &http.Server{Addr: fmt.Sprintf(":%d", conf.Port), Handler: router},
		port: conf.Port,
	}

	api.mux.Use(httpmiddleware.NewLoggingMiddleware(logg))
	api.mux.Use(httpmiddleware.NewRecoverer(logg))

	RegisterOperationalRoutes(api, appVersion, metricRegistry)

	return api
}

func (api *API) ListenAndServe() error {
	api.log.Info(fmt.Sprintf("Starting HTTP server on port %d", api.port))
	err := api.srv.ListenAndServe()
	if err != nil {
		return fmt.Errorf("when serving HTTP: %w", err)
	}

	return nil
}

func (api *API) Shutdown() error {
	shutdownCtx, shutdownCtxRelease := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer shutdownCtxRelease()

	return api.srv.Shutdown(shutdownCtx)
}
