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
	"github.com/gorilla/handlers"
	"github.com/rs/zerolog"

	"github.com/de-tools/result-atlas/pkg/handlers/results"
	atlasmiddleware "github.com/de-tools/result-atlas/pkg/server/middleware"
	"github.com/de-tools/result-atlas/pkg/services/projects"
)

type WebAPI struct {
	handler http.Handler
	logger  *zerolog.Logger
	server  *http.Server
	timeout time.Duration
}

type Dependencies struct {
	Projects projects.Manager
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	Dependencies    Dependencies
}

// ConfigureRouter mounts the results API under /api/v1 behind CORS and
// response compression.
func ConfigureRouter(config Config) http.Handler {
	logger := config.Dependencies.Logger
	resultsHandler := results.NewHandler(config.Dependencies.Projects)

	router := chi.NewRouter()
	router.Use(atlasmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/projects", resultsHandler.ListProjects)
		r.Route("/projects/{project}", func(r chi.Router) {
			r.Get("/", resultsHandler.GetProject)
			r.Get("/operation-modes", resultsHandler.GetOperationModes)
			r.Get("/sections", resultsHandler.GetSections)
			r.Get("/series/{stream}", resultsHandler.GetStreamSeries)
			r.Get("/assets/{category}/{asset}", resultsHandler.GetAsset)
			r.Get("/assets/{category}/{asset}/series", resultsHandler.GetAssetSeries)
		})
	})

	origins := config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
	)
	return handlers.CompressHandler(cors(router))
}

func NewWebAPI(config Config) *WebAPI {
	logger := config.Dependencies.Logger
	handler := ConfigureRouter(config)

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		handler: handler,
		logger:  &logger,
		timeout: timeout,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: handler,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
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
