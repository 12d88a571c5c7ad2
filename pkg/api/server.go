package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/tilearea/pkg/api/handlers"
	"github.com/cbodonnell/tilearea/pkg/api/middleware"
	"github.com/cbodonnell/tilearea/pkg/log"
	"github.com/cbodonnell/tilearea/pkg/repositories"
	"github.com/cbodonnell/tilearea/pkg/state"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port int
	TLS  *TLSConfig
	// Token, when set, is required as a bearer token on every request.
	Token        string
	StateManager state.StateManager
	Repository   repositories.Repository
	Pathfinder   handlers.Pathfinder
	Subscriber   handlers.Subscriber
}

// NewRouter returns the routes of the inspection API.
func NewRouter(opts NewAPIServerOptions) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging, middleware.CORS, middleware.NewTokenMiddleware(opts.Token))

	r.HandleFunc("/areas", handlers.HandleListAreas(opts.StateManager)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/areas/{areaID}", handlers.HandleGetArea(opts.StateManager)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/areas/{areaID}/bodies/{entityID}", handlers.HandleGetBody(opts.StateManager)).Methods(http.MethodGet, http.MethodOptions)
	if opts.Pathfinder != nil {
		r.HandleFunc("/areas/{areaID}/path", handlers.HandleGetPath(opts.Pathfinder)).Methods(http.MethodGet, http.MethodOptions)
	}
	if opts.Subscriber != nil {
		r.HandleFunc("/areas/{areaID}/stream", handlers.HandleStream(opts.Subscriber)).Methods(http.MethodGet)
	}
	if opts.Repository != nil {
		r.HandleFunc("/entities/{entityID}/placement", handlers.HandleGetPlacement(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	}
	return r
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
