package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vocdoni/zk-multisig/circuits/multisig"
	"github.com/vocdoni/zk-multisig/log"
	stg "github.com/vocdoni/zk-multisig/storage"
)

// APIConfig type represents the configuration for the API HTTP server.
// It includes the host, port, the storage instance and the shape of the
// assembled batches.
type APIConfig struct {
	Host    string
	Port    int
	Storage *stg.Storage
	// Shape of the batch documents. The default shape is used if zero.
	Shape multisig.Shape
}

// API type represents the API HTTP server.
type API struct {
	router   *chi.Mux
	storage  *stg.Storage
	shape    multisig.Shape
	server   *http.Server
	listener net.Listener
}

// New creates a new API instance with the given configuration, binds the
// listening address and serves the API in the background. Port 0 picks a
// free port, see Addr.
func New(conf *APIConfig) (*API, error) {
	a, err := NewHandler(conf)
	if err != nil {
		return nil, err
	}
	a.listener, err = net.Listen("tcp", net.JoinHostPort(conf.Host, strconv.Itoa(conf.Port)))
	if err != nil {
		return nil, fmt.Errorf("could not listen: %w", err)
	}
	a.server = &http.Server{
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infow("starting API server", "address", a.listener.Addr().String())
		if err := a.server.Serve(a.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw(err, "API server stopped")
		}
	}()
	return a, nil
}

// Addr returns the address the server listens on, or nil if the API was
// built with NewHandler.
func (a *API) Addr() net.Addr {
	if a.listener == nil {
		return nil
	}
	return a.listener.Addr()
}

// NewHandler creates the API router without starting any server.
func NewHandler(conf *APIConfig) (*API, error) {
	if conf == nil {
		return nil, fmt.Errorf("missing API configuration")
	}
	if conf.Storage == nil {
		return nil, fmt.Errorf("missing storage instance")
	}
	shape := conf.Shape
	if shape == (multisig.Shape{}) {
		shape = multisig.DefaultShape()
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	a := &API{
		storage: conf.Storage,
		shape:   shape,
	}
	a.initRouter()
	return a, nil
}

// Router returns the chi router for testing purposes
func (a *API) Router() *chi.Mux {
	return a.router
}

// Close stops the HTTP server, if any.
func (a *API) Close() error {
	if a.server == nil {
		return nil
	}
	return a.server.Close()
}

// registerHandlers registers all the API handlers.
func (a *API) registerHandlers() {
	log.Infow("register handler", "endpoint", PingEndpoint, "method", "GET")
	a.router.Get(PingEndpoint, func(w http.ResponseWriter, r *http.Request) {
		httpWriteOK(w)
	})
	log.Infow("register handler", "endpoint", RostersEndpoint, "method", "POST")
	a.router.Post(RostersEndpoint, a.newRoster)
	log.Infow("register handler", "endpoint", RosterEndpoint, "method", "GET")
	a.router.Get(RosterEndpoint, a.roster)
	log.Infow("register handler", "endpoint", BatchesEndpoint, "method", "POST")
	a.router.Post(BatchesEndpoint, a.newBatch)
	log.Infow("register handler", "endpoint", BatchEndpoint, "method", "GET")
	a.router.Get(BatchEndpoint, a.batch)
	log.Infow("register handler", "endpoint", GasEndpoint, "method", "GET")
	a.router.Get(GasEndpoint, a.gasEstimation)
	a.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		ErrResourceNotFound.Write(w)
	})
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() {
	// Create the router with a basic middleware stack
	a.router = chi.NewRouter()
	a.router.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Throttle(100))
	a.router.Use(middleware.ThrottleBacklog(5000, 40000, 60*time.Second))
	a.router.Use(middleware.Timeout(45 * time.Second))

	// Register the API handlers
	a.registerHandlers()
}
