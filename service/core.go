// Package service implements an HTTP server exposing ranged reads of
// byte objects behind a storage engine.  Every windowed request is
// served through a bounded reader over the engine's seekable object
// reader, so a request can never pull bytes from outside the range it
// asked for.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/pprof"

	"github.com/brimdata/takeio/api"
	"github.com/brimdata/takeio/pkg/storage"
	"github.com/brimdata/takeio/pkg/storage/cache"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const indexPage = `
<!DOCTYPE html>
<html>
  <title>takeio daemon</title>
  <body style="padding:10px">
    <h2>takeio</h2>
    <p>A takeio daemon is listening on this host/port.</p>
    <p>It serves whole or windowed reads of the byte objects under its
    root over GET /object/{path} and object metadata over GET /stat/{path}.</p>
  </body>
</html>`

type Config struct {
	Cache              cache.Config `yaml:"cache"`
	CORSAllowedOrigins []string     `yaml:"-"`
	Logger             *zap.Logger  `yaml:"-"`
	Root               string       `yaml:"root"`
	Version            string       `yaml:"-"`
}

type Core struct {
	conf        Config
	engine      storage.Engine
	logger      *zap.Logger
	registry    *prometheus.Registry
	root        *storage.URI
	routerAPI   *mux.Router
	routerAux   *mux.Router
	requests    *prometheus.CounterVec
	bytesServed prometheus.Counter
}

func NewCore(ctx context.Context, conf Config) (*Core, error) {
	if conf.Logger == nil {
		conf.Logger = zap.NewNop()
	}
	if conf.Version == "" {
		conf.Version = "unknown"
	}
	if conf.Root == "" {
		return nil, errors.New("no root specified")
	}
	root, err := storage.ParseURI(conf.Root)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	engine, err := cache.New(conf.Cache, storage.NewLocalEngine(), nil, registry)
	if err != nil {
		return nil, err
	}

	routerAux := mux.NewRouter()
	routerAux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, indexPage)
	})

	debug := routerAux.PathPrefix("/debug/pprof").Subrouter()
	debug.HandleFunc("/cmdline", pprof.Cmdline)
	debug.HandleFunc("/profile", pprof.Profile)
	debug.HandleFunc("/symbol", pprof.Symbol)
	debug.HandleFunc("/trace", pprof.Trace)
	debug.PathPrefix("/").HandlerFunc(pprof.Index)

	routerAux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	routerAux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})
	routerAux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&api.VersionResponse{Version: conf.Version})
	})

	routerAPI := mux.NewRouter()
	routerAPI.Use(requestIDMiddleware())
	routerAPI.Use(accessLogMiddleware(conf.Logger))
	routerAPI.Use(panicCatchMiddleware(conf.Logger))
	if len(conf.CORSAllowedOrigins) > 0 {
		routerAPI.Use(cors.New(cors.Options{
			AllowedOrigins: conf.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead},
			AllowedHeaders: []string{"*"},
		}).Handler)
	}

	factory := promauto.With(registry)
	c := &Core{
		conf:     conf,
		engine:   engine,
		logger:   conf.Logger.Named("core"),
		registry: registry,
		root:     root,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "object_requests_total",
				Help: "Number of object requests served.",
			},
			[]string{"method"},
		),
		bytesServed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "object_bytes_served_total",
				Help: "Number of object bytes served.",
			},
		),
		routerAPI: routerAPI,
		routerAux: routerAux,
	}
	c.addAPIRoutes()
	c.logger.Info("Started", zap.String("root", root.String()))
	return c, nil
}

func (c *Core) addAPIRoutes() {
	c.handle("/object/{path:.*}", handleObjectGet).Methods("GET", "HEAD")
	c.handle("/stat/{path:.*}", handleStat).Methods("GET")
}

func (c *Core) handle(path string, f func(*Core, http.ResponseWriter, *http.Request)) *mux.Route {
	return c.routerAPI.Handle(path, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f(c, w, r)
	}))
}

func (c *Core) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Core) Root() *storage.URI {
	return c.root
}

func (c *Core) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var rm mux.RouteMatch
	if c.routerAux.Match(r, &rm) {
		rm.Handler.ServeHTTP(w, r)
		return
	}
	c.routerAPI.ServeHTTP(w, r)
}

func (c *Core) Shutdown() {
	c.logger.Info("Shutdown")
}

func (c *Core) requestLogger(r *http.Request) *zap.Logger {
	return c.logger.With(zap.String("request_id", api.RequestIDFromContext(r.Context())))
}
