// Package api exposes a timeline session over HTTP.
package api

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/urbangrowth/internal/timeline"
	"github.com/sells-group/urbangrowth/internal/trend"
)

// Options configures the API server.
type Options struct {
	AllowedOrigins []string
	Trend          trend.Config
}

// Server serializes all requests touching the session behind one mutex, so
// the controller keeps a single writer.
type Server struct {
	mu    sync.Mutex
	ctl   *timeline.Controller
	cache *trend.PanelCache
	opts  Options
	log   *zap.Logger
}

// New creates a server for the session. cache may be nil.
func New(ctl *timeline.Controller, cache *trend.PanelCache, opts Options) *Server {
	if opts.Trend.Width == 0 && opts.Trend.Height == 0 {
		opts.Trend = trend.DefaultConfig()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Server{
		ctl:   ctl,
		cache: cache,
		opts:  opts,
		log:   zap.L().With(zap.String("component", "api"), zap.String("session", ctl.SessionID())),
	}
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Route("/api", func(api chi.Router) {
		api.Get("/session", s.session)
		api.Get("/years", s.years)
		api.Get("/frame", s.frame)
		api.Put("/year", s.setYear)
		api.Get("/symbols.geojson", s.symbols)
		api.Get("/legends", s.legends)
		api.Get("/cache", s.cacheStats)
		api.Route("/features/{id}", func(f chi.Router) {
			f.Get("/trend", s.trendJSON)
			f.Get("/trend.svg", s.trendSVG)
			f.Get("/trend.png", s.trendPNG)
			f.Post("/hover", s.hover)
			f.Post("/leave", s.leave)
		})
	})
	return r
}
