package web

import (
	"net/http"
	"time"

	"entregas/internal/config"
	"entregas/internal/session"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Server is the HTTP presentation boundary. It renders nothing itself beyond
// a static page; every figure it serves comes straight from the deliveries
// pipeline operating on the session store's dataset.
type Server struct {
	cfg   *config.AppConfig
	store *session.Store
}

// NewServer creates the dashboard server.
func NewServer(cfg *config.AppConfig, store *session.Store) *Server {
	return &Server{cfg: cfg, store: store}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/load", s.handleLoad)
	mux.HandleFunc("GET /api/table", s.handleTable)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Start blocks serving the dashboard until the listener fails.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", s.cfg.ListenAddr).Msg("Dashboard listening")
	return srv.ListenAndServe()
}
