// Package http exposes the ledger over a JSON API.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"tally/internal/ledger"
	applog "tally/internal/log"
	"tally/internal/middleware/ratelimit"
	"tally/internal/middleware/security"
)

type Server struct {
	http.Server

	service     *ledger.Service
	rateLimiter *ratelimit.Limiter
	corsOrigins map[string]bool
	corsAny     bool
}

// Options tunes cross-cutting behavior of the server.
type Options struct {
	RateLimitPerMinute int
	CORSOrigins        []string
	Logger             *applog.Logger
}

func NewServer(addr string, service *ledger.Service, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = applog.New(applog.DefaultConfig())
	}

	limiterCfg := ratelimit.DefaultConfig()
	if opts.RateLimitPerMinute > 0 {
		limiterCfg.RequestsPerMinute = opts.RateLimitPerMinute
	}

	s := &Server{
		service:     service,
		rateLimiter: ratelimit.NewLimiter(limiterCfg),
		corsOrigins: make(map[string]bool),
	}
	for _, origin := range opts.CORSOrigins {
		if origin == "*" {
			s.corsAny = true
			continue
		}
		s.corsOrigins[origin] = true
	}

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(applog.RequestLogger(opts.Logger.WithComponent(applog.ComponentHTTP)))
	r.Use(headers.Middleware)
	r.Use(s.corsMiddleware)
	r.Use(s.rateLimiter.Middleware)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/income", s.handleListIncome)
		r.Post("/income", s.handleCreateIncome)
		r.Delete("/income/{id}", s.handleDeleteIncome)

		r.Get("/expense", s.handleListExpense)
		r.Post("/expense", s.handleCreateExpense)
		r.Delete("/expense/{id}", s.handleDeleteExpense)

		r.Get("/dashboard", s.handleDashboard)
	})

	s.Server = http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}

	return s
}

// Close releases server-owned resources beyond the listener.
func (s *Server) Close() error {
	s.rateLimiter.Shutdown()
	return s.Server.Close()
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case origin == "":
			// Same-origin or non-browser client
		case s.corsAny:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case s.corsOrigins[origin]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		}

		if origin != "" {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
