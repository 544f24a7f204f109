// Package http serves the form-driven UI over the ledger store: home
// statistics, borrower creation, the all-borrowers summary, per
// borrower profiles, payment recording, and the download surface.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"lendtrack/internal/cache"
	"lendtrack/internal/ledger"
	appweb "lendtrack/web"
)

const statsCacheKey = "portfolio"

type Server struct {
	http.Server
	templates   *template.Template
	store       ledger.Store
	rateLimiter *rateLimiter

	// Home statistics are recomputed from every workbook on each hit,
	// so they are cached briefly and purged on every write.
	statsCache *cache.LRU[statsView]

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run
// server over the given ledger store.
func NewServer(addr string, store ledger.Store) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:       store,
		rateLimiter: newRateLimiter(),
		statsCache:  cache.New[statsView](4, 30*time.Second),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withMiddleware(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/borrowers", s.withMiddleware(s.handleBorrowers))
	mux.HandleFunc("/borrowers/new", s.withMiddleware(s.handleNewBorrowerForm))
	mux.HandleFunc("/borrowers/view", s.withMiddleware(s.handleBorrowerProfile))
	mux.HandleFunc("/payments", s.withMiddleware(s.handleRecordPayment))
	mux.HandleFunc("/download/workbook", s.withMiddleware(s.handleDownloadWorkbook))
	mux.HandleFunc("/download/report", s.withMiddleware(s.handleDownloadReport))

	return s
}

// Shutdown stops the rate limiter's cleanup goroutine and the HTTP
// server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) invalidateStats() {
	s.statsCache.Delete(statsCacheKey)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
