// Package server exposes the generated ruleset over HTTP.
package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/xxxbrian/surge-reject/internal/cache"
)

const resultKey = "reject.list"

// Server serves the generated ruleset, rebuilding it through a TTL result
// cache so every request does not refetch the upstream lists.
type Server struct {
	build       func() (string, error)
	resultCache *cache.ResultCache
	repoURL     string
}

// NewServer creates a Server around a build function.
func NewServer(build func() (string, error), rc *cache.ResultCache, repoURL string) *Server {
	return &Server{
		build:       build,
		resultCache: rc,
		repoURL:     repoURL,
	}
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/reject.list", s.handleRuleset)
}

// handleRoot redirects to the GitHub repository.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, s.repoURL, http.StatusFound)
}

func (s *Server) handleRuleset(w http.ResponseWriter, r *http.Request) {
	if result, ok := s.resultCache.Get(resultKey); ok {
		s.writeRuleset(w, result)
		return
	}

	log.Printf("Cache miss for %s, generating...", resultKey)
	output, err := s.build()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to build ruleset: %v", err), http.StatusInternalServerError)
		return
	}
	s.resultCache.Set(resultKey, output)

	s.writeRuleset(w, output)
}

func (s *Server) writeRuleset(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=1800")
	w.Write([]byte(body))
}

// LoggingMiddleware logs all HTTP requests.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
