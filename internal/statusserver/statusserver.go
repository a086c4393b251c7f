// Package statusserver exposes a small JSON status/health endpoint over
// gin, with a health check and a permissive GET-only CORS setup. It is
// deliberately not a static web UI: every route returns JSON, an
// operational surface rather than a UI.
package statusserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RunStatus is the current state of an in-progress or completed run,
// updated by the executor's progress callback.
type RunStatus struct {
	RunID     string    `json:"run_id"`
	Completed int       `json:"completed"`
	Failed    int       `json:"failed"`
	Total     int       `json:"total"`
	StartedAt time.Time `json:"started_at"`
	Done      bool      `json:"done"`
}

// Server serves /healthz and /status over gin, guarding its RunStatus
// behind a mutex since the executor updates it from goroutines.
type Server struct {
	mu     sync.RWMutex
	status RunStatus
	engine *gin.Engine
	http   *http.Server
}

// New builds a Server listening on addr.
func New(addr string) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	s := &Server{engine: router}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Status())
	})

	s.http = &http.Server{Addr: addr, Handler: router}
	return s
}

// Update records progress for the currently running (or just-finished) run.
func (s *Server) Update(status RunStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Status returns the last recorded RunStatus.
func (s *Server) Status() RunStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// ListenAndServe starts the HTTP server; it blocks until the server
// returns an error (including http.ErrServerClosed after Shutdown).
func (s *Server) ListenAndServe() error {
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
