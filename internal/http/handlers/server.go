package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rogerio-castellano/product-values/internal/db"
	"github.com/rogerio-castellano/product-values/internal/repo"
)

// Server holds the dependencies shared by the HTTP handlers.
type Server struct {
	products repo.ProductRepository
	sessions *db.SessionManager
}

func NewServer(products repo.ProductRepository, sessions *db.SessionManager) *Server {
	return &Server{products: products, sessions: sessions}
}

// session returns the request's storage session. The session middleware must
// be installed on every route that calls it.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*db.Session, bool) {
	sess, ok := db.FromContext(r.Context())
	if !ok {
		log.Error().Str("path", r.URL.Path).Msg("No storage session bound to request")
		writeError(w, http.StatusInternalServerError, "storage session unavailable")
		return nil, false
	}
	return sess, true
}

// RootHandler godoc
// @Summary Greeting
// @Tags meta
// @Produce json
// @Success 200 {string} string "Hello, World!"
// @Router / [get]
func (s *Server) RootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "Hello, World!")
}

// HealthHandler godoc
// @Summary Storage health check
// @Tags meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} ErrorResponse
// @Router /healthz [get]
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	err := s.sessions.WithSession(ctx, func(sess *db.Session) error {
		return sess.PingContext(ctx)
	})
	if err != nil {
		log.Warn().Err(err).Msg("Health check failed")
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
