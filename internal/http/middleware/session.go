package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/rogerio-castellano/product-values/internal/db"
)

// Session binds one storage session to each request. The session is released
// when the handler returns, whether it succeeded, failed or panicked.
func Session(mgr *db.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := mgr.Acquire(r.Context())
			if err != nil {
				log.Error().
					Err(err).
					Str("path", r.URL.Path).
					Str("request_id", middleware.GetReqID(r.Context())).
					Msg("Failed to acquire storage session")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"error": "storage unavailable"})
				return
			}
			defer func() {
				if err := sess.Release(); err != nil {
					log.Warn().Err(err).Msg("Failed to release storage session")
				}
			}()

			next.ServeHTTP(w, r.WithContext(db.NewContext(r.Context(), sess)))
		})
	}
}
