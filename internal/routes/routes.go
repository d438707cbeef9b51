// internal/routes/routes.go
package routes

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"formserver/internal/config"
)

func SetupRoutes(db *sql.DB, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "form-server API"})
	})

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", healthHandler(db))
		RegisterAuthRoutes(api, db, cfg)
		RegisterUserRoutes(api, db)
	})

	RegisterSwaggerRoutes(r)

	return r
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"ok":      true,
			"service": "form-server",
			"time":    time.Now().UTC().Format(time.RFC3339),
		}
		status := http.StatusOK
		if err := db.PingContext(r.Context()); err != nil {
			resp["ok"] = false
			resp["db"] = map[string]any{"status": "down", "error": err.Error()}
			status = http.StatusServiceUnavailable
		} else {
			resp["db"] = map[string]any{"status": "ok"}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
