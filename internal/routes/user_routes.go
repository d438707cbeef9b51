package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"formserver/internal/handlers"
	"formserver/internal/repository"
)

func RegisterUserRoutes(router chi.Router, db *sql.DB) {
	userRepo := repository.NewUserRepository(db)
	userHandler := handlers.NewUserHandler(userRepo)

	router.Get("/users", userHandler.ListUsers)
}
