package routes

import (
	"database/sql"
	"time"

	"github.com/go-chi/chi/v5"

	"formserver/internal/config"
	"formserver/internal/handlers"
	"formserver/internal/kvstore"
	"formserver/internal/repository"
	"formserver/internal/reset"
	"formserver/internal/services"
)

func RegisterAuthRoutes(router chi.Router, db *sql.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	mailer := &services.SMTPSender{
		Host:   cfg.SMTPHost,
		Port:   cfg.SMTPPort,
		User:   cfg.SMTPUser,
		Pass:   cfg.SMTPPassword,
		From:   cfg.SMTPFrom,
		UseTLS: cfg.SMTPUseTLS,
	}
	resetStore := reset.NewStore(
		kvstore.NewMemoryStore(),
		handlers.NewUserIdentities(repository.NewUserRepository(db)),
		time.Duration(cfg.ResetTokenTTLMinutes)*time.Minute,
		cfg.AppBaseURL,
	)
	resetHandler := handlers.NewResetHandler(resetStore, mailer, cfg)

	router.Post("/users", authHandler.Register)
	router.Post("/login", authHandler.Login)
	router.Post("/forgot-password", resetHandler.ForgotPassword)
	router.Post("/reset-password", resetHandler.ResetPassword)
}
