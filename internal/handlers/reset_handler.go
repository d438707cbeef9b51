package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"formserver/internal/config"
	"formserver/internal/models"
	"formserver/internal/repository"
	"formserver/internal/reset"
	"formserver/internal/services"
)

// userIdentities adapts the user repository to the reset store's
// keyed-by-email identity contract, hashing passwords before they land.
type userIdentities struct {
	users repository.UserRepository
}

func NewUserIdentities(users repository.UserRepository) reset.Identities {
	return &userIdentities{users: users}
}

func (a *userIdentities) Exists(ctx context.Context, email string) (bool, error) {
	_, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (a *userIdentities) SetPassword(ctx context.Context, email string, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return a.users.UpdatePasswordHashByEmail(ctx, email, string(hash))
}

type ResetHandler struct {
	store  *reset.Store
	mailer services.EmailSender
	cfg    *config.Config
	v      *validator.Validate
}

func NewResetHandler(store *reset.Store, mailer services.EmailSender, cfg *config.Config) *ResetHandler {
	return &ResetHandler{
		store:  store,
		mailer: mailer,
		cfg:    cfg,
		v:      validator.New(),
	}
}

// @Tags Auth
// @Summary Request a password-reset link
// @Accept json
// @Produce json
// @Param body body models.ForgotPasswordRequest true "Forgot password request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/forgot-password [post]
func (h *ResetHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Please enter a valid email address.")
		return
	}

	link, err := h.store.RequestReset(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, reset.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Email not found.")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to create reset link")
		return
	}

	subject := "Reset your password"
	body := "Use this link to reset your password:\n\n" + link +
		"\n\nThe link expires in 15 minutes."
	_ = h.mailer.Send(req.Email, subject, body)

	resp := map[string]any{"ok": true}
	if h.cfg.AuthReturnResetToken {
		// Demo mode: surface the link instead of relying on email.
		resp["link"] = link
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Tags Auth
// @Summary Redeem a password-reset token
// @Accept json
// @Produce json
// @Param body body models.ResetPasswordRequest true "Reset password request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/reset-password [post]
func (h *ResetHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "token, new_password and confirm_password are required")
		return
	}

	err := h.store.Redeem(r.Context(), req.Token, req.NewPassword, req.ConfirmPassword)
	switch {
	case err == nil:
	case errors.Is(err, reset.ErrInvalidOrExpired):
		writeJSONError(w, http.StatusBadRequest, "Invalid or expired token")
		return
	case errors.Is(err, reset.ErrWeakPassword):
		writeJSONError(w, http.StatusBadRequest, "Weak password. Use upper, lower, and number.")
		return
	case errors.Is(err, reset.ErrMismatch):
		writeJSONError(w, http.StatusBadRequest, "Passwords do not match.")
		return
	case errors.Is(err, reset.ErrIdentityMismatch):
		writeJSONError(w, http.StatusBadRequest, "Token invalid for this user.")
		return
	default:
		writeJSONError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Password reset successful",
	})
}
