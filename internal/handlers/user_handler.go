package handlers

import (
	"net/http"

	"formserver/internal/models"
	"formserver/internal/repository"
)

type UserHandler struct {
	users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// @Tags Users
// @Summary List users, newest first
// @Produce json
// @Success 200 {array} models.PublicUser
// @Failure 500 {object} map[string]interface{}
// @Router /api/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListAll(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	// Only the public profile leaves the server.
	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}

	writeJSON(w, http.StatusOK, out)
}
