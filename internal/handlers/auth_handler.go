package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"formserver/internal/auth"
	"formserver/internal/config"
	"formserver/internal/models"
	"formserver/internal/repository"
	"formserver/internal/validation"
)

type AuthHandler struct {
	users repository.UserRepository
	cfg   *config.Config
	v     *validator.Validate
}

func NewAuthHandler(db *sql.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		users: repository.NewUserRepository(db),
		cfg:   cfg,
		v:     validator.New(),
	}
}

func registrationForm(req *models.RegisterRequest) *validation.Form {
	return &validation.Form{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Gender:          req.Gender,
		Phone:           req.Phone,
		Address:         req.Address,
		State:           req.State,
		City:            req.City,
		Country:         req.Country,
		Description:     req.Description,
	}
}

// @Tags Auth
// @Summary Register a user
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "Registration form"
// @Success 201 {object} models.RegisterResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/users [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	form := registrationForm(&req)
	if errs := validation.ValidateAll(form); !validation.Valid(form, errs) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "Validation failed",
			"fields": errs,
		})
		return
	}

	// Reject duplicates before hashing; the unique index still backstops
	// a race between concurrent registrations.
	if _, err := h.users.GetByEmail(r.Context(), req.Email); err == nil {
		writeJSONError(w, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		writeJSONError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	u := &models.User{
		ID: uuid.NewString(),
		Personal: models.Personal{
			Name:   strings.TrimSpace(req.Name),
			Email:  strings.TrimSpace(req.Email),
			Gender: req.Gender,
		},
		Contact: models.Contact{
			Phone:   strings.TrimSpace(req.Phone),
			Address: strings.TrimSpace(req.Address),
			State:   strings.TrimSpace(req.State),
			City:    strings.TrimSpace(req.City),
			Country: req.Country,
		},
		About:        models.About{Description: strings.TrimSpace(req.Description)},
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.users.Create(r.Context(), u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			writeJSONError(w, http.StatusConflict, "Email already registered")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := auth.IssueSessionToken(h.cfg.JWTSecret, u.ID, u.Personal.Email, h.cfg.JWTExpiresInSeconds)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, models.RegisterResponse{
		Message: "User registered successfully",
		Token:   token,
	})
}

// @Tags Auth
// @Summary Login with email or phone
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Login request"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "identifier and password are required")
		return
	}

	// Unknown identity and wrong password answer identically so the
	// response never confirms whether an account exists.
	u, err := h.users.GetByEmailOrPhone(r.Context(), req.Identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.IssueSessionToken(h.cfg.JWTSecret, u.ID, u.Personal.Email, h.cfg.JWTExpiresInSeconds)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    u.Public(),
	})
}
