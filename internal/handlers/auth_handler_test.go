package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"formserver/internal/config"
)

func validRegisterPayload() map[string]any {
	return map[string]any{
		"name":            "Anita Devi",
		"email":           "anita@example.com",
		"password":        "Passw0rd!",
		"confirmPassword": "Passw0rd!",
		"phone":           "9999999999",
		"country":         "India",
		"city":            "Pune",
	}
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestRegisterSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM users\s+WHERE LOWER\(email\)`).
		WithArgs("anita@example.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO users").WillReturnRows(
		sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()),
	)

	h := NewAuthHandler(db, &config.Config{JWTSecret: "dev"})
	w := postJSON(t, h.Register, "/api/users", validRegisterPayload())

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User registered successfully" {
		t.Fatalf("unexpected message: %v", resp)
	}
	if resp["token"] == nil || resp["token"] == "" {
		t.Fatalf("expected session token, got %v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := NewAuthHandler(db, &config.Config{JWTSecret: "dev"})
	payload := validRegisterPayload()
	delete(payload, "country")
	w := postJSON(t, h.Register, "/api/users", payload)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestRegisterInvalidPhoneReturnsFieldErrors(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := NewAuthHandler(db, &config.Config{JWTSecret: "dev"})
	payload := validRegisterPayload()
	payload["phone"] = "99abc"
	w := postJSON(t, h.Register, "/api/users", payload)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Fields["phone"] != "Phone must contain digits only (no letters)" {
		t.Fatalf("expected phone field error, got %+v", resp)
	}
}

func TestRegisterDuplicateEmailPrecheck(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mock.ExpectQuery(`FROM users\s+WHERE LOWER\(email\)`).
		WithArgs("anita@example.com").
		WillReturnRows(userRow(string(hash)))

	h := NewAuthHandler(db, &config.Config{JWTSecret: "dev"})
	w := postJSON(t, h.Register, "/api/users", validRegisterPayload())

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRegisterDuplicateEmailUniqueConstraintBackstop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// The precheck misses the race; the unique index answers instead.
	mock.ExpectQuery(`FROM users\s+WHERE LOWER\(email\)`).
		WithArgs("anita@example.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	h := NewAuthHandler(db, &config.Config{JWTSecret: "dev"})
	w := postJSON(t, h.Register, "/api/users", validRegisterPayload())

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "Email already registered" {
		t.Fatalf("unexpected body: %v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func userRow(hash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "gender", "phone", "address", "state", "city", "country", "description", "password_hash", "created_at",
	}).AddRow("u1", "Anita Devi", "anita@example.com", "", "9999999999", "", "", "Pune", "India", "", hash, time.Now().UTC())
}

func TestLoginSuccessByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery(`SELECT id, name, email, gender, phone, address, state, city, country, description, password_hash, created_at\s+FROM users`).
		WithArgs("anita@example.com").
		WillReturnRows(userRow(string(hash)))

	h := NewAuthHandler(db, &config.Config{JWTSecret: "dev"})
	w := postJSON(t, h.Login, "/api/login", map[string]any{
		"identifier": "anita@example.com",
		"password":   "Passw0rd!",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			Name      string `json:"name"`
			Email     string `json:"email"`
			Country   string `json:"country"`
			CreatedAt string `json:"createdAt"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Login successful" || resp.Token == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.User.Country != "India" || resp.User.Email != "anita@example.com" {
		t.Fatalf("unexpected user projection: %+v", resp.User)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestLoginGenericErrorParity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	h := NewAuthHandler(db, &config.Config{JWTSecret: "dev"})

	// Known account, wrong password.
	mock.ExpectQuery(`FROM users`).
		WithArgs("anita@example.com").
		WillReturnRows(userRow(string(hash)))
	wrongPassword := postJSON(t, h.Login, "/api/login", map[string]any{
		"identifier": "anita@example.com",
		"password":   "not-the-password",
	})

	// Identifier that matches nothing.
	mock.ExpectQuery(`FROM users`).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "gender", "phone", "address", "state", "city", "country", "description", "password_hash", "created_at",
		}))
	unknownUser := postJSON(t, h.Login, "/api/login", map[string]any{
		"identifier": "ghost@example.com",
		"password":   "whatever",
	})

	if wrongPassword.Code != http.StatusUnauthorized || unknownUser.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPassword.Code, unknownUser.Code)
	}
	// Neither status nor body may reveal which check failed.
	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Fatalf("credential errors differ: %q vs %q", wrongPassword.Body.String(), unknownUser.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestLoginMissingFields(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := NewAuthHandler(db, &config.Config{JWTSecret: "dev"})
	w := postJSON(t, h.Login, "/api/login", map[string]any{"identifier": "a@b.com"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
}
