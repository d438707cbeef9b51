package models

import "time"

// User groups profile data the way the registration form collects it.
// PasswordHash never leaves the server.
type Personal struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Gender string `json:"gender,omitempty"`
}

type Contact struct {
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country"`
}

type About struct {
	Description string `json:"description,omitempty"`
}

type User struct {
	ID           string    `json:"id"`
	Personal     Personal  `json:"personal"`
	Contact      Contact   `json:"contact"`
	About        About     `json:"about"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the safe projection returned by login and the user listing.
type PublicUser struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		Name:      u.Personal.Name,
		Email:     u.Personal.Email,
		Country:   u.Contact.Country,
		CreatedAt: u.CreatedAt,
	}
}

type RegisterRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword"`
	Gender          string `json:"gender"`
	Phone           string `json:"phone" validate:"required"`
	Address         string `json:"address"`
	State           string `json:"state"`
	City            string `json:"city"`
	Country         string `json:"country" validate:"required"`
	Description     string `json:"description"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    PublicUser `json:"user"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}
