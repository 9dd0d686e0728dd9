package model

import "time"

// Role is the coarse user role. There is no finer-grained permission model.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User is a registered account. Passwords are stored in clear text — a known
// weakness inherited from the legacy data set; existing rows cannot be
// rehashed without breaking logins, so the comparison stays plaintext.
type User struct {
	Email            string    `json:"email"`
	Password         string    `json:"-"`
	FullName         string    `json:"full_name"`
	Class            string    `json:"class"`
	Role             Role      `json:"role"`
	FirstLogin       bool      `json:"first_login"`
	RegistrationDate time.Time `json:"registration_date"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
	Class    string `json:"class" binding:"required,min=1,max=100"`
}

// UpdatePasswordRequest is the payload for PUT /auth/password.
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// UpdateProfileRequest is the payload for PUT /auth/profile.
// Empty fields are left unchanged.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"omitempty,min=1,max=200"`
	Class    string `json:"class" binding:"omitempty,min=1,max=100"`
}
