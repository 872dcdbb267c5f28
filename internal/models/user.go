package models

import "time"

// User represents a registered user of the API.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username" validate:"required,min=3,max=50"`
	Email     string    `json:"email" validate:"required,email"`
	FullName  string    `json:"full_name,omitempty" validate:"omitempty,max=100"`
	Password  string    `json:"-" validate:"required,min=8"` // bcrypt hash once stored
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
