package models

import "time"

// Item represents an item in the store. Owner is the username of the
// user that created it and is the subject of all mutation checks.
type Item struct {
	ID          int       `json:"id"`
	Title       string    `json:"title" validate:"required,min=1,max=100"`
	Description string    `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
}
