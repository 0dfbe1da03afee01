package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password holds the one-way digest of the user's password, never the
// plaintext, and is excluded from every serialized representation.
type User struct {
	ID             string    `json:"id"`
	Fullname       string    `json:"fullname"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	Role           string    `json:"role"`
	ActivationCode string    `json:"-"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// RoleUser is the role assigned to every newly registered account.
const RoleUser = "user"
