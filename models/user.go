package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"

	MinPasswordLength = 8
)

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity is the authenticated caller as carried by a bearer token.
type Identity struct {
	UserID int
	Email  string
	Role   string
}

func (i Identity) IsZero() bool {
	return i.UserID == 0
}
